package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	{
		e, err := ParseEndpoint("http://localhost:8080")
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", e.BindAddr())
		require.Equal(t, "http://localhost:8080", e.String())
	}

	{ // default port
		e, err := ParseEndpoint("https://Council.example.com")
		require.NoError(t, err)
		require.Equal(t, "council.example.com:54321", e.BindAddr())
	}

	{ // empty host
		e, err := ParseEndpoint("http://:9000")
		require.NoError(t, err)
		require.Equal(t, "localhost:9000", e.BindAddr())
	}

	{
		_, err := ParseEndpoint("localhost:8080")
		require.Error(t, err)
	}

	{
		_, err := ParseEndpoint("tcp://localhost:8080")
		require.Error(t, err)
	}

	{
		_, err := ParseEndpoint("http://localhost:0")
		require.Error(t, err)
	}
}

func TestEndpointJSON(t *testing.T) {
	e := MustParseEndpoint("http://localhost:8080")

	b, err := json.Marshal(e)
	require.NoError(t, err)
	require.Equal(t, `"http://localhost:8080"`, string(b))

	var r Endpoint
	require.NoError(t, json.Unmarshal(b, &r))
	require.Equal(t, e.String(), r.String())
}
