package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInStringArray(t *testing.T) {
	as := []string{
		"GCZBKG5ZNBDJ4E46JSCEU6AABJ6ZFQRKXL5B7JOUEGPKLTSI545VHO7B",
		"GCHXRPJLWOFFZKUPJUO7LMGKRGTGASZJCOXB32XPPHJWG6PQNHORFYYE",
	}

	index, found := InStringArray(as, as[1])
	require.True(t, found)
	require.Equal(t, 1, index)

	index, found = InStringArray(as, "findme")
	require.False(t, found)
	require.Equal(t, -1, index)

	index, found = InStringArray(nil, "findme")
	require.False(t, found)
	require.Equal(t, -1, index)
}

func TestRemoveFromStringArray(t *testing.T) {
	as := []string{"a", "b", "c"}

	require.Equal(t, []string{"a", "c"}, RemoveFromStringArray(as, 1))
	require.Equal(t, []string{"b", "c"}, RemoveFromStringArray(as, 0))
	require.Equal(t, []string{"a", "b"}, RemoveFromStringArray(as, 2))
	require.Equal(t, as, RemoveFromStringArray(as, 3))
	require.Equal(t, as, RemoveFromStringArray(as, -1))

	// source is kept
	require.Equal(t, []string{"a", "b", "c"}, as)
}

func TestGetENVValue(t *testing.T) {
	key := "COUNCIL_TEST_GET_ENV_VALUE"
	os.Unsetenv(key)
	require.Equal(t, "default", GetENVValue(key, "default"))

	os.Setenv(key, "showme")
	defer os.Unsetenv(key)
	require.Equal(t, "showme", GetENVValue(key, "default"))
}

func TestJSONValue(t *testing.T) {
	b, err := EncodeJSONValue([]string{"a", "b"})
	require.NoError(t, err)

	var l []string
	require.NoError(t, DecodeJSONValue(b, &l))
	require.Equal(t, []string{"a", "b"}, l)
}
