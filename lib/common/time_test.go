package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseISO8601(t *testing.T) {
	s := "2018-08-25T14:12:10.090758840+09:00"
	parsed, err := ParseISO8601(s)
	require.NoError(t, err)

	require.Equal(t, 2018, parsed.Year())
	require.Equal(t, time.Month(8), parsed.Month())
	require.Equal(t, 90758840, parsed.Nanosecond())

	_, offset := parsed.Zone()
	require.Equal(t, 9*60*60, offset)

	require.Equal(t, s, FormatISO8601(parsed))
}
