package collective

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeVotes(threshold uint32, ayes, nays int, end uint64) Votes {
	v := Votes{Threshold: threshold, End: end, Ayes: []string{}, Nays: []string{}}
	for i := 0; i < ayes; i++ {
		v.Ayes = append(v.Ayes, string(rune('a'+i)))
	}
	for i := 0; i < nays; i++ {
		v.Nays = append(v.Nays, string(rune('A'+i)))
	}

	return v
}

func TestTally(t *testing.T) {
	cases := []struct {
		name    string
		votes   Votes
		seats   uint32
		height  uint64
		decided bool
		passed  bool
	}{
		{"open", makeVotes(3, 2, 0, 10), 5, 0, false, false},
		{"approved at threshold", makeVotes(3, 3, 0, 10), 5, 0, true, true},
		{"open with 2 nays", makeVotes(3, 1, 2, 10), 5, 0, false, false},
		{"rejected with 3 nays", makeVotes(3, 1, 3, 10), 5, 0, true, false},
		{"expired", makeVotes(3, 2, 0, 10), 5, 10, true, false},
		{"open just before end", makeVotes(3, 2, 0, 10), 5, 9, false, false},
		{"approved after end", makeVotes(3, 3, 0, 10), 5, 11, true, true},
		{"nays over seats", makeVotes(3, 0, 7, 10), 5, 0, true, false},
		{"approved and rejected", makeVotes(2, 2, 2, 10), 3, 0, true, true},
		{"threshold over seats", makeVotes(6, 5, 0, 10), 5, 0, true, false},
	}

	for _, c := range cases {
		decided, passed := Tally(c.votes, c.seats, c.height)
		require.Equal(t, c.decided, decided, c.name)
		require.Equal(t, c.passed, passed, c.name)
	}
}
