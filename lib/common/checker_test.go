package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/errors"
)

type testChecker struct {
	DefaultChecker

	visited []int
}

func TestRunCheckerStopsAtFirstError(t *testing.T) {
	c := &testChecker{}
	c.Funcs = []CheckerFunc{
		func(c Checker, args ...interface{}) error {
			c.(*testChecker).visited = append(c.(*testChecker).visited, 0)
			return nil
		},
		func(c Checker, args ...interface{}) error {
			c.(*testChecker).visited = append(c.(*testChecker).visited, 1)
			return errors.NotMember
		},
		func(c Checker, args ...interface{}) error {
			c.(*testChecker).visited = append(c.(*testChecker).visited, 2)
			return nil
		},
	}

	var deferred []int
	err := RunChecker(c, func(i int, _ Checker, _ error) {
		deferred = append(deferred, i)
	})
	require.Equal(t, errors.NotMember, err)
	require.Equal(t, []int{0, 1}, c.visited)
	require.Equal(t, []int{0, 1}, deferred)
}

func TestRunCheckerArgs(t *testing.T) {
	c := &testChecker{}
	c.Funcs = []CheckerFunc{
		func(c Checker, args ...interface{}) error {
			require.Equal(t, []interface{}{"showme", 1}, args)
			return nil
		},
	}

	require.NoError(t, RunChecker(c, nil, "showme", 1))
}
