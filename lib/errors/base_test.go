package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, NotMember, NotMember)

	e := NotMember
	e0 := NotMember.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.Code = 999
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e1 := NotMember.Clone()
		e1.SetData("room", 1)
		require.NotEqual(t, e.Data, e1.Data)
		require.Empty(t, NotMember.Data)
	}
}

func TestErrorsIs(t *testing.T) {
	e := VoteExpire.Clone().SetData("hash", "findme")

	require.True(t, Is(e, VoteExpire))
	require.False(t, Is(e, DuplicateVote))
	require.True(t, Is(nil, nil))
	require.False(t, Is(nil, VoteExpire))
	require.False(t, Is(fmt.Errorf("plain"), VoteExpire))
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(NotMember)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(NotMember)
		require.NoError(t, err)

		e := NotMember.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}
