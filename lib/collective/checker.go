package collective

import (
	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
)

// callChecker carries the preconditions of a call; the checker funcs fill
// the loaded state for the next ones.
type callChecker struct {
	common.DefaultChecker

	c           *call
	Caller      string
	Room        uint64
	Action      action.Action
	Hash        string
	LengthBound uint32
	Index       uint32

	Council []string
	Owner   string
	Votes   Votes
}

func (checker *callChecker) seats() uint32 {
	return uint32(len(checker.Council))
}

// CheckFilter checks the action is allowed by the filter.
func CheckFilter(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	if !checker.c.e.filter.Contains(checker.Action) {
		return errors.DisallowFunc.Clone().SetData("type", checker.Action.H.Type)
	}

	return nil
}

// LoadCouncil resolves the council of the room.
func LoadCouncil(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*callChecker)

	checker.Council, err = checker.c.e.oracle.Council(checker.c.st, checker.Room)
	return
}

// LoadOwner resolves the owner of the room.
func LoadOwner(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*callChecker)

	checker.Owner, err = checker.c.e.oracle.Owner(checker.c.st, checker.Room)
	return
}

// CheckMember checks the caller is in the council.
func CheckMember(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	if _, found := common.InStringArray(checker.Council, checker.Caller); !found {
		return errors.NotMember.Clone().
			SetData("room", checker.Room).
			SetData("account", checker.Caller)
	}

	return nil
}

// CheckRoomOwner checks the caller is the owner of the room.
func CheckRoomOwner(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	if checker.Owner != checker.Caller {
		return errors.NotRoomOwner.Clone().
			SetData("room", checker.Room).
			SetData("account", checker.Caller)
	}

	return nil
}

// CheckLength checks the serialized action fits in the given bound.
func CheckLength(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	if size := checker.Action.Size(); size > checker.LengthBound {
		return errors.WrongProposalLength.Clone().
			SetData("size", size).
			SetData("bound", checker.LengthBound)
	}

	return nil
}

// CheckDuplicateProposal checks the action is not pending in the room.
func CheckDuplicateProposal(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	exists, err := existsProposalOf(checker.c.st, checker.Room, checker.Hash)
	if err != nil {
		return err
	} else if exists {
		return errors.DuplicateProposal.Clone().
			SetData("room", checker.Room).
			SetData("hash", checker.Hash)
	}

	return nil
}

// LoadVotes loads the votes of the pending proposal.
func LoadVotes(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	votes, found, err := getVoting(checker.c.st, checker.Room, checker.Hash)
	if err != nil {
		return err
	} else if !found {
		return errors.ProposalMissing.Clone().
			SetData("room", checker.Room).
			SetData("hash", checker.Hash)
	}

	checker.Votes = votes

	return nil
}

// CheckIndex checks the given index matches the index of the votes.
func CheckIndex(c common.Checker, args ...interface{}) error {
	checker := c.(*callChecker)

	if checker.Votes.Index != checker.Index {
		return errors.WrongIndex.Clone().
			SetData("expected", checker.Votes.Index).
			SetData("index", checker.Index)
	}

	return nil
}
