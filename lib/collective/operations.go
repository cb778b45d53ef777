package collective

import (
	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/origin"
)

// Execute dispatches the action at once by the owner of the room, without
// voting.
//
// The result of the action is not returned; it is reported by the
// `member-executed` event.
func (e *Engine) Execute(caller string, roomID uint64, a action.Action, lengthBound uint32) error {
	return e.run("execute", func(c *call) error {
		checker := c.checker(
			caller, roomID,
			CheckFilter,
			LoadCouncil,
			LoadOwner,
			CheckMember,
			CheckRoomOwner,
			CheckLength,
		)
		checker.Action = a
		checker.LengthBound = lengthBound

		if err := common.RunChecker(checker, nil); err != nil {
			return err
		}

		hash := a.Hash()
		result := c.dispatch(a, origin.Member(roomID, caller))

		c.emit(Event{
			Kind:   EventMemberExecuted,
			Room:   roomID,
			Hash:   hash,
			Result: dispatchResult(result),
		})

		c.log.Debug("executed", "room", roomID, "hash", hash, "caller", caller, "result", result)

		return nil
	})
}

// Propose makes a new motion of the action with the threshold.
//
// A threshold under 2 dispatches the action at once as `Members(1, seats)`
// and the result is reported by the `executed` event. Otherwise the caller
// is the first aye of the new motion.
func (e *Engine) Propose(
	caller string,
	roomID uint64,
	threshold uint32,
	a action.Action,
	reason string,
	lengthBound uint32,
) error {
	return e.run("propose", func(c *call) error {
		checker := c.checker(
			caller, roomID,
			CheckFilter,
			LoadCouncil,
			CheckMember,
			CheckLength,
			CheckDuplicateProposal,
		)
		checker.Action = a
		checker.Hash = a.Hash()
		checker.LengthBound = lengthBound

		if err := common.RunChecker(checker, nil); err != nil {
			return err
		}

		hash := checker.Hash

		if threshold < 2 {
			result := c.dispatch(a, origin.Members(roomID, 1, checker.seats()))
			c.emit(Event{
				Kind:   EventExecuted,
				Room:   roomID,
				Hash:   hash,
				Result: dispatchResult(result),
			})
			metrics.Collective.AddProposal("immediate")

			c.log.Debug("proposal executed", "room", roomID, "hash", hash, "result", result)
			return nil
		}

		index, err := getProposalCount(c.st, roomID)
		if err != nil {
			return err
		}

		votes := Votes{
			Index:     index,
			Reason:    reason,
			Threshold: threshold,
			Ayes:      []string{caller},
			Nays:      []string{},
			End:       c.e.clock.BlockHeight() + c.e.config.MotionDuration,
		}

		if _, err = newProposal(c.st, roomID, hash, a, votes, c.e.config.MaxProposals); err != nil {
			return err
		}
		c.e.cache.Add(hash, a)

		c.emit(Event{
			Kind:      EventProposed,
			Room:      roomID,
			Hash:      hash,
			Account:   caller,
			Index:     index,
			Threshold: threshold,
		})
		metrics.Collective.AddProposal("motion")
		metrics.Collective.AddPending(1)

		c.log.Debug("proposed", "room", roomID, "hash", hash, "index", index, "votes", votes)

		return nil
	})
}

// Vote adds the vote of the caller to the pending proposal and closes it when
// it is decided.
//
// A caller can switch the side it voted. When the motion ended by expiry, the
// proposal is removed and `VoteExpire` is returned; the removal is kept.
func (e *Engine) Vote(caller string, roomID uint64, hash string, index uint32, approve bool) error {
	return e.run("vote", func(c *call) error {
		checker := c.checker(
			caller, roomID,
			LoadCouncil,
			CheckMember,
			LoadVotes,
			CheckIndex,
		)
		checker.Hash = hash
		checker.Index = index

		if err := common.RunChecker(checker, nil); err != nil {
			return err
		}

		votes := checker.Votes
		positionAye, isAye := common.InStringArray(votes.Ayes, caller)
		positionNay, isNay := common.InStringArray(votes.Nays, caller)

		if approve {
			if isAye {
				return errors.DuplicateVote.Clone().SetData("account", caller)
			}
			votes.Ayes = append(votes.Ayes, caller)
			if isNay {
				votes.Nays = common.RemoveFromStringArray(votes.Nays, positionNay)
			}
		} else {
			if isNay {
				return errors.DuplicateVote.Clone().SetData("account", caller)
			}
			votes.Nays = append(votes.Nays, caller)
			if isAye {
				votes.Ayes = common.RemoveFromStringArray(votes.Ayes, positionAye)
			}
		}

		c.emit(Event{
			Kind:    EventVoted,
			Room:    roomID,
			Hash:    hash,
			Account: caller,
			Approve: approve,
			Seats:   checker.seats(),
			Ayes:    uint32(len(votes.Ayes)),
			Nays:    uint32(len(votes.Nays)),
		})

		if err := c.st.Put(GetVotingKey(roomID, hash), votes); err != nil {
			return err
		}
		metrics.Collective.AddVote(approve)

		c.log.Debug("voted", "room", roomID, "hash", hash, "caller", caller, "approve", approve)

		return c.close(roomID, hash, votes)
	})
}

// DisapproveProposal removes the proposal by root, regardless of the votes.
// It returns the number of pending proposals before removal.
func (e *Engine) DisapproveProposal(caller Caller, roomID uint64, hash string) (n int, err error) {
	err = e.run("disapprove", func(c *call) error {
		if !caller.IsRoot() {
			return errors.NotRoot.Clone().SetData("account", caller.Account)
		}

		var found bool
		var err error
		if n, found, err = c.disapprove(roomID, hash); err != nil {
			return err
		}
		if !found {
			c.log.Warn("disapproved proposal was not pending", "room", roomID, "hash", hash)
		}

		return nil
	})

	return
}

// RemoveRoomCollective removes every proposal, vote and the proposal count
// of the room. It is called when the room is removed and emits no events.
func (e *Engine) RemoveRoomCollective(roomID uint64) error {
	return e.run("remove-room", func(c *call) error {
		n, err := removeRoom(c.st, roomID)
		if err != nil {
			return err
		}
		metrics.Collective.AddPending(-n)

		c.log.Info("room collective removed", "room", roomID, "proposals", n)

		return nil
	})
}
