package collective

import (
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/origin"
)

// close tallies the votes and closes the proposal when it is decided.
func (c *call) close(roomID uint64, hash string, votes Votes) error {
	council, err := c.e.oracle.Council(c.st, roomID)
	if err != nil {
		return err
	}

	seats := uint32(len(council))
	ayes := uint32(len(votes.Ayes))
	nays := uint32(len(votes.Nays))
	height := c.e.clock.BlockHeight()

	decided, passed := Tally(votes, seats, height)
	if !decided {
		return nil
	}

	if passed {
		if err = c.approve(roomID, hash, ayes, seats); err != nil {
			return err
		}
		metrics.Collective.AddClosed(metrics.ResultApproved)
	} else {
		if _, _, err = c.disapprove(roomID, hash); err != nil {
			return err
		}

		if votes.IsExpired(height) {
			metrics.Collective.AddClosed(metrics.ResultExpired)
			c.log.Info("proposal expired", "room", roomID, "hash", hash, "end", votes.End, "height", height)

			return errors.VoteExpire.Clone().
				SetData("room", roomID).
				SetData("hash", hash).
				SetData("end", votes.End)
		}
		metrics.Collective.AddClosed(metrics.ResultDisapproved)
	}

	c.emit(Event{
		Kind: EventClosed,
		Room: roomID,
		Hash: hash,
		Ayes: ayes,
		Nays: nays,
	})

	c.log.Info("proposal closed", "room", roomID, "hash", hash, "passed", passed, "ayes", ayes, "nays", nays)

	return nil
}

// approve dispatches the proposal as `Members(ayes, seats)` and removes it.
func (c *call) approve(roomID uint64, hash string, ayes, seats uint32) error {
	a, found, err := c.proposalOf(roomID, hash)
	if err != nil {
		return err
	} else if !found {
		c.log.Crit("votes without proposal", "room", roomID, "hash", hash)
		return errors.ProposalMissing.Clone().
			SetData("room", roomID).
			SetData("hash", hash)
	}

	c.emit(Event{Kind: EventApproved, Room: roomID, Hash: hash})

	result := c.dispatch(a, origin.Members(roomID, ayes, seats))
	c.emit(Event{
		Kind:   EventExecuted,
		Room:   roomID,
		Hash:   hash,
		Result: dispatchResult(result),
	})

	_, _, err = c.removeProposal(roomID, hash)

	return err
}

// disapprove removes the proposal. It returns the number of pending
// proposals before removal and whether the proposal was pending.
func (c *call) disapprove(roomID uint64, hash string) (int, bool, error) {
	c.emit(Event{Kind: EventDisapproved, Room: roomID, Hash: hash})

	return c.removeProposal(roomID, hash)
}

func (c *call) removeProposal(roomID uint64, hash string) (int, bool, error) {
	n, found, err := removeProposal(c.st, roomID, hash)
	if err == nil && found {
		metrics.Collective.AddPending(-1)
	}

	return n, found, err
}
