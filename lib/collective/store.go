package collective

import (
	"fmt"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// The state of a room is kept in four stores,
//  * 'cl-proposals-<room>': pending hashes, `[]string`
//  * 'cl-count-<room>': the next proposal index, `uint32`
//  * 'cl-proposal-of-<room>-<hash>': `action.Action`
//  * 'cl-voting-<room>-<hash>': `Votes`
// The pending hashes, the proposals and the votes of a room have the same
// set of hashes; they are only changed together by `newProposal` and
// `removeProposal`.

const (
	PrefixProposals  string = "cl-proposals-"
	PrefixCount      string = "cl-count-"
	PrefixProposalOf string = "cl-proposal-of-"
	PrefixVoting     string = "cl-voting-"
)

// Votes is the vote record of a pending proposal.
type Votes struct {
	Index     uint32   `json:"index" yaml:"index"`
	Reason    string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Threshold uint32   `json:"threshold" yaml:"threshold"`
	Ayes      []string `json:"ayes" yaml:"ayes"`
	Nays      []string `json:"nays" yaml:"nays"`
	End       uint64   `json:"end" yaml:"end"`
}

func (v Votes) String() string {
	return string(common.MustMarshalJSON(v))
}

// IsExpired is true when `height` reached the end of the motion.
func (v Votes) IsExpired(height uint64) bool {
	return v.End <= height
}

func roomKey(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

func GetProposalsKey(id uint64) string {
	return PrefixProposals + roomKey(id)
}

func GetCountKey(id uint64) string {
	return PrefixCount + roomKey(id)
}

func GetProposalOfPrefix(id uint64) string {
	return PrefixProposalOf + roomKey(id) + "-"
}

func GetProposalOfKey(id uint64, hash string) string {
	return GetProposalOfPrefix(id) + hash
}

func GetVotingPrefix(id uint64) string {
	return PrefixVoting + roomKey(id) + "-"
}

func GetVotingKey(id uint64, hash string) string {
	return GetVotingPrefix(id) + hash
}

func getProposals(st *storage.LevelDBBackend, id uint64) (proposals []string, err error) {
	if err = st.Get(GetProposalsKey(id), &proposals); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return []string{}, nil
		}
		return
	}

	return
}

func getProposalCount(st *storage.LevelDBBackend, id uint64) (count uint32, err error) {
	if err = st.Get(GetCountKey(id), &count); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return 0, nil
		}
		return
	}

	return
}

func getVoting(st *storage.LevelDBBackend, id uint64, hash string) (votes Votes, found bool, err error) {
	if err = st.Get(GetVotingKey(id, hash), &votes); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return Votes{}, false, nil
		}
		return
	}

	found = true
	return
}

func existsProposalOf(st *storage.LevelDBBackend, id uint64, hash string) (bool, error) {
	return st.Has(GetProposalOfKey(id, hash))
}

func getProposalOf(st *storage.LevelDBBackend, id uint64, hash string) (a action.Action, found bool, err error) {
	if err = st.Get(GetProposalOfKey(id, hash), &a); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return action.Action{}, false, nil
		}
		return
	}

	found = true
	return
}

// newProposal appends the hash to the pending list and stores the proposal
// with its votes. The pending list is checked against `maxProposals` after
// the append; on `TooManyProposals` nothing is written.
func newProposal(st *storage.LevelDBBackend, id uint64, hash string, a action.Action, votes Votes, maxProposals uint32) (int, error) {
	proposals, err := getProposals(st, id)
	if err != nil {
		return 0, err
	}

	proposals = append(proposals, hash)
	if len(proposals) > int(maxProposals) {
		return 0, errors.TooManyProposals.Clone().
			SetData("room", id).
			SetData("max", maxProposals)
	}

	err = st.Puts(
		storage.Item{Key: GetProposalsKey(id), Value: proposals},
		storage.Item{Key: GetCountKey(id), Value: votes.Index + 1},
		storage.Item{Key: GetProposalOfKey(id, hash), Value: a},
		storage.Item{Key: GetVotingKey(id, hash), Value: votes},
	)
	if err != nil {
		return 0, err
	}

	return len(proposals), nil
}

// removeProposal deletes the proposal, the votes and the pending hash
// together. It returns the length of the pending list before removal and
// whether the hash was pending.
func removeProposal(st *storage.LevelDBBackend, id uint64, hash string) (int, bool, error) {
	proposals, err := getProposals(st, id)
	if err != nil {
		return 0, false, err
	}

	before := len(proposals)

	index, found := common.InStringArray(proposals, hash)
	if found {
		proposals = common.RemoveFromStringArray(proposals, index)
		if err = st.Put(GetProposalsKey(id), proposals); err != nil {
			return 0, false, err
		}
	}

	if err = st.Removes(GetProposalOfKey(id, hash), GetVotingKey(id, hash)); err != nil {
		return 0, false, err
	}

	return before, found, nil
}

// removeRoom deletes every state of the room. It returns the number of
// pending proposals removed.
func removeRoom(st *storage.LevelDBBackend, id uint64) (int, error) {
	proposals, err := getProposals(st, id)
	if err != nil {
		return 0, err
	}

	keys := []string{GetProposalsKey(id), GetCountKey(id)}
	for _, prefix := range []string{GetProposalOfPrefix(id), GetVotingPrefix(id)} {
		var found []string
		if found, err = st.Keys(prefix); err != nil {
			return 0, err
		}
		keys = append(keys, found...)
	}

	if err = st.Removes(keys...); err != nil {
		return 0, err
	}

	return len(proposals), nil
}
