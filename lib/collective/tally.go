package collective

// Tally decides the votes with the council size and the current height.
// Approval is checked first, so a record that is both approved and rejected
// passes.
func Tally(votes Votes, seats uint32, height uint64) (decided bool, passed bool) {
	ayes := uint32(len(votes.Ayes))
	nays := uint32(len(votes.Nays))

	var remaining uint32
	if seats > nays {
		remaining = seats - nays
	}

	approved := ayes >= votes.Threshold
	disapproved := remaining < votes.Threshold || votes.IsExpired(height)

	switch {
	case approved:
		return true, true
	case disapproved:
		return true, false
	default:
		return false, false
	}
}
