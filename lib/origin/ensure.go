package origin

import (
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

// EnsureOrigin checks that the origin is allowed; it returns `BadOrigin`
// otherwise. Except `EnsureRoomOwner`, the checks only look at the origin.
type EnsureOrigin interface {
	Ensure(st *storage.LevelDBBackend, o Origin) error
}

func badOrigin(o Origin, requires string) error {
	return errors.BadOrigin.Clone().
		SetData("origin", o.String()).
		SetData("requires", requires)
}

// EnsureAny accepts every well-formed origin.
type EnsureAny struct{}

func (EnsureAny) Ensure(_ *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMember, KindMembers:
		return nil
	default:
		return badOrigin(o, "any")
	}
}

// EnsureMember accepts a single member acting directly.
type EnsureMember struct{}

func (EnsureMember) Ensure(_ *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMember:
		return nil
	case KindMembers:
		return badOrigin(o, "member")
	default:
		return badOrigin(o, "member")
	}
}

// EnsureMembers accepts at least `N` ayes.
type EnsureMembers struct {
	N uint32
}

func (e EnsureMembers) Ensure(_ *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMembers:
		if o.Ayes >= e.N {
			return nil
		}
		return badOrigin(o, "members")
	case KindMember:
		return badOrigin(o, "members")
	default:
		return badOrigin(o, "members")
	}
}

// EnsureRoomOwner accepts the owner of the room acting directly.
type EnsureRoomOwner struct {
	Oracle room.Oracle
}

func (e EnsureRoomOwner) Ensure(st *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMember:
		owner, err := e.Oracle.Owner(st, o.Room)
		if err != nil {
			return err
		}
		if owner != o.Account {
			return badOrigin(o, "room-owner")
		}
		return nil
	case KindMembers:
		return badOrigin(o, "room-owner")
	default:
		return badOrigin(o, "room-owner")
	}
}

// EnsureProportionMoreThan accepts `ayes/seats > N/D`.
type EnsureProportionMoreThan struct {
	N uint32
	D uint32
}

func (e EnsureProportionMoreThan) Ensure(_ *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMembers:
		if uint64(o.Ayes)*uint64(e.D) > uint64(e.N)*uint64(o.Seats) {
			return nil
		}
		return badOrigin(o, "proportion-more-than")
	case KindMember:
		return badOrigin(o, "proportion-more-than")
	default:
		return badOrigin(o, "proportion-more-than")
	}
}

// EnsureProportionAtLeast accepts `ayes/seats >= N/D`.
type EnsureProportionAtLeast struct {
	N uint32
	D uint32
}

func (e EnsureProportionAtLeast) Ensure(_ *storage.LevelDBBackend, o Origin) error {
	switch o.Kind {
	case KindMembers:
		if uint64(o.Ayes)*uint64(e.D) >= uint64(e.N)*uint64(o.Seats) {
			return nil
		}
		return badOrigin(o, "proportion-at-least")
	case KindMember:
		return badOrigin(o, "proportion-at-least")
	default:
		return badOrigin(o, "proportion-at-least")
	}
}

// EnsureOneOf accepts when one of `L` or `R` accepts; `L` is checked first.
type EnsureOneOf struct {
	L EnsureOrigin
	R EnsureOrigin
}

func Either(l, r EnsureOrigin) EnsureOneOf {
	return EnsureOneOf{L: l, R: r}
}

func (e EnsureOneOf) Ensure(st *storage.LevelDBBackend, o Origin) error {
	err := e.L.Ensure(st, o)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errors.BadOrigin) {
		return err
	}

	return e.R.Ensure(st, o)
}
