package room

import (
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Oracle resolves the council and the owner of a room. The storage handle is
// the one of the running call, so the lookups see the writes of the same
// transaction.
type Oracle interface {
	Council(st *storage.LevelDBBackend, id uint64) ([]string, error)
	Owner(st *storage.LevelDBBackend, id uint64) (string, error)
}

// Registry is the Oracle over the rooms saved in storage.
type Registry struct{}

func NewRegistry() Registry {
	return Registry{}
}

func (Registry) Council(st *storage.LevelDBBackend, id uint64) ([]string, error) {
	r, err := GetRoom(st, id)
	if err != nil {
		return nil, err
	}

	return r.Council, nil
}

func (Registry) Owner(st *storage.LevelDBBackend, id uint64) (string, error) {
	r, err := GetRoom(st, id)
	if err != nil {
		return "", err
	}

	return r.Owner, nil
}

// StaticOracle is the Oracle over the fixed rooms, it ignores storage.
type StaticOracle map[uint64]Room

func (o StaticOracle) Council(_ *storage.LevelDBBackend, id uint64) ([]string, error) {
	r, found := o[id]
	if !found {
		return nil, errors.RoomNotFound.Clone().SetData("room", id)
	}

	return r.Council, nil
}

func (o StaticOracle) Owner(_ *storage.LevelDBBackend, id uint64) (string, error) {
	r, found := o[id]
	if !found {
		return "", errors.RoomNotFound.Clone().SetData("room", id)
	}

	return r.Owner, nil
}
