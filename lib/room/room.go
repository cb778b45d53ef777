package room

import (
	"fmt"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Room is the governance scope. The storage should support,
//  * find by `ID`:
// 	- key: `room-<zero padded ID>`: value: `Room`
//  * get list by `ID` order, thru the zero padded key

const RoomPrefixID string = "room-"

type Room struct {
	ID      uint64   `json:"id"`
	Owner   string   `json:"owner"`
	Council []string `json:"council"`
}

func NewRoom(id uint64, owner string, council []string) *Room {
	return &Room{
		ID:      id,
		Owner:   owner,
		Council: council,
	}
}

func (r *Room) String() string {
	return string(common.MustMarshalJSON(r))
}

func (r *Room) IsWellFormed() error {
	if !keypair.IsAddress(r.Owner) {
		return errors.InvalidAddress.Clone().SetData("address", r.Owner)
	}

	seen := map[string]bool{}
	for _, member := range r.Council {
		if !keypair.IsAddress(member) {
			return errors.InvalidAddress.Clone().SetData("address", member)
		}
		if seen[member] {
			return errors.AlreadyMember.Clone().SetData("address", member)
		}
		seen[member] = true
	}

	return nil
}

func (r *Room) IsMember(address string) bool {
	_, found := common.InStringArray(r.Council, address)
	return found
}

func (r *Room) AddMember(address string) error {
	if !keypair.IsAddress(address) {
		return errors.InvalidAddress.Clone().SetData("address", address)
	}
	if r.IsMember(address) {
		return errors.AlreadyMember.Clone().SetData("address", address)
	}

	r.Council = append(r.Council, address)

	return nil
}

func (r *Room) RemoveMember(address string) error {
	index, found := common.InStringArray(r.Council, address)
	if !found {
		return errors.NotMember.Clone().SetData("address", address)
	}

	r.Council = common.RemoveFromStringArray(r.Council, index)

	return nil
}

func (r *Room) Save(st *storage.LevelDBBackend) error {
	if err := r.IsWellFormed(); err != nil {
		return err
	}

	return st.Put(GetRoomKey(r.ID), r)
}

func GetRoomKey(id uint64) string {
	return fmt.Sprintf("%s%020d", RoomPrefixID, id)
}

func ExistsRoom(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetRoomKey(id))
}

func GetRoom(st *storage.LevelDBBackend, id uint64) (r *Room, err error) {
	if err = st.Get(GetRoomKey(id), &r); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.RoomNotFound.Clone().SetData("room", id)
		}
		return
	}

	return
}

func DeleteRoom(st *storage.LevelDBBackend, id uint64) error {
	if err := st.Remove(GetRoomKey(id)); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			return errors.RoomNotFound.Clone().SetData("room", id)
		}
		return err
	}

	return nil
}

// GetRooms returns the iterator of rooms ordered by id.
func GetRooms(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Room, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(RoomPrefixID, options)

	return (func() (*Room, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			var r Room
			storage.MustDecode(item.Value, &r)
			return &r, true
		}), (func() {
			closeFunc()
		})
}
