package action

import (
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/room"
)

// Remark does nothing but leaving the message.
type Remark struct {
	Message string `json:"message"`
}

func NewRemark(message string) Remark {
	return Remark{Message: message}
}

func (b Remark) IsWellFormed() error {
	return nil
}

func (b Remark) Execute(ctx Context) error {
	log.Info("remark", "room", ctx.Origin.Room, "message", b.Message)
	return nil
}

// AddMember appends the member to the council of the room.
type AddMember struct {
	Member string `json:"member"`
}

func NewAddMember(member string) AddMember {
	return AddMember{Member: member}
}

func (b AddMember) IsWellFormed() error {
	if !keypair.IsAddress(b.Member) {
		return errors.InvalidAddress.Clone().SetData("address", b.Member)
	}

	return nil
}

func (b AddMember) Execute(ctx Context) error {
	r, err := room.GetRoom(ctx.Storage, ctx.Origin.Room)
	if err != nil {
		return err
	}

	if err = r.AddMember(b.Member); err != nil {
		return err
	}

	return r.Save(ctx.Storage)
}

// RemoveMember removes the member from the council of the room.
type RemoveMember struct {
	Member string `json:"member"`
}

func NewRemoveMember(member string) RemoveMember {
	return RemoveMember{Member: member}
}

func (b RemoveMember) IsWellFormed() error {
	if !keypair.IsAddress(b.Member) {
		return errors.InvalidAddress.Clone().SetData("address", b.Member)
	}

	return nil
}

func (b RemoveMember) Execute(ctx Context) error {
	r, err := room.GetRoom(ctx.Storage, ctx.Origin.Room)
	if err != nil {
		return err
	}

	if err = r.RemoveMember(b.Member); err != nil {
		return err
	}

	return r.Save(ctx.Storage)
}

// ChangeOwner sets the owner of the room.
type ChangeOwner struct {
	Owner string `json:"owner"`
}

func NewChangeOwner(owner string) ChangeOwner {
	return ChangeOwner{Owner: owner}
}

func (b ChangeOwner) IsWellFormed() error {
	if !keypair.IsAddress(b.Owner) {
		return errors.InvalidAddress.Clone().SetData("address", b.Owner)
	}

	return nil
}

func (b ChangeOwner) Execute(ctx Context) error {
	r, err := room.GetRoom(ctx.Storage, ctx.Origin.Room)
	if err != nil {
		return err
	}

	r.Owner = b.Owner

	return r.Save(ctx.Storage)
}
