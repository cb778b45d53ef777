package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/origin"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

func TestActionHash(t *testing.T) {
	a := MustNewAction(NewRemark("showme"))
	b := MustNewAction(NewRemark("showme"))
	c := MustNewAction(NewRemark("findme"))

	require.NotEmpty(t, a.Hash())
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())

	// same body value, different type
	address := keypair.Random().Address()
	require.NotEqual(t,
		MustNewAction(NewAddMember(address)).Hash(),
		MustNewAction(NewRemoveMember(address)).Hash(),
	)
}

func TestActionSize(t *testing.T) {
	short := MustNewAction(NewRemark("a"))
	long := MustNewAction(NewRemark("a much longer remark than the other one"))

	require.True(t, short.Size() > 0)
	require.True(t, long.Size() > short.Size())
}

func TestActionJSON(t *testing.T) {
	for _, body := range []Body{
		NewRemark("showme"),
		NewAddMember(keypair.Random().Address()),
		NewRemoveMember(keypair.Random().Address()),
		NewChangeOwner(keypair.Random().Address()),
	} {
		a := MustNewAction(body)

		b, err := json.Marshal(a)
		require.NoError(t, err)

		var r Action
		require.NoError(t, json.Unmarshal(b, &r))
		require.Equal(t, a, r)
		require.Equal(t, a.Hash(), r.Hash())
	}

	var r Action
	err := json.Unmarshal([]byte(`{"H":{"type":"transfer"},"B":{}}`), &r)
	require.True(t, errors.Is(err, errors.UnknownActionType))
}

func TestParseAction(t *testing.T) {
	address := keypair.Random().Address()

	a, err := ParseAction("add-member", address)
	require.NoError(t, err)
	require.Equal(t, TypeAddMember, a.H.Type)
	require.Equal(t, NewAddMember(address), a.B)

	_, err = ParseAction("add-member", "showme")
	require.True(t, errors.Is(err, errors.InvalidAddress))

	_, err = ParseAction("transfer", address)
	require.True(t, errors.Is(err, errors.UnknownActionType))

	require.True(t, IsValidActionType("remark"))
	require.False(t, IsValidActionType("transfer"))
}

func TestFilter(t *testing.T) {
	remark := MustNewAction(NewRemark("showme"))
	add := MustNewAction(NewAddMember(keypair.Random().Address()))

	require.True(t, AllowAll.Contains(remark))
	require.True(t, AllowAll.Contains(add))

	f := AllowTypes(TypeRemark)
	require.True(t, f.Contains(remark))
	require.False(t, f.Contains(add))
}

type dispatchTest struct {
	st      *storage.LevelDBBackend
	owner   string
	members []string
	ctx     func(origin.Origin) Context
}

func newDispatchTest(t *testing.T) *dispatchTest {
	st := storage.NewTestStorage()

	var members []string
	for i := 0; i < 4; i++ {
		members = append(members, keypair.Random().Address())
	}
	require.NoError(t, room.NewRoom(1, members[0], members).Save(st))

	return &dispatchTest{
		st:      st,
		owner:   members[0],
		members: members,
		ctx: func(o origin.Origin) Context {
			return Context{Storage: st, Oracle: room.NewRegistry(), Origin: o}
		},
	}
}

func (d *dispatchTest) room(t *testing.T) *room.Room {
	r, err := room.GetRoom(d.st, 1)
	require.NoError(t, err)
	return r
}

func TestDispatchRemark(t *testing.T) {
	d := newDispatchTest(t)
	defer d.st.Close()

	a := MustNewAction(NewRemark("showme"))
	require.NoError(t, a.Dispatch(d.ctx(origin.Member(1, d.members[1]))))
	require.NoError(t, a.Dispatch(d.ctx(origin.Members(1, 1, 4))))
	require.True(t, errors.Is(a.Dispatch(d.ctx(origin.Origin{Room: 1})), errors.BadOrigin))
}

func TestDispatchAddMember(t *testing.T) {
	d := newDispatchTest(t)
	defer d.st.Close()

	newMember := keypair.Random().Address()
	a := MustNewAction(NewAddMember(newMember))

	// not owner
	err := a.Dispatch(d.ctx(origin.Member(1, d.members[1])))
	require.True(t, errors.Is(err, errors.BadOrigin))

	// less than half
	err = a.Dispatch(d.ctx(origin.Members(1, 1, 4)))
	require.True(t, errors.Is(err, errors.BadOrigin))
	require.False(t, d.room(t).IsMember(newMember))

	// owner
	require.NoError(t, a.Dispatch(d.ctx(origin.Member(1, d.owner))))
	require.True(t, d.room(t).IsMember(newMember))

	// already member
	err = a.Dispatch(d.ctx(origin.Members(1, 2, 4)))
	require.True(t, errors.Is(err, errors.AlreadyMember))
	require.Equal(t, 5, len(d.room(t).Council))
}

func TestDispatchRemoveMember(t *testing.T) {
	d := newDispatchTest(t)
	defer d.st.Close()

	a := MustNewAction(NewRemoveMember(d.members[3]))

	// exactly half is not enough
	err := a.Dispatch(d.ctx(origin.Members(1, 2, 4)))
	require.True(t, errors.Is(err, errors.BadOrigin))

	err = a.Dispatch(d.ctx(origin.Member(1, d.owner)))
	require.True(t, errors.Is(err, errors.BadOrigin))

	require.NoError(t, a.Dispatch(d.ctx(origin.Members(1, 3, 4))))
	require.False(t, d.room(t).IsMember(d.members[3]))

	err = a.Dispatch(d.ctx(origin.Members(1, 3, 3)))
	require.True(t, errors.Is(err, errors.NotMember))
}

func TestDispatchChangeOwner(t *testing.T) {
	d := newDispatchTest(t)
	defer d.st.Close()

	a := MustNewAction(NewChangeOwner(d.members[2]))

	err := a.Dispatch(d.ctx(origin.Members(1, 2, 4)))
	require.True(t, errors.Is(err, errors.BadOrigin))
	require.Equal(t, d.owner, d.room(t).Owner)

	require.NoError(t, a.Dispatch(d.ctx(origin.Members(1, 3, 4))))
	require.Equal(t, d.members[2], d.room(t).Owner)

	// room missing
	err = a.Dispatch(Context{Storage: d.st, Oracle: room.NewRegistry(), Origin: origin.Members(2, 3, 3)})
	require.True(t, errors.Is(err, errors.RoomNotFound))
}

func TestDispatchMalformed(t *testing.T) {
	d := newDispatchTest(t)
	defer d.st.Close()

	a := MustNewAction(NewAddMember("showme"))
	err := a.Dispatch(d.ctx(origin.Member(1, d.owner)))
	require.True(t, errors.Is(err, errors.InvalidAddress))

	err = Action{H: Header{Type: TypeRemark}}.Dispatch(d.ctx(origin.Member(1, d.owner)))
	require.True(t, errors.Is(err, errors.ActionBodyInsufficient))
}
