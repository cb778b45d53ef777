package collective

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

// TestEngine is the engine over the memory storage with one saved room,
// `TestRoomID`, whose owner is the first member.
type TestEngine struct {
	*Engine

	Storage  *storage.LevelDBBackend
	Clock    *ManualClock
	Recorder *Recorder
	Members  []*keypair.Full
}

const TestRoomID uint64 = 1

func NewTestEngine(t *testing.T, councilSize int, config common.Config, filter action.Filter) *TestEngine {
	st := storage.NewTestStorage()

	var members []*keypair.Full
	var council []string
	for i := 0; i < councilSize; i++ {
		kp := keypair.Random()
		members = append(members, kp)
		council = append(council, kp.Address())
	}
	require.NoError(t, room.NewRoom(TestRoomID, council[0], council).Save(st))

	clock := NewManualClock(0)
	recorder := NewRecorder()

	engine, err := NewEngine(st, room.NewRegistry(), filter, config, clock, recorder)
	require.NoError(t, err)

	return &TestEngine{
		Engine:   engine,
		Storage:  st,
		Clock:    clock,
		Recorder: recorder,
		Members:  members,
	}
}

func (te *TestEngine) Address(i int) string {
	return te.Members[i].Address()
}

func (te *TestEngine) Close() {
	te.Storage.Close()
}
