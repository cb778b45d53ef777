package cmd

import (
	"io"
	"strings"

	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common/observer"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

var eventKinds = []collective.EventKind{
	collective.EventProposed,
	collective.EventVoted,
	collective.EventApproved,
	collective.EventDisapproved,
	collective.EventExecuted,
	collective.EventMemberExecuted,
	collective.EventClosed,
}

func init() {
	var names []string
	for _, kind := range eventKinds {
		names = append(names, string(kind))
	}

	observer.CollectiveObserver.On(strings.Join(names, " "), func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		if e, ok := args[0].(collective.Event); ok {
			log.Debug("event", "kind", e.Kind, "room", e.Room, "hash", e.Hash, "event", e)
		}
	})
}

// engineContext is the engine over the storage of `--storage`; the emitted
// events are kept in `recorder` to be printed.
type engineContext struct {
	st       *storage.LevelDBBackend
	engine   *collective.Engine
	recorder *collective.Recorder
}

func openEngine() (*engineContext, error) {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return nil, err
	}

	recorder := collective.NewRecorder()
	engine, err := collective.NewEngine(
		st,
		room.NewRegistry(),
		filter,
		config,
		collective.NewManualClock(height),
		collective.MultiSink{recorder, collective.NewObserverSink()},
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &engineContext{st: st, engine: engine, recorder: recorder}, nil
}

func (ec *engineContext) Close() {
	if err := ec.st.Close(); err != nil {
		log.Error("failed to close storage", "error", err)
	}
}

// printEvents writes the events emitted by the call.
func (ec *engineContext) printEvents(w io.Writer) error {
	events := ec.recorder.Events()
	if len(events) < 1 {
		return nil
	}

	return encode(events, w)
}
