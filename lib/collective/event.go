package collective

import (
	"fmt"
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/observer"
	"boscoin.io/council/lib/errors"
)

type EventKind string

const (
	EventProposed       EventKind = "proposed"
	EventVoted          EventKind = "voted"
	EventApproved       EventKind = "approved"
	EventDisapproved    EventKind = "disapproved"
	EventExecuted       EventKind = "executed"
	EventMemberExecuted EventKind = "member-executed"
	EventClosed         EventKind = "closed"
)

// Event is emitted by the engine after the call is committed. The fields
// other than `Kind`, `Room` and `Hash` are set by kind,
//   - proposed: Account, Index, Threshold
//   - voted: Account, Approve, Seats, Ayes, Nays
//   - executed, member-executed: Result, nil on success
//   - closed: Ayes, Nays
type Event struct {
	Kind      EventKind     `json:"kind"`
	Room      uint64        `json:"room"`
	Hash      string        `json:"hash"`
	Account   string        `json:"account,omitempty"`
	Index     uint32        `json:"index"`
	Threshold uint32        `json:"threshold"`
	Approve   bool          `json:"approve"`
	Seats     uint32        `json:"seats"`
	Ayes      uint32        `json:"ayes"`
	Nays      uint32        `json:"nays"`
	Result    *errors.Error `json:"result,omitempty"`
}

func (e Event) String() string {
	return string(common.MustMarshalJSON(e))
}

// Succeeded is false when the dispatched action of an executed event failed.
func (e Event) Succeeded() bool {
	return e.Result == nil
}

func dispatchResult(err error) *errors.Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*errors.Error); ok {
		return e
	}

	return errors.New(err.Error())
}

type EventSink interface {
	Emit(Event)
}

type NopSink struct{}

func (NopSink) Emit(Event) {}

// ObserverSink triggers the event to the observable under the kind name and
// the room condition name, like `closed` and `closed-room=1`.
type ObserverSink struct {
	Observable *observable.Observable
}

func NewObserverSink() ObserverSink {
	return ObserverSink{Observable: observer.CollectiveObserver}
}

func (s ObserverSink) Emit(e Event) {
	names := fmt.Sprintf(
		"%s %s",
		e.Kind,
		observer.NewEvent(string(e.Kind), observer.ConditionRoom, fmt.Sprintf("%d", e.Room)).String(),
	)
	s.Observable.Trigger(names, e)
}

// Recorder keeps the emitted events in order.
type Recorder struct {
	sync.RWMutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(e Event) {
	r.Lock()
	defer r.Unlock()

	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.RLock()
	defer r.RUnlock()

	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

func (r *Recorder) Kinds() []EventKind {
	r.RLock()
	defer r.RUnlock()

	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()

	r.events = nil
}

// MultiSink emits to every sink in order.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
