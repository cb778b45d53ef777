package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// CollectiveObserver receives every event of the collective engine. The event
// name is the event kind, like `proposed`, and the only argument is the event
// itself.
var CollectiveObserver = observable.New()

const (
	ConditionAll  = "*"
	ConditionRoom = "room"
	ConditionHash = "hash"
)

type Event struct {
	Kind      string `json:"kind"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(kind, condition, id string) Event {
	return Event{
		Kind:      kind,
		Condition: condition,
		Id:        id,
	}
}

// String returns the name the event is triggered under, like
// `closed-room=1`.
func (e Event) String() string {
	toStr := e.Kind + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "=" + e.Id
	}
	return toStr
}
