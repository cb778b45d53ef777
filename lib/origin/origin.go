package origin

import (
	"fmt"
)

type Kind uint8

const (
	// KindMember is a single council member acting directly.
	KindMember Kind = iota + 1
	// KindMembers is the collective approval with the tally of ayes out of
	// seats.
	KindMembers
)

func (k Kind) String() string {
	switch k {
	case KindMember:
		return "member"
	case KindMembers:
		return "members"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "member":
		*k = KindMember
	case "members":
		*k = KindMembers
	default:
		return fmt.Errorf("unknown origin kind, %q", string(b))
	}

	return nil
}

// Origin is the fact of how a dispatched action was authorized. Only the
// fields of its `Kind` are meaningful.
type Origin struct {
	Kind    Kind   `json:"kind"`
	Room    uint64 `json:"room"`
	Account string `json:"account,omitempty"`
	Ayes    uint32 `json:"ayes,omitempty"`
	Seats   uint32 `json:"seats,omitempty"`
}

func Member(room uint64, account string) Origin {
	return Origin{Kind: KindMember, Room: room, Account: account}
}

func Members(room uint64, ayes, seats uint32) Origin {
	return Origin{Kind: KindMembers, Room: room, Ayes: ayes, Seats: seats}
}

func (o Origin) String() string {
	switch o.Kind {
	case KindMember:
		return fmt.Sprintf("Member(%d, %s)", o.Room, o.Account)
	case KindMembers:
		return fmt.Sprintf("Members(%d, %d/%d)", o.Room, o.Ayes, o.Seats)
	default:
		return o.Kind.String()
	}
}
