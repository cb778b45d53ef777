package action

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/origin"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

var log logging.Logger = logging.New("module", "action")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

type ActionType string

const (
	TypeRemark       ActionType = "remark"
	TypeAddMember    ActionType = "add-member"
	TypeRemoveMember ActionType = "remove-member"
	TypeChangeOwner  ActionType = "change-owner"
)

var ActionTypes = []ActionType{
	TypeRemark,
	TypeAddMember,
	TypeRemoveMember,
	TypeChangeOwner,
}

func IsValidActionType(t string) bool {
	for _, at := range ActionTypes {
		if string(at) == t {
			return true
		}
	}

	return false
}

// Action is the dispatchable payload of a proposal.
type Action struct {
	H Header
	B Body
}

type Header struct {
	Type ActionType `json:"type"`
}

type Body interface {
	//
	// Check that the body is self consistent, without looking at the
	// storage.
	//
	IsWellFormed() error

	//
	// Apply the body to the room of the context. The origin is already
	// ensured.
	//
	Execute(Context) error
}

// Context is what an action is dispatched with.
type Context struct {
	Storage *storage.LevelDBBackend
	Oracle  room.Oracle
	Origin  origin.Origin
}

func NewAction(b Body) (a Action, err error) {
	var t ActionType
	switch b.(type) {
	case Remark:
		t = TypeRemark
	case AddMember:
		t = TypeAddMember
	case RemoveMember:
		t = TypeRemoveMember
	case ChangeOwner:
		t = TypeChangeOwner
	default:
		err = errors.UnknownActionType
		return
	}

	a = Action{
		H: Header{Type: t},
		B: b,
	}

	return
}

func MustNewAction(b Body) Action {
	a, err := NewAction(b)
	if err != nil {
		panic(err)
	}

	return a
}

func (a Action) IsWellFormed() error {
	if a.B == nil {
		return errors.ActionBodyInsufficient
	}

	return a.B.IsWellFormed()
}

// Hash is the base58 content hash of the action.
func (a Action) Hash() string {
	h, _ := common.MakeObjectHashString(a)
	return h
}

// Size is the length of the serialized action.
func (a Action) Size() uint32 {
	n, _ := common.EncodedSize(a)
	return uint32(n)
}

func (a Action) String() string {
	encoded, _ := json.MarshalIndent(a, "", "  ")

	return string(encoded)
}

func (a Action) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []interface{}{string(a.H.Type), a.B})
}

// Dispatch ensures the origin required by the action type and executes the
// body.
func (a Action) Dispatch(ctx Context) (err error) {
	defer func() {
		log.Debug(
			"action dispatched",
			"type", a.H.Type,
			"origin", ctx.Origin,
			"error", err,
		)
	}()

	if err = a.IsWellFormed(); err != nil {
		return
	}

	var ensure origin.EnsureOrigin
	if ensure, err = RequiredOrigin(a.H.Type, ctx.Oracle); err != nil {
		return
	}

	if err = ensure.Ensure(ctx.Storage, ctx.Origin); err != nil {
		return
	}

	return a.B.Execute(ctx)
}

// RequiredOrigin returns the origin check of the action type.
func RequiredOrigin(t ActionType, oracle room.Oracle) (origin.EnsureOrigin, error) {
	switch t {
	case TypeRemark:
		return origin.EnsureAny{}, nil
	case TypeAddMember:
		return origin.Either(
			origin.EnsureRoomOwner{Oracle: oracle},
			origin.EnsureProportionAtLeast{N: 1, D: 2},
		), nil
	case TypeRemoveMember:
		return origin.EnsureProportionMoreThan{N: 1, D: 2}, nil
	case TypeChangeOwner:
		return origin.EnsureProportionAtLeast{N: 2, D: 3}, nil
	default:
		return nil, errors.UnknownActionType.Clone().SetData("type", t)
	}
}

type envelop struct {
	H Header
	B interface{}
}

func (a *Action) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	aj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &aj); err != nil {
		return
	}

	a.H = aj.H

	var body Body
	if body, err = UnmarshalBodyJSON(aj.H.Type, raw); err != nil {
		return
	}
	a.B = body
	return nil
}

func UnmarshalBodyJSON(t ActionType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, err
	} else {
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `t`
func newBodyFromType(t ActionType) (interface{}, error) {
	switch t {
	case TypeRemark:
		return &Remark{}, nil
	case TypeAddMember:
		return &AddMember{}, nil
	case TypeRemoveMember:
		return &RemoveMember{}, nil
	case TypeChangeOwner:
		return &ChangeOwner{}, nil
	default:
		return nil, errors.UnknownActionType.Clone().SetData("type", t)
	}
}

// ParseAction makes the action from the type name and its single argument,
// like `add-member GABC...`.
func ParseAction(t, value string) (Action, error) {
	var body Body
	switch ActionType(t) {
	case TypeRemark:
		body = NewRemark(value)
	case TypeAddMember:
		body = NewAddMember(value)
	case TypeRemoveMember:
		body = NewRemoveMember(value)
	case TypeChangeOwner:
		body = NewChangeOwner(value)
	default:
		return Action{}, errors.UnknownActionType.Clone().SetData("type", t)
	}

	a, err := NewAction(body)
	if err != nil {
		return Action{}, err
	}

	return a, a.IsWellFormed()
}
