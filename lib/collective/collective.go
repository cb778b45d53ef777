package collective

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/origin"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
)

var log logging.Logger = logging.New("module", "collective")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// DefaultProposalCacheSize is the number of decoded proposals kept in memory.
var DefaultProposalCacheSize = 256

// Engine runs the proposals and votes of every room.
//
// The calls are serialized by the engine lock, and each call runs in one
// storage transaction: it is committed when the call succeeds or ends with
// `VoteExpire`, and discarded otherwise. The events of a call are emitted
// after the commit.
type Engine struct {
	sync.Mutex

	st     *storage.LevelDBBackend
	oracle room.Oracle
	filter action.Filter
	config common.Config
	clock  Clock
	sink   EventSink

	// proposals by hash; the hash is the content hash, so an entry never
	// becomes stale.
	cache *lru.Cache
}

func NewEngine(
	st *storage.LevelDBBackend,
	oracle room.Oracle,
	filter action.Filter,
	config common.Config,
	clock Clock,
	sink EventSink,
) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = action.AllowAll
	}
	if sink == nil {
		sink = NopSink{}
	}

	cache, err := lru.New(DefaultProposalCacheSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		st:     st,
		oracle: oracle,
		filter: filter,
		config: config,
		clock:  clock,
		sink:   sink,
		cache:  cache,
	}, nil
}

func (e *Engine) Config() common.Config {
	return e.config
}

// call is the state of a running call.
type call struct {
	e      *Engine
	st     *storage.LevelDBBackend
	log    logging.Logger
	events []Event
}

func (c *call) emit(ev Event) {
	c.events = append(c.events, ev)
}

func (c *call) checker(caller string, roomID uint64, funcs ...common.CheckerFunc) *callChecker {
	checker := &callChecker{c: c, Caller: caller, Room: roomID}
	checker.Funcs = funcs

	return checker
}

func (c *call) dispatch(a action.Action, o origin.Origin) error {
	err := a.Dispatch(action.Context{
		Storage: c.st,
		Oracle:  c.e.oracle,
		Origin:  o,
	})
	metrics.Collective.AddDispatch(err)

	return err
}

func (c *call) proposalOf(roomID uint64, hash string) (action.Action, bool, error) {
	exists, err := existsProposalOf(c.st, roomID, hash)
	if err != nil || !exists {
		return action.Action{}, false, err
	}

	if cached, found := c.e.cache.Get(hash); found {
		return cached.(action.Action), true, nil
	}

	a, found, err := getProposalOf(c.st, roomID, hash)
	if err != nil || !found {
		return a, found, err
	}
	c.e.cache.Add(hash, a)

	return a, true, nil
}

func (e *Engine) run(name string, fn func(*call) error) (err error) {
	e.Lock()
	defer e.Unlock()

	l := log.New("call", name, "id", uuid.New().String())

	var ts *storage.LevelDBBackend
	if ts, err = e.st.OpenTransaction(); err != nil {
		return
	}

	c := &call{e: e, st: ts, log: l}

	err = fn(c)
	if err != nil && !errors.Is(err, errors.VoteExpire) {
		l.Debug("call failed", "error", err)
		if derr := ts.Discard(); derr != nil {
			l.Error("failed to discard transaction", "error", derr)
		}
		return
	}

	if cerr := ts.Commit(); cerr != nil {
		l.Error("failed to commit transaction", "error", cerr)
		return cerr
	}

	l.Debug("call committed", "events", len(c.events), "error", err)

	for _, ev := range c.events {
		e.sink.Emit(ev)
	}

	return
}

// MotionDuration is the number of blocks a proposal of the room stays open.
func (e *Engine) MotionDuration(roomID uint64) uint64 {
	return e.config.MotionDuration
}

// Proposals returns the pending hashes of the room in proposed order.
func (e *Engine) Proposals(roomID uint64) ([]string, error) {
	return getProposals(e.st, roomID)
}

func (e *Engine) ProposalOf(roomID uint64, hash string) (action.Action, bool, error) {
	c := &call{e: e, st: e.st, log: log}
	return c.proposalOf(roomID, hash)
}

func (e *Engine) Voting(roomID uint64, hash string) (Votes, bool, error) {
	return getVoting(e.st, roomID, hash)
}

// ProposalCount returns the next proposal index of the room.
func (e *Engine) ProposalCount(roomID uint64) (uint32, error) {
	return getProposalCount(e.st, roomID)
}
