package rpc

import (
	"net/http"
	"time"

	gorillarpc "github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/storage"
	"boscoin.io/council/lib/version"
)

const ServiceName string = "Council"

type RoomArgs struct {
	Room uint64 `json:"room"`
}

type ProposalArgs struct {
	Room uint64 `json:"room"`
	Hash string `json:"hash"`
}

type RoomsArgs struct {
	Reverse bool   `json:"reverse"`
	Cursor  []byte `json:"cursor"`
	Limit   uint64 `json:"limit"`
}

type VersionArgs struct{}

type ProposalsResult struct {
	Room      uint64   `json:"room"`
	Proposals []string `json:"proposals"`
}

type ProposalOfResult struct {
	Found    bool           `json:"found"`
	Proposal *action.Action `json:"proposal,omitempty"`
}

type VotingResult struct {
	Found  bool              `json:"found"`
	Voting *collective.Votes `json:"voting,omitempty"`
}

type ProposalCountResult struct {
	Room  uint64 `json:"room"`
	Count uint32 `json:"count"`
}

type MotionDurationResult struct {
	Room           uint64 `json:"room"`
	MotionDuration uint64 `json:"motion_duration"`
}

type RoomsResult struct {
	Rooms []room.Room `json:"rooms"`
}

// councilApp serves the committed state of the engine; it never mutates.
type councilApp struct {
	engine *collective.Engine
	st     *storage.LevelDBBackend
}

func observe(method string, begin time.Time, err error) {
	metrics.API.Observe(method, begin, err)
	if err != nil {
		log.Debug("request failed", "method", method, "error", err)
	}
}

func (j *councilApp) Proposals(r *http.Request, args *RoomArgs, result *ProposalsResult) (err error) {
	defer func(begin time.Time) { observe("Proposals", begin, err) }(time.Now())

	var proposals []string
	if proposals, err = j.engine.Proposals(args.Room); err != nil {
		return
	}

	*result = ProposalsResult{Room: args.Room, Proposals: proposals}
	return
}

func (j *councilApp) ProposalOf(r *http.Request, args *ProposalArgs, result *ProposalOfResult) (err error) {
	defer func(begin time.Time) { observe("ProposalOf", begin, err) }(time.Now())

	a, found, err := j.engine.ProposalOf(args.Room, args.Hash)
	if err != nil {
		return
	}

	result.Found = found
	if found {
		result.Proposal = &a
	}
	return
}

func (j *councilApp) Voting(r *http.Request, args *ProposalArgs, result *VotingResult) (err error) {
	defer func(begin time.Time) { observe("Voting", begin, err) }(time.Now())

	votes, found, err := j.engine.Voting(args.Room, args.Hash)
	if err != nil {
		return
	}

	result.Found = found
	if found {
		result.Voting = &votes
	}
	return
}

func (j *councilApp) ProposalCount(r *http.Request, args *RoomArgs, result *ProposalCountResult) (err error) {
	defer func(begin time.Time) { observe("ProposalCount", begin, err) }(time.Now())

	var count uint32
	if count, err = j.engine.ProposalCount(args.Room); err != nil {
		return
	}

	*result = ProposalCountResult{Room: args.Room, Count: count}
	return
}

func (j *councilApp) MotionDuration(r *http.Request, args *RoomArgs, result *MotionDurationResult) (err error) {
	defer func(begin time.Time) { observe("MotionDuration", begin, err) }(time.Now())

	*result = MotionDurationResult{
		Room:           args.Room,
		MotionDuration: j.engine.MotionDuration(args.Room),
	}
	return
}

func (j *councilApp) Room(r *http.Request, args *RoomArgs, result *room.Room) (err error) {
	defer func(begin time.Time) { observe("Room", begin, err) }(time.Now())

	var rm *room.Room
	if rm, err = room.GetRoom(j.st, args.Room); err != nil {
		return
	}

	*result = *rm
	return
}

func (j *councilApp) Rooms(r *http.Request, args *RoomsArgs, result *RoomsResult) (err error) {
	defer func(begin time.Time) { observe("Rooms", begin, err) }(time.Now())

	options := storage.NewDefaultListOptions(args.Reverse, args.Cursor, args.Limit)

	rooms := []room.Room{}
	iterFunc, closeFunc := room.GetRooms(j.st, options)
	defer closeFunc()
	for {
		rm, hasNext := iterFunc()
		if !hasNext {
			break
		}
		rooms = append(rooms, *rm)
	}

	result.Rooms = rooms
	return
}

func (j *councilApp) Version(r *http.Request, args *VersionArgs, result *version.Info) (err error) {
	defer func(begin time.Time) { observe("Version", begin, err) }(time.Now())

	*result = version.GetInfo()
	return
}

func newRPCServer(engine *collective.Engine, st *storage.LevelDBBackend) *gorillarpc.Server {
	s := gorillarpc.NewServer()
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&councilApp{engine: engine, st: st}, ServiceName)

	return s
}
