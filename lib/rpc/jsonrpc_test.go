package rpc

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	rpcjson "github.com/gorilla/rpc/json"
	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/room"
	"boscoin.io/council/lib/version"
)

type jsonrpcServerTestHelper struct {
	t        *testing.T
	server   *httptest.Server
	endpoint *common.Endpoint
	te       *collective.TestEngine
	s        *Server
}

func (jp *jsonrpcServerTestHelper) prepare(rateLimit string) {
	jp.te = collective.NewTestEngine(jp.t, 4, common.NewTestConfig(), nil)

	endpoint := common.MustParseEndpoint("http://localhost/jsonrpc")

	var err error
	jp.s, err = NewServer(endpoint, jp.te.Engine, jp.te.Storage, rateLimit)
	require.NoError(jp.t, err)

	jp.server = httptest.NewServer(jp.s.Handler())

	u, _ := url.Parse(jp.server.URL)
	endpoint.Host = u.Host
	endpoint.Scheme = u.Scheme
	jp.endpoint = endpoint
}

func (jp *jsonrpcServerTestHelper) done() {
	jp.server.Close()
	jp.te.Close()
}

func (jp *jsonrpcServerTestHelper) post(method string, args interface{}) *http.Response {
	message, err := rpcjson.EncodeClientRequest(method, args)
	require.NoError(jp.t, err)

	req, err := http.NewRequest("POST", jp.endpoint.String(), bytes.NewBuffer(message))
	require.NoError(jp.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(jp.t, err)

	return resp
}

func (jp *jsonrpcServerTestHelper) call(method string, args, result interface{}) error {
	resp := jp.post(method, args)
	defer resp.Body.Close()

	return rpcjson.DecodeClientResponse(resp.Body, result)
}

func TestJSONRPCProposals(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare("")
	defer jp.done()

	a := action.MustNewAction(action.NewRemark("showme"))
	require.NoError(t, jp.te.Propose(jp.te.Address(1), collective.TestRoomID, 2, a, "findme", 1024))

	{
		var result ProposalsResult
		require.NoError(t, jp.call("Council.Proposals", &RoomArgs{Room: collective.TestRoomID}, &result))
		require.Equal(t, collective.TestRoomID, result.Room)
		require.Equal(t, []string{a.Hash()}, result.Proposals)
	}

	{
		var result ProposalOfResult
		args := &ProposalArgs{Room: collective.TestRoomID, Hash: a.Hash()}
		require.NoError(t, jp.call("Council.ProposalOf", args, &result))
		require.True(t, result.Found)
		require.Equal(t, a.Hash(), result.Proposal.Hash())
	}

	{
		var result VotingResult
		args := &ProposalArgs{Room: collective.TestRoomID, Hash: a.Hash()}
		require.NoError(t, jp.call("Council.Voting", args, &result))
		require.True(t, result.Found)
		require.Equal(t, "findme", result.Voting.Reason)
		require.Equal(t, []string{jp.te.Address(1)}, result.Voting.Ayes)
	}

	{
		var result VotingResult
		args := &ProposalArgs{Room: collective.TestRoomID, Hash: "unknown"}
		require.NoError(t, jp.call("Council.Voting", args, &result))
		require.False(t, result.Found)
		require.Nil(t, result.Voting)
	}

	{
		var result ProposalCountResult
		require.NoError(t, jp.call("Council.ProposalCount", &RoomArgs{Room: collective.TestRoomID}, &result))
		require.Equal(t, uint32(1), result.Count)
	}

	{
		var result MotionDurationResult
		require.NoError(t, jp.call("Council.MotionDuration", &RoomArgs{Room: collective.TestRoomID}, &result))
		require.Equal(t, common.NewTestConfig().MotionDuration, result.MotionDuration)
	}
}

func TestJSONRPCRoom(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare("")
	defer jp.done()

	{
		var result room.Room
		require.NoError(t, jp.call("Council.Room", &RoomArgs{Room: collective.TestRoomID}, &result))
		require.Equal(t, collective.TestRoomID, result.ID)
		require.Equal(t, jp.te.Address(0), result.Owner)
		require.Equal(t, 4, len(result.Council))
	}

	{
		var result room.Room
		require.Error(t, jp.call("Council.Room", &RoomArgs{Room: 2}, &result))
	}

	{
		council := []string{jp.te.Address(1)}
		require.NoError(t, room.NewRoom(2, council[0], council).Save(jp.te.Storage))

		var result RoomsResult
		require.NoError(t, jp.call("Council.Rooms", &RoomsArgs{}, &result))
		require.Equal(t, 2, len(result.Rooms))
		require.Equal(t, uint64(1), result.Rooms[0].ID)
		require.Equal(t, uint64(2), result.Rooms[1].ID)
	}
}

func TestJSONRPCVersion(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare("")
	defer jp.done()

	var result version.Info
	require.NoError(t, jp.call("Council.Version", &VersionArgs{}, &result))
	require.Equal(t, version.Version, result.Version)
}

func TestJSONRPCMetrics(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare("")
	defer jp.done()

	resp, err := http.Get(jp.server.URL + UrlPathMetric)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJSONRPCRateLimit(t *testing.T) {
	jp := jsonrpcServerTestHelper{t: t}
	jp.prepare("1-H")
	defer jp.done()

	{
		resp := jp.post("Council.Version", &VersionArgs{})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{
		resp := jp.post("Council.Version", &VersionArgs{})
		resp.Body.Close()
		require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	}
}

func TestNewServerWrongRateLimit(t *testing.T) {
	_, err := NewServer(common.MustParseEndpoint("http://localhost"), nil, nil, "showme")
	require.Error(t, err)
}
