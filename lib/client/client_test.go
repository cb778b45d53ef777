package client

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/rpc"
	"boscoin.io/council/lib/version"
)

func prepareClient(t *testing.T, rateLimit string) (*Client, *collective.TestEngine, func()) {
	te := collective.NewTestEngine(t, 3, common.NewTestConfig(), nil)

	endpoint := common.MustParseEndpoint("http://localhost/jsonrpc")
	s, err := rpc.NewServer(endpoint, te.Engine, te.Storage, rateLimit)
	require.NoError(t, err)

	server := httptest.NewServer(s.Handler())

	u, _ := url.Parse(server.URL)
	endpoint.Host = u.Host

	c, err := NewClient(endpoint, nil)
	require.NoError(t, err)

	return c, te, func() {
		c.Close()
		server.Close()
		te.Close()
	}
}

func TestClientQueries(t *testing.T) {
	c, te, done := prepareClient(t, "")
	defer done()

	a := action.MustNewAction(action.NewRemark("showme"))
	require.NoError(t, te.Propose(te.Address(0), collective.TestRoomID, 2, a, "", 1024))

	proposals, err := c.Proposals(collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, []string{a.Hash()}, proposals)

	proposal, found, err := c.ProposalOf(collective.TestRoomID, a.Hash())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, a.Hash(), proposal.Hash())

	votes, found, err := c.Voting(collective.TestRoomID, a.Hash())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{te.Address(0)}, votes.Ayes)

	_, found, err = c.Voting(collective.TestRoomID, "findme")
	require.NoError(t, err)
	require.False(t, found)

	count, err := c.ProposalCount(collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, uint32(1), count)

	duration, err := c.MotionDuration(collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, common.NewTestConfig().MotionDuration, duration)

	r, err := c.Room(collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, te.Address(0), r.Owner)

	rooms, err := c.Rooms(false, nil, 10)
	require.NoError(t, err)
	require.Equal(t, 1, len(rooms))

	info, err := c.Version()
	require.NoError(t, err)
	require.Equal(t, version.Version, info.Version)
}

func TestClientError(t *testing.T) {
	c, _, done := prepareClient(t, "")
	defer done()

	_, err := c.Room(2)
	require.True(t, errors.Is(err, errors.RoomNotFound))
}

func TestClientWithRetry(t *testing.T) {
	c, te, done := prepareClient(t, "")
	defer done()

	rc, err := NewClient(c.Endpoint(), common.DefaultRetrySetting)
	require.NoError(t, err)
	defer rc.Close()

	r, err := rc.Room(collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, te.Address(0), r.Owner)
}

func TestClientRateLimited(t *testing.T) {
	c, _, done := prepareClient(t, "1-H")
	defer done()

	_, err := c.Version()
	require.NoError(t, err)

	_, err = c.Version()
	require.Error(t, err)

	e, ok := err.(Error)
	require.True(t, ok)
	require.True(t, e.IsRateLimited())
}
