package cmd

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/action"
	"boscoin.io/council/lib/client"
	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	councilerrors "boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/rpc"
)

func TestQueryViews(t *testing.T) {
	te := collective.NewTestEngine(t, 3, common.NewTestConfig(), nil)
	defer te.Close()

	endpoint := common.MustParseEndpoint("http://localhost/")
	s, err := rpc.NewServer(endpoint, te.Engine, te.Storage, "")
	require.NoError(t, err)

	server := httptest.NewServer(s.Handler())
	defer server.Close()

	u, _ := url.Parse(server.URL)
	endpoint.Host = u.Host
	cl, err := client.NewClient(endpoint, nil)
	require.NoError(t, err)
	defer cl.Close()

	a := action.MustNewAction(action.NewRemark("showme"))
	require.NoError(t, te.Propose(te.Address(0), collective.TestRoomID, 2, a, "", 1024))

	view, err := queryRoomView(cl, collective.TestRoomID)
	require.NoError(t, err)
	require.Equal(t, uint32(1), view.ProposalCount)
	require.Equal(t, 1, len(view.Proposals))
	require.Equal(t, a.Hash(), view.Proposals[0].Hash)
	require.Equal(t, []string{te.Address(0)}, view.Proposals[0].Voting.Ayes)

	_, err = queryProposalView(cl, collective.TestRoomID, "findme")
	require.True(t, councilerrors.Is(err, councilerrors.ProposalMissing))
}
