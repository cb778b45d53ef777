package cmd

import (
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/client"
	"boscoin.io/council/lib/common"
	councilerrors "boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

var (
	queryCmd          *cobra.Command
	queryRoomCmd      *cobra.Command
	queryRoomsCmd     *cobra.Command
	queryProposalsCmd *cobra.Command
	queryVersionCmd   *cobra.Command

	flagEndpoint string = common.GetENVValue("COUNCIL_ENDPOINT", "http://localhost:54321")

	flagQueryLimit   uint64
	flagQueryReverse bool

	queryClient *client.Client
)

func init() {
	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Query the running `council serve`",
	}
	queryCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint uri of the server")

	queryRoomCmd = &cobra.Command{
		Use:   "room <room id>",
		Short: "Query room",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			parseQueryFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			r, err := queryClient.Room(id)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(r, c.OutOrStdout())
		},
	}

	queryRoomsCmd = &cobra.Command{
		Use:   "rooms",
		Short: "Query rooms",
		Run: func(c *cobra.Command, args []string) {
			parseQueryFlags(c)

			rooms, err := queryClient.Rooms(flagQueryReverse, nil, flagQueryLimit)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(rooms, c.OutOrStdout())
		},
	}
	queryRoomsCmd.Flags().Uint64Var(&flagQueryLimit, "limit", storage.DefaultMaxLimitListOptions, "maximum number of rooms")
	queryRoomsCmd.Flags().BoolVar(&flagQueryReverse, "reverse", false, "list from the last room")

	queryProposalsCmd = &cobra.Command{
		Use:   "proposals <room id> [<hash>]",
		Short: "Query the pending proposals of the room",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(c *cobra.Command, args []string) {
			parseQueryFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			if len(args) > 1 {
				view, err := queryProposalView(queryClient, id, args[1])
				if err != nil {
					cmdcommon.PrintError(c, err)
				}
				encode(view, c.OutOrStdout())
				return
			}

			view, err := queryRoomView(queryClient, id)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(view, c.OutOrStdout())
		},
	}

	queryVersionCmd = &cobra.Command{
		Use:   "version",
		Short: "Query the version of the server",
		Run: func(c *cobra.Command, args []string) {
			parseQueryFlags(c)

			info, err := queryClient.Version()
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(info, c.OutOrStdout())
		},
	}

	queryCmd.AddCommand(queryRoomCmd, queryRoomsCmd, queryProposalsCmd, queryVersionCmd)
	rootCmd.AddCommand(queryCmd)
}

func parseQueryFlags(c *cobra.Command) {
	parseFlags(c)

	endpoint, err := common.ParseEndpoint(flagEndpoint)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", err)
	}

	if queryClient, err = client.NewClient(endpoint, common.DefaultRetrySetting); err != nil {
		cmdcommon.PrintError(c, err)
	}
}

func queryProposalView(cl *client.Client, id uint64, hash string) (view proposalView, err error) {
	var found bool
	if view.Proposal, found, err = cl.ProposalOf(id, hash); err != nil {
		return
	} else if !found {
		err = councilerrors.ProposalMissing
		return
	}

	if view.Voting, found, err = cl.Voting(id, hash); err != nil {
		return
	} else if !found {
		err = councilerrors.ProposalMissing
		return
	}
	view.Hash = hash

	return
}

func queryRoomView(cl *client.Client, id uint64) (view roomView, err error) {
	view.Room = id
	if view.MotionDuration, err = cl.MotionDuration(id); err != nil {
		return
	}
	if view.ProposalCount, err = cl.ProposalCount(id); err != nil {
		return
	}

	var hashes []string
	if hashes, err = cl.Proposals(id); err != nil {
		return
	}

	view.Proposals = []proposalView{}
	for _, hash := range hashes {
		var pv proposalView
		if pv, err = queryProposalView(cl, id, hash); err != nil {
			return
		}
		view.Proposals = append(view.Proposals, pv)
	}

	return
}
