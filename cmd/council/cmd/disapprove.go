package cmd

import (
	"io"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/collective"
)

var disapproveCmd *cobra.Command

func init() {
	disapproveCmd = &cobra.Command{
		Use:   "disapprove <room id> <hash>",
		Short: "Remove the pending proposal by root",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			cl, err := caller()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--root", err)
			}

			if err := runDisapprove(c.OutOrStdout(), cl, id, args[1]); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	rootCmd.AddCommand(disapproveCmd)
}

func runDisapprove(w io.Writer, cl collective.Caller, id uint64, hash string) error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	n, err := ec.engine.DisapproveProposal(cl, id, hash)
	if err != nil {
		return err
	}
	log.Debug("disapproved", "room", id, "hash", hash, "proposals", n)

	return ec.printEvents(w)
}
