package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
)

var voteCmd *cobra.Command

func init() {
	voteCmd = &cobra.Command{
		Use:   "vote <room id> <hash> <index> <aye|nay>",
		Short: "Vote to the pending proposal",
		Args:  cobra.ExactArgs(4),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			index, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<index>", err)
			}

			approve, err := parseApprove(args[3])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<aye|nay>", err)
			}

			account, err := signer()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--secret-seed", err)
			}

			if err := runVote(c.OutOrStdout(), account, id, args[1], uint32(index), approve); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	rootCmd.AddCommand(voteCmd)
}

func parseApprove(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "aye", "yes", "true":
		return true, nil
	case "nay", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("unknown vote, %q", s)
	}
}

// runVote prints the events even when the vote ends with `VoteExpire`.
func runVote(w io.Writer, account string, id uint64, hash string, index uint32, approve bool) error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	err = ec.engine.Vote(account, id, hash, index, approve)
	if perr := ec.printEvents(w); perr != nil {
		return perr
	}

	return err
}
