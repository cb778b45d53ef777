package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/action"
)

const defaultLengthBound uint32 = 1024

var (
	proposeCmd *cobra.Command

	flagReason      string
	flagLengthBound uint32 = defaultLengthBound
)

func init() {
	proposeCmd = &cobra.Command{
		Use:   "propose <room id> <threshold> <action type> <value>",
		Short: "Propose action to the council of the room",
		Long: fmt.Sprintf(
			"Propose action to the council of the room; threshold under 2 executes it at once. action type is one of %v",
			action.ActionTypes,
		),
		Args: cobra.MinimumNArgs(4),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			threshold, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<threshold>", err)
			}

			a, err := parseAction(args[2:])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<action type>", err)
			}

			account, err := signer()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--secret-seed", err)
			}

			if err := runPropose(c.OutOrStdout(), account, id, uint32(threshold), a, flagReason, flagLengthBound); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	proposeCmd.Flags().StringVar(&flagReason, "reason", flagReason, "reason of the proposal")
	proposeCmd.Flags().Uint32Var(&flagLengthBound, "length-bound", flagLengthBound, "maximum encoded size of the action")

	rootCmd.AddCommand(proposeCmd)
}

// parseAction makes the action from `<action type> <value>...`; the values
// are joined by space.
func parseAction(args []string) (action.Action, error) {
	if len(args) < 2 {
		return action.Action{}, fmt.Errorf("<action type> <value> must be given")
	}

	return action.ParseAction(args[0], strings.Join(args[1:], " "))
}

func runPropose(w io.Writer, account string, id uint64, threshold uint32, a action.Action, reason string, lengthBound uint32) error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	err = ec.engine.Propose(account, id, threshold, a, reason, lengthBound)
	if perr := ec.printEvents(w); perr != nil {
		return perr
	}

	return err
}
