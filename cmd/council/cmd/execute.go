package cmd

import (
	"io"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/action"
)

var executeCmd *cobra.Command

func init() {
	executeCmd = &cobra.Command{
		Use:   "execute <room id> <action type> <value>",
		Short: "Execute action by the owner of the room without voting",
		Args:  cobra.MinimumNArgs(3),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			id, err := parseRoomID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<room id>", err)
			}

			a, err := parseAction(args[1:])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<action type>", err)
			}

			account, err := signer()
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--secret-seed", err)
			}

			if err := runExecute(c.OutOrStdout(), account, id, a, flagLengthBound); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	executeCmd.Flags().Uint32Var(&flagLengthBound, "length-bound", flagLengthBound, "maximum encoded size of the action")

	rootCmd.AddCommand(executeCmd)
}

func runExecute(w io.Writer, account string, id uint64, a action.Action, lengthBound uint32) error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	err = ec.engine.Execute(account, id, a, lengthBound)
	if perr := ec.printEvents(w); perr != nil {
		return perr
	}

	return err
}
