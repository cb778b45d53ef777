package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/common/keypair"
)

var (
	keyCmd         *cobra.Command
	keyGenerateCmd *cobra.Command

	flagKeyParse bool
)

type keyPair struct {
	Seed    string `json:"seed" yaml:"seed"`
	Address string `json:"address" yaml:"address"`
}

func init() {
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Keypair of the council members",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	keyGenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed>]",
		Short: "Generate keypair, or parse the secret seed with --parse",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			var seed string
			if len(args) > 0 {
				seed = args[0]
			}

			kp, err := generateKP(seed, flagKeyParse)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<secret seed>", err)
			}

			if err := printKP(c.OutOrStdout(), kp); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	keyGenerateCmd.Flags().BoolVar(&flagKeyParse, "parse", false, "parse secret seed")

	keyCmd.AddCommand(keyGenerateCmd)
	rootCmd.AddCommand(keyCmd)
}

func generateKP(seed string, parse bool) (*keypair.Full, error) {
	if !parse {
		return keypair.RandomCanFail()
	}

	if len(seed) < 1 {
		return nil, errors.New("--parse needs <secret seed>")
	}

	kp, ok := keypair.ParseSeed(seed)
	if !ok {
		return nil, fmt.Errorf("not a secret seed")
	}

	return kp, nil
}

func printKP(w io.Writer, kp *keypair.Full) error {
	return encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, w)
}
