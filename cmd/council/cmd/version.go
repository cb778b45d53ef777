package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"boscoin.io/council/lib/version"
)

var flagVersionDetail bool

func init() {
	versionCmd.Flags().BoolVar(&flagVersionDetail, "detail", false, "print the build info in --format")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		if !flagVersionDetail {
			fmt.Fprintf(c.OutOrStdout(), "%s\n", version.ToDetailVersion())
			return
		}

		parseFlags(c)
		encode(version.GetInfo(), c.OutOrStdout())
	},
}
