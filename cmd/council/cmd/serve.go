package cmd

import (
	"os"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/council/cmd/council/common"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/rpc"
)

var (
	serveCmd *cobra.Command

	flagBind      string = common.GetENVValue("COUNCIL_BIND", "http://localhost:54321")
	flagRateLimit string = common.GetENVValue("COUNCIL_RATE_LIMIT", "")

	bindEndpoint *common.Endpoint
)

func init() {
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the state of the rooms by JSON-RPC",
		Run: func(c *cobra.Command, args []string) {
			parseFlags(c)

			var err error
			if bindEndpoint, err = common.ParseEndpoint(flagBind); err != nil {
				cmdcommon.PrintFlagsError(c, "--bind", err)
			}

			if err := runServe(); err != nil {
				log.Crit("failed to serve", "error", err)
				os.Exit(1)
			}
		},
	}

	serveCmd.Flags().StringVar(&flagBind, "bind", flagBind, "endpoint uri to listen on")
	serveCmd.Flags().StringVar(&flagRateLimit, "rate-limit", flagRateLimit, "request rate limit, like '100-S'; no limit when empty")

	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	ec, err := openEngine()
	if err != nil {
		return err
	}
	defer ec.Close()

	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	server, err := rpc.NewServer(bindEndpoint, ec.engine, ec.st, flagRateLimit)
	if err != nil {
		return err
	}

	log.Info("starting council", "endpoint", bindEndpoint, "storage", storageConfig)

	var g run.Group
	{
		g.Add(func() error {
			return server.Start()
		}, func(error) {
			server.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	return g.Run()
}
