package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwise/internal/server"
	"github.com/matzehuels/stepwise/pkg/player"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		pace    float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve traces, rendered frames and a live player over HTTP.

Backends are chosen from the environment:
  ` + server.EnvRedisURL + `  Redis URL for the trace and frame cache (default: local file cache)
  ` + server.EnvMongoURI + `  MongoDB URI for stored traces (default: in memory)
  ` + server.EnvMongoDB + `   MongoDB database name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cc, st, err := server.BackendsFromEnv(ctx, logger)
			if err != nil {
				return err
			}
			if cc == nil {
				if cc, err = newCache(noCache); err != nil {
					return err
				}
			}

			printInfo("Listening on %s", StyleLink.Render(addr))
			srv := server.New(server.Config{
				Addr:      addr,
				Logger:    logger,
				Cache:     cc,
				Store:     st,
				PaceScale: pace,
			})
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Float64Var(&pace, "pace", player.DefaultPaceScale, "pace multiplier for live runs")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the local file cache")

	return cmd
}
