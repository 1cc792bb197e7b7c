package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/server"
)

// NewServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var (
		addr      string
		withStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the emission report HTTP API",
		Long: `Serves the HTTP API:

  POST /api/v1/emissions      calculate a report
  GET  /api/v1/options        accepted farm values
  GET  /api/v1/health         service health
  GET  /api/v1/reports        recent saved reports
  GET  /api/v1/reports/:id    one saved report
  GET  /api/v1/statistics     statistics over saved reports
  GET  /metrics               Prometheus metrics

Reports are saved when the store is enabled in the configuration or with
--store. The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			asm, err := newAssembler(ctx)
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			serverCfg := cfg.Server
			if cmd.Flags().Changed("addr") {
				serverCfg.Address = addr
			}

			opts := []server.Option{server.WithLogger(logger)}
			if withStore || cfg.Store.Enabled {
				st, err := openStore(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = st.Close() }()
				opts = append(opts, server.WithStore(st))
			}

			return server.New(asm, serverCfg, opts...).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddress, "listen address")
	cmd.Flags().BoolVar(&withStore, "store", false, "save reports and serve history")
	return cmd
}
