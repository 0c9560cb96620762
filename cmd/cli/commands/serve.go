package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timetable HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.Cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Logger.Info("Starting API server",
				zap.String("addr", app.Cfg.HTTP.Addr),
				zap.String("store", app.Cfg.Store.Backend),
				zap.Bool("cache", app.Cache.Enabled()))

			server := api.NewServer(api.Deps{
				Config:  app.Cfg,
				Store:   app.Store,
				Cache:   app.Cache,
				Metrics: app.Metrics,
				Logger:  app.Logger,
			})
			return server.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides http.addr)")

	return cmd
}
