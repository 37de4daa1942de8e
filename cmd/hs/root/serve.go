package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukprmenbersaku-abc/help-study/internal/api"
	"github.com/ukprmenbersaku-abc/help-study/internal/ui"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			logger := a.logger.Named("api")
			h := api.NewHandler(a.svc, logger, a.cfg.Deadlines.Limit)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconBolt, ui.LabelValue("Listening on", addr))
			return api.Serve(ctx, addr, api.NewRouter(h, a.cfg.Server.Debug), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
