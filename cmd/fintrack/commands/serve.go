package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
)

// serve: run the web dashboard and JSON API until SIGINT/SIGTERM.
func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.cfg
			logger := appCtx.logger
			if port == "" {
				port = cfg.Port
			}

			srv, err := apphttp.NewServer(apphttp.Config{
				Addr:               ":" + port,
				RateLimitPerMinute: cfg.RateLimitPerMinute,
				CacheTTL:           cfg.CacheTTL,
				TrustedProxies:     cfg.TrustedProxies,
			}, appCtx.ledger, logger, appCtx.backend.Checks...)
			if err != nil {
				return err
			}

			ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("Server shutdown error", log.FieldError, err)
				}
			})

			logger.Info("Starting fintrack server",
				"port", port,
				log.FieldBackend, cfg.DataBackend,
				log.FieldOperation, log.OpStartup)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on port %s: %w", port, err)
			}

			cli.WaitForShutdown(ctx, done)
			logger.Info("Server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT)")
	return cmd
}
