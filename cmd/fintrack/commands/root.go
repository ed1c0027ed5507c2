package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// app is what every subcommand works against once the root pre-run has opened the backend.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend *backend.BackendResult
	ledger  *services.LedgerService
}

var (
	backendType string
	dataFile    string
	logLevel    string
	appCtx      *app
)

func Execute() error {
	return execute(context.Background(), newRootCmd())
}

func execute(ctx context.Context, root *cobra.Command) error {
	defer closeApp()
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fintrack",
		Short:        "Personal finance tracker: expenses, savings goal and spending insights",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.LoadEnvFile()

			cfg := config.Load()
			if backendType != "" {
				cfg.DataBackend = backendType
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Only the server logs at the configured level; one-shot commands stay quiet.
			level := logLevel
			if level == "" {
				level = "warn"
				if cmd.Name() == "serve" {
					level = cfg.LogLevel
				}
			}
			logger := cli.SetupLogger(level, log.ComponentCLI, cmd.ErrOrStderr())

			res, err := cli.OpenBackend(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			opts := []services.Option{services.WithLogger(logger)}
			if res.Publisher != nil {
				opts = append(opts, services.WithPublisher(res.Publisher))
			}
			appCtx = &app{
				cfg:     cfg,
				logger:  logger,
				backend: res,
				ledger:  services.NewLedgerService(res.Ledger, opts...),
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&backendType, "backend", "", "data backend: "+strings.Join(backend.GetBackendTypeStrings(), "|")+" (default $DATA_BACKEND)")
	root.PersistentFlags().StringVar(&dataFile, "data-file", "", "JSON snapshot for the memory backend (default $DATA_FILE)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(
		serveCmd(),
		addCmd(),
		listCmd(),
		insightsCmd(),
		goalCmd(),
		saveCmd(),
		savingsCmd(),
		categorizeCmd(),
	)
	return root
}

func closeApp() {
	if appCtx == nil {
		return
	}
	if err := appCtx.backend.Close(); err != nil {
		appCtx.logger.Error("Failed to close backend", log.FieldError, err)
	}
	appCtx = nil
}
