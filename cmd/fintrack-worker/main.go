package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	gsheet "fintrack/internal/sheets/google"
	"fintrack/internal/worker"
)

const statsInterval = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run logs its own failures; the returned error only sets the exit status.
func run() error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.SetupLogger("info", log.ComponentWorker, os.Stdout).Error("Configuration validation failed", log.FieldError, err)
		return err
	}
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentWorker, os.Stdout)
	logger.Info("Starting fintrack-worker", log.FieldOperation, log.OpStartup)

	// The worker reads expenses back by ID, so it needs a shared database and a broker.
	if !backend.BackendType(cfg.DataBackend).IsSQL() {
		logger.Error("Worker requires a SQL backend", "backend", cfg.DataBackend)
		return errors.New("sql backend required")
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP_URL")
		return errors.New("amqp url required")
	}
	if !cfg.SheetsEnabled() {
		logger.Error("Worker requires GOOGLE_SPREADSHEET_ID")
		return errors.New("spreadsheet id required")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	res, err := cli.OpenBackend(startCtx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open backend", log.FieldError, err)
		return err
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Error("Failed to close backend", log.FieldError, err)
		}
	}()

	sheetsClient, err := gsheet.New(startCtx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: cfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		return err
	}
	if err := sheetsClient.Ping(startCtx); err != nil {
		logger.Warn("Google Sheets not reachable yet, mirroring will retry per message", log.FieldError, err)
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		return err
	}
	defer consumer.Close()

	mw := worker.NewMirrorWorker(res.Ledger, sheetsClient, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.ConsumeExpenseRecorded(gctx, mw.HandleExpenseRecorded)
	})
	g.Go(func() error {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				s := mw.Stats()
				logger.Info("Mirror stats", "mirrored", s.Mirrored, "skipped", s.Skipped, "failed", s.Failed)
			}
		}
	})

	err = g.Wait()
	s := mw.Stats()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err,
			"mirrored", s.Mirrored,
			"failed", s.Failed)
		return err
	}
	<-done

	logger.Info("Worker shutdown complete",
		"mirrored", s.Mirrored,
		"skipped", s.Skipped,
		"failed", s.Failed)
	return nil
}
