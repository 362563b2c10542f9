package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"paytrack/internal/amqp"
	"paytrack/internal/cli"
	"paytrack/internal/export"
	"paytrack/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap()

	logger.Info("Starting paytrack-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	archive := cli.InitArchive(logger, cfg.SQLiteDBPath)
	defer archive.Close()

	// Google Sheets mirroring is optional.
	var exporter export.PaymentExporter
	if cfg.GoogleSpreadsheetID != "" {
		sheets, err := export.NewGoogleSheetsFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		exporter = sheets
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	archiveWorker := worker.NewArchiveWorker(archive, exporter)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumePaymentEvents(gctx, archiveWorker.HandleEvent)
	})
	g.Go(func() error {
		return archiveWorker.RunStatsLoop(gctx, cfg.StatsInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
