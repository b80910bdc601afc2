package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"lifetrack/internal/config"
	"lifetrack/internal/core"
	"lifetrack/internal/event"
	"lifetrack/internal/export"
	"lifetrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting lifetrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()
	repo := storage.NewLedgerRepo(store)

	var exporter *export.SheetsExporter
	if cfg.GoogleSpreadsheetID != "" {
		exporter, err = export.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	client, err := event.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeLedgerChanged(ctx, func(msg *event.LedgerChanged) error {
			return handleChange(ctx, repo, exporter, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

// handleChange reloads the ledger, reports how far the maintained capital
// has drifted from the entry-derived net, and mirrors the change to the
// sheet when export is configured.
func handleChange(ctx context.Context, repo *storage.LedgerRepo, exporter *export.SheetsExporter, msg *event.LedgerChanged) error {
	l, err := repo.Load(ctx, msg.LedgerID)
	if err != nil {
		if errors.Is(err, core.ErrLedgerNotFound) {
			slog.WarnContext(ctx, "Change for unknown ledger", "ledger_id", msg.LedgerID, "operation", msg.Operation)
			return nil
		}
		return err
	}

	var net float64
	for _, e := range l.MonthlyIncome {
		net += e.Amount
	}
	for _, e := range l.MonthlyExpenses {
		net -= e.Amount
	}
	slog.InfoContext(ctx, "Ledger changed",
		"operation", msg.Operation,
		"ledger_id", msg.LedgerID,
		"total_capital", l.TotalCapital,
		"entry_net", net,
		"drift", l.TotalCapital-net)

	if exporter != nil {
		if err := exporter.AppendChange(ctx, *msg); err != nil {
			return err
		}
	}
	return nil
}
