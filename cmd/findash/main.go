package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"findash/internal/config"
	"findash/internal/core"
	"findash/internal/export"
	"findash/internal/ingest"
	gsheet "findash/internal/ingest/google"
	mem "findash/internal/ingest/memory"
	applog "findash/internal/log"
	"findash/internal/market"
	"findash/internal/notify"
	"findash/internal/sample"
	"findash/internal/services"
	"findash/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	store, err := storage.NewSessionStore(cfg.SessionDSN)
	if err != nil {
		logger.Error("Failed to open session store", applog.FieldError, err)
		return err
	}
	defer store.Close()

	// Choose record source (default: memory seeded with the sample batch).
	var source ingest.RecordSource
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets source",
				applog.FieldError, err, "backend", cfg.DataBackend)
			return err
		}
		source = cli
		logger.Info("Initialized Google Sheets source", "backend", cfg.DataBackend)
	default:
		source = mem.New(sample.Records(sample.DefaultSeed))
		logger.Info("Initialized memory source", "backend", cfg.DataBackend)
	}

	marketClient := market.NewClient(cfg.RatesBaseURL, cfg.QuotesBaseURL, cfg.FetchTimeout)

	// The broker is optional; a broken one must not block the dashboard.
	var notifier *notify.Client
	if cfg.AMQPURL != "" {
		notifier, err = notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Could not connect to AMQP, ingestion events disabled",
				applog.FieldError, err)
			notifier = nil
		} else {
			defer notifier.Close()
		}
	}

	svc := services.NewDashboardService(source, store, marketClient, marketClient, notifier, logger)

	count, err := svc.Load(ctx, cfg.DataBackend)
	if err != nil {
		var schemaErr *core.SchemaError
		var parseErr *core.ParseError
		if !errors.As(err, &schemaErr) && !errors.As(err, &parseErr) {
			logger.Error("Failed to load transactions", applog.FieldError, err)
			return err
		}
		logger.Warn("Rejected invalid batch, falling back to sample data",
			applog.FieldError, err)
		if count, err = svc.LoadSample(ctx); err != nil {
			logger.Error("Failed to load sample data", applog.FieldError, err)
			return err
		}
	}
	logger.Info("Session loaded", applog.FieldCount, count)

	sess := services.Session{
		Currency:      cfg.Currency,
		MonthlyBudget: cfg.MonthlyBudget,
		Tickers:       cfg.Tickers,
	}
	dash, err := svc.Snapshot(ctx, sess)
	if err != nil {
		logger.Error("Failed to build dashboard", applog.FieldError, err)
		return err
	}

	printDashboard(dash, sess)

	exportPath := filepath.Join(cfg.ExportDir, export.Filename(time.Now()))
	if err := writeExport(exportPath, dash.Set); err != nil {
		logger.Error("Failed to export transactions",
			applog.FieldError, err, "path", exportPath)
		return err
	}
	logger.Info("Exported transactions",
		"path", exportPath, applog.FieldCount, len(dash.Set.Transactions))

	return nil
}

func printDashboard(dash *services.Dashboard, sess services.Session) {
	fmt.Println(dash.Report)

	if dash.Budget.Status != core.BudgetNotSet {
		fmt.Printf("Budget usage: %.1f%% of %s %s (%s)\n\n",
			dash.Budget.UsagePct,
			core.FormatAmount(dash.Budget.MonthlyBudget),
			dash.Set.Currency,
			dash.Budget.Status)
	}

	if len(dash.Quotes) > 0 {
		fmt.Println("Market snapshot:")
		for _, ticker := range sess.Tickers {
			q, ok := dash.Quotes[ticker]
			if !ok {
				continue
			}
			fmt.Printf("  %-8s %10.2f  %+.2f (%+.2f%%)\n", ticker, q.Price, q.Change, q.ChangePct)
		}
		fmt.Println()
	}
}

func writeExport(path string, set core.TransactionSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, set); err != nil {
		return err
	}
	return f.Sync()
}
