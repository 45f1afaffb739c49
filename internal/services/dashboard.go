// Package services orchestrates one dashboard session: load a batch, store
// it, and assemble the derived views on demand.
package services

import (
	"context"
	"fmt"

	"findash/internal/core"
	"findash/internal/ingest"
	"findash/internal/log"
	"findash/internal/market"
	"findash/internal/notify"
	"findash/internal/sample"
)

// Session carries the user's current dashboard settings.
type Session struct {
	Currency      string
	MonthlyBudget float64
	Tickers       []string
}

// Dashboard is everything one render of the dashboard needs.
type Dashboard struct {
	Set     core.TransactionSet
	Summary core.Summary
	Budget  core.BudgetProgress
	Report  string
	Quotes  map[string]market.Quote
}

// SessionStore persists the normalized batch for the life of the session.
type SessionStore interface {
	Replace(ctx context.Context, set core.TransactionSet) error
	Current(ctx context.Context) (core.TransactionSet, error)
}

// RateSource yields conversion factors from the given base currency. It may
// return a usable table together with a degradation error.
type RateSource interface {
	ExchangeRates(ctx context.Context, base string) (map[string]float64, error)
}

// QuoteSource yields best-effort price snapshots for tickers.
type QuoteSource interface {
	Quotes(ctx context.Context, tickers []string) map[string]market.Quote
}

type DashboardService struct {
	source   ingest.RecordSource
	store    SessionStore
	rates    RateSource
	quotes   QuoteSource
	notifier *notify.Client
	logger   *log.Logger
}

// NewDashboardService wires the service. notifier may be nil when no broker
// is configured.
func NewDashboardService(
	source ingest.RecordSource,
	store SessionStore,
	rates RateSource,
	quotes QuoteSource,
	notifier *notify.Client,
	logger *log.Logger,
) *DashboardService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DashboardService{
		source:   source,
		store:    store,
		rates:    rates,
		quotes:   quotes,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentIngest),
	}
}

// Load fetches a batch from the configured source, normalizes it, and
// replaces the stored session wholesale. Validation failures reject the whole
// batch and leave the previous session untouched.
func (s *DashboardService) Load(ctx context.Context, sourceName string) (int, error) {
	records, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch records: %w", err)
	}
	return s.loadRecords(ctx, records, sourceName)
}

// LoadSample loads the built-in deterministic sample batch.
func (s *DashboardService) LoadSample(ctx context.Context) (int, error) {
	return s.loadRecords(ctx, sample.Records(sample.DefaultSeed), "sample")
}

func (s *DashboardService) loadRecords(ctx context.Context, records []core.RawRecord, sourceName string) (int, error) {
	set, err := core.Normalize(records)
	if err != nil {
		return 0, fmt.Errorf("normalize batch from %s: %w", sourceName, err)
	}

	if err := s.store.Replace(ctx, set); err != nil {
		return 0, fmt.Errorf("store batch: %w", err)
	}

	count := len(set.Transactions)
	s.logger.InfoContext(ctx, "Batch loaded",
		log.FieldSource, sourceName,
		log.FieldCount, count)

	if err := s.notifier.PublishIngested(ctx, sourceName, count); err != nil {
		// The broker is auxiliary; a failed publish never fails the load.
		s.logger.WarnContext(ctx, "Could not publish ingestion event",
			log.FieldSource, sourceName,
			log.FieldError, err)
	}

	return count, nil
}

// Snapshot assembles the dashboard for the given session settings from the
// stored batch. External failures degrade the snapshot instead of failing it.
func (s *DashboardService) Snapshot(ctx context.Context, sess Session) (*Dashboard, error) {
	set, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	if sess.Currency != "" && sess.Currency != set.Currency {
		rates, err := s.rates.ExchangeRates(ctx, set.Currency)
		if err != nil {
			s.logger.WarnContext(ctx, "Using fallback exchange rates",
				log.FieldCurrency, sess.Currency,
				log.FieldError, err)
		}
		set = set.Rescale(sess.Currency, rates)
	}

	summary := core.Aggregate(set)

	dash := &Dashboard{
		Set:     set,
		Summary: summary,
		Budget:  core.EvaluateBudget(summary.AvgMonthlyExpense, sess.MonthlyBudget),
		Report:  core.HealthReport(summary, set.Currency),
	}

	if len(sess.Tickers) > 0 && s.quotes != nil {
		dash.Quotes = s.quotes.Quotes(ctx, sess.Tickers)
	}

	return dash, nil
}
