package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sell-monitor/internal/config"
	"sell-monitor/internal/logging"
	"sell-monitor/internal/models"
	"sell-monitor/internal/quotes"
)

// Monitor runs evaluation cycles over a set of positions. It owns the two
// cross-cycle structures (high-water tracker and alert log); both live for
// the monitor's lifetime and are exposed for host snapshotting.
type Monitor struct {
	provider quotes.Provider
	tracker  *HighWaterTracker
	alerts   *AlertLog
	logger   zerolog.Logger

	quoteTimeout time.Duration
	maxWorkers   int

	// now is the clock; replaceable in tests.
	now func() time.Time
}

// MonitorConfig holds the monitor's dependencies and tuning.
type MonitorConfig struct {
	Provider     quotes.Provider
	Logger       zerolog.Logger
	QuoteTimeout time.Duration
	MaxWorkers   int
}

// NewMonitor creates a monitor with empty tracker and alert log.
func NewMonitor(cfg MonitorConfig) *Monitor {
	quoteTimeout := cfg.QuoteTimeout
	if quoteTimeout <= 0 {
		quoteTimeout = 5 * time.Second
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Monitor{
		provider:     cfg.Provider,
		tracker:      NewHighWaterTracker(),
		alerts:       NewAlertLog(),
		logger:       cfg.Logger,
		quoteTimeout: quoteTimeout,
		maxWorkers:   maxWorkers,
		now:          time.Now,
	}
}

// Tracker returns the monitor's high-water tracker.
func (m *Monitor) Tracker() *HighWaterTracker {
	return m.tracker
}

// Alerts returns the monitor's alert log.
func (m *Monitor) Alerts() *AlertLog {
	return m.alerts
}

// RunCycle evaluates every position once. Quote fetches run on a bounded
// worker pool; tracker and alert log writes happen afterwards at a single
// aggregation point, in input order. A position whose quote is unavailable
// (error, timeout, NaN) is skipped whole: no report row, no tracker update,
// no alert. Row order matches input order minus skipped positions.
func (m *Monitor) RunCycle(ctx context.Context, positions []models.Position, criteria config.ExitConfig) []models.ReportRow {
	fetched := m.fetchQuotes(ctx, positions)
	now := m.now()

	rows := make([]models.ReportRow, 0, len(positions))
	for i, pos := range positions {
		quote := fetched[i]
		if !quote.Valid() {
			continue
		}

		returnPct, advice := Evaluate(pos, quote, criteria, now)
		mark := m.tracker.Update(pos.Ticker, returnPct, quote.Price)

		rows = append(rows, models.ReportRow{
			Ticker:       pos.Ticker,
			DaysHeld:     pos.DaysHeld(now),
			BuyPrice:     pos.BuyPrice,
			CurrentPrice: quote.Price,
			ReturnPct:    returnPct,
			MaxReturnPct: mark.MaxReturnPct,
			MaxPrice:     mark.MaxPrice,
			MA20:         quote.MA20,
			Advice:       advice,
		})

		logging.LogAdvice(m.logger, pos.Ticker, string(advice), returnPct, quote.Price)

		if advice.IsSell() {
			m.alerts.Record(now, pos.Ticker, advice, pos.BuyPrice, quote.Price, returnPct)
			logging.LogSellAlert(m.logger, pos.Ticker, string(advice), returnPct)
		}
	}

	return rows
}

// fetchQuotes fetches all quotes concurrently, bounded by maxWorkers, each
// with its own timeout. The result slice is indexed by position so the
// aggregation pass keeps input order. A nil entry means no observation.
func (m *Monitor) fetchQuotes(ctx context.Context, positions []models.Position) []*models.Quote {
	fetched := make([]*models.Quote, len(positions))

	sem := make(chan struct{}, m.maxWorkers)
	var wg sync.WaitGroup
	for i, pos := range positions {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, m.quoteTimeout)
			defer cancel()

			quote, err := m.provider.GetQuote(fetchCtx, ticker)
			if err != nil {
				logging.LogQuoteFailure(m.logger, ticker, err)
				return
			}
			fetched[i] = quote
		}(i, pos.Ticker)
	}
	wg.Wait()

	return fetched
}

// Run drives the periodic evaluation loop: one cycle immediately, then one
// per interval tick until the context is cancelled. Cycles never overlap.
// onCycle, if set, receives each cycle's rows after the cycle completes.
func (m *Monitor) Run(ctx context.Context, positions []models.Position, criteria config.ExitConfig, interval time.Duration, onCycle func([]models.ReportRow)) error {
	cycle := func() {
		rows := m.RunCycle(ctx, positions, criteria)
		m.logger.Info().
			Int("positions", len(positions)).
			Int("evaluated", len(rows)).
			Int("alerts_total", m.alerts.Len()).
			Msg("Cycle complete")
		if onCycle != nil {
			onCycle(rows)
		}
	}

	cycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cycle()
		}
	}
}
