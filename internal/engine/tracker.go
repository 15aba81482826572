// Package engine implements the exit-decision engine: per-position rule
// evaluation, cross-cycle high-water tracking, and the sell alert log.
package engine

import (
	"sync"
	"time"

	"sell-monitor/internal/models"
)

// HighWaterTracker keeps the running maximum return and price per ticker.
// Entries are seeded on first observation and never removed; both fields
// only ever move up. The zero map state is created by NewHighWaterTracker.
type HighWaterTracker struct {
	marks map[string]*models.HighWaterMark
	mu    sync.Mutex
}

// NewHighWaterTracker creates an empty tracker.
func NewHighWaterTracker() *HighWaterTracker {
	return &HighWaterTracker{
		marks: make(map[string]*models.HighWaterMark),
	}
}

// Update folds one observation into the ticker's entry and returns a copy of
// the updated entry. The max-reduce is commutative and associative, so
// concurrent updates for the same ticker compose in any arrival order.
func (t *HighWaterTracker) Update(ticker string, returnPct, price float64) models.HighWaterMark {
	t.mu.Lock()
	defer t.mu.Unlock()

	mark, ok := t.marks[ticker]
	if !ok {
		mark = &models.HighWaterMark{
			Ticker:       ticker,
			MaxReturnPct: returnPct,
			MaxPrice:     price,
		}
		t.marks[ticker] = mark
	} else {
		if returnPct > mark.MaxReturnPct {
			mark.MaxReturnPct = returnPct
		}
		if price > mark.MaxPrice {
			mark.MaxPrice = price
		}
	}
	mark.UpdatedAt = time.Now()

	return *mark
}

// Get returns a copy of the ticker's entry, if one exists.
func (t *HighWaterTracker) Get(ticker string) (models.HighWaterMark, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mark, ok := t.marks[ticker]
	if !ok {
		return models.HighWaterMark{}, false
	}
	return *mark, true
}

// Snapshot returns a copy of all entries, for host-driven persistence.
func (t *HighWaterTracker) Snapshot() []models.HighWaterMark {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.HighWaterMark, 0, len(t.marks))
	for _, mark := range t.marks {
		out = append(out, *mark)
	}
	return out
}

// Restore seeds the tracker from persisted entries. Restored values still
// obey the max-reduce rule, so restoring on top of live entries never moves
// a mark down.
func (t *HighWaterTracker) Restore(marks []models.HighWaterMark) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range marks {
		existing, ok := t.marks[m.Ticker]
		if !ok {
			copied := m
			t.marks[m.Ticker] = &copied
			continue
		}
		if m.MaxReturnPct > existing.MaxReturnPct {
			existing.MaxReturnPct = m.MaxReturnPct
		}
		if m.MaxPrice > existing.MaxPrice {
			existing.MaxPrice = m.MaxPrice
		}
	}
}

// Len returns the number of tracked tickers.
func (t *HighWaterTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.marks)
}
