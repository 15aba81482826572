package engine

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"sell-monitor/internal/models"
)

// AlertLog is the append-only record of sell events. There is no
// deduplication: a ticker that stays in a sell state logs one entry per
// cycle, and entries are never mutated or removed.
type AlertLog struct {
	entries []models.AlertEntry
	mu      sync.Mutex
}

// NewAlertLog creates an empty alert log.
func NewAlertLog() *AlertLog {
	return &AlertLog{}
}

// Record appends a sell event. Monetary fields are rounded to two decimals
// on the way in, matching the exported log format.
func (l *AlertLog) Record(ts time.Time, ticker string, advice models.Advice, buyPrice, currentPrice, returnPct float64) models.AlertEntry {
	entry := models.AlertEntry{
		Timestamp:    models.CSVTime{Time: ts},
		Ticker:       ticker,
		Advice:       advice,
		BuyPrice:     round2(buyPrice),
		CurrentPrice: round2(currentPrice),
		ReturnPct:    round2(returnPct),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// Append adds an already-built entry, preserving insertion order. Used when
// restoring history from the snapshot store.
func (l *AlertLog) Append(entry models.AlertEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Snapshot returns a copy of all entries in insertion order, oldest first.
func (l *AlertLog) Snapshot() []models.AlertEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AlertEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *AlertLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// WriteCSV writes the log as delimited text with the header
// Timestamp,Ticker,Advice,Buy Price,Current Price,Return (%).
func (l *AlertLog) WriteCSV(w io.Writer) error {
	entries := l.Snapshot()
	return gocsv.Marshal(&entries, w)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
