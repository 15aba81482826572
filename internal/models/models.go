// Package models provides domain models for the sell monitor.
package models

import (
	"math"
	"time"
)

// Position represents a held position loaded from the positions CSV.
// Positions are immutable for the duration of an evaluation cycle.
type Position struct {
	Ticker   string
	BuyDate  time.Time
	BuyPrice float64
}

// DaysHeld returns the number of whole days the position has been held,
// truncated. A position bought today yields 0.
func (p Position) DaysHeld(now time.Time) int {
	return int(now.Sub(p.BuyDate).Hours() / 24)
}

// Quote is a single market observation for a ticker: the latest price and
// the 20-period moving average of daily closes.
type Quote struct {
	Ticker    string
	Price     float64
	MA20      float64
	Timestamp time.Time
}

// Valid reports whether the quote carries usable numeric observations.
// NaN or non-positive values mean the provider had no real data.
func (q *Quote) Valid() bool {
	if q == nil {
		return false
	}
	if math.IsNaN(q.Price) || math.IsNaN(q.MA20) {
		return false
	}
	return q.Price > 0 && q.MA20 > 0
}

// HighWaterMark holds the running maxima for a ticker across cycles.
// Both fields are monotonically non-decreasing for the tracker's lifetime.
type HighWaterMark struct {
	Ticker       string
	MaxReturnPct float64
	MaxPrice     float64
	UpdatedAt    time.Time
}
