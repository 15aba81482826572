package engine

import (
	"strings"
	"testing"
	"time"

	"sell-monitor/internal/models"
)

func TestAlertLogRecordRoundsAndAppends(t *testing.T) {
	log := NewAlertLog()
	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	entry := log.Record(ts, "AAPL", models.AdviceTargetMet, 150.004, 181.2389, 20.8261)

	if entry.BuyPrice != 150.0 {
		t.Errorf("BuyPrice = %v, want 150.0", entry.BuyPrice)
	}
	if entry.CurrentPrice != 181.24 {
		t.Errorf("CurrentPrice = %v, want 181.24", entry.CurrentPrice)
	}
	if entry.ReturnPct != 20.83 {
		t.Errorf("ReturnPct = %v, want 20.83", entry.ReturnPct)
	}
	if log.Len() != 1 {
		t.Errorf("Len = %d, want 1", log.Len())
	}
}

func TestAlertLogKeepsDuplicates(t *testing.T) {
	log := NewAlertLog()
	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	// A ticker stuck in a sell state logs once per cycle.
	log.Record(ts, "MSFT", models.AdviceStopLoss, 280, 250, -10.71)
	log.Record(ts.Add(time.Minute), "MSFT", models.AdviceStopLoss, 280, 250, -10.71)

	if log.Len() != 2 {
		t.Errorf("Len = %d, want 2 entries for repeated alerts", log.Len())
	}
}

func TestAlertLogSnapshotOrder(t *testing.T) {
	log := NewAlertLog()
	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	log.Record(ts, "AAPL", models.AdviceTargetMet, 150, 181, 20.67)
	log.Record(ts.Add(time.Minute), "GOOGL", models.AdviceBelowMA, 2700, 2750, 1.85)

	snap := log.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}
	if snap[0].Ticker != "AAPL" || snap[1].Ticker != "GOOGL" {
		t.Errorf("snapshot order = %s,%s, want AAPL,GOOGL", snap[0].Ticker, snap[1].Ticker)
	}

	snap[0].Ticker = "MUTATED"
	if log.Snapshot()[0].Ticker != "AAPL" {
		t.Error("mutating a snapshot leaked into the log")
	}
}

func TestAlertLogWriteCSV(t *testing.T) {
	log := NewAlertLog()
	ts := time.Date(2025, 6, 2, 10, 30, 15, 0, time.UTC)
	log.Record(ts, "AAPL", models.AdviceTargetMet, 150, 181.24, 20.83)

	var buf strings.Builder
	if err := log.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if lines[0] != "Timestamp,Ticker,Advice,Buy Price,Current Price,Return (%)" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2025-06-02 10:30:15,AAPL,Sell (Target Met),") {
		t.Errorf("row = %q", lines[1])
	}
}
