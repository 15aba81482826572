package engine

import (
	"testing"

	"sell-monitor/internal/models"
)

func TestHighWaterTrackerSeedsFirstObservation(t *testing.T) {
	tracker := NewHighWaterTracker()

	mark := tracker.Update("AAPL", 5.0, 157.5)
	if mark.MaxReturnPct != 5.0 {
		t.Errorf("MaxReturnPct = %v, want 5.0", mark.MaxReturnPct)
	}
	if mark.MaxPrice != 157.5 {
		t.Errorf("MaxPrice = %v, want 157.5", mark.MaxPrice)
	}
	if tracker.Len() != 1 {
		t.Errorf("Len = %d, want 1", tracker.Len())
	}
}

func TestHighWaterTrackerNeverDecreases(t *testing.T) {
	tracker := NewHighWaterTracker()

	tracker.Update("AAPL", 15.0, 172.5)
	mark := tracker.Update("AAPL", 8.0, 162.0)

	if mark.MaxReturnPct != 15.0 {
		t.Errorf("MaxReturnPct = %v, want 15.0 after lower observation", mark.MaxReturnPct)
	}
	if mark.MaxPrice != 172.5 {
		t.Errorf("MaxPrice = %v, want 172.5 after lower observation", mark.MaxPrice)
	}
}

func TestHighWaterTrackerSequence(t *testing.T) {
	tracker := NewHighWaterTracker()

	returns := []float64{5, 15, 8}
	prices := []float64{105, 115, 108}
	for i := range returns {
		tracker.Update("MSFT", returns[i], prices[i])
	}

	mark, ok := tracker.Get("MSFT")
	if !ok {
		t.Fatal("expected mark for MSFT")
	}
	if mark.MaxReturnPct != 15 {
		t.Errorf("MaxReturnPct = %v, want 15", mark.MaxReturnPct)
	}
	if mark.MaxPrice != 115 {
		t.Errorf("MaxPrice = %v, want 115", mark.MaxPrice)
	}
}

func TestHighWaterTrackerTracksPerTicker(t *testing.T) {
	tracker := NewHighWaterTracker()

	tracker.Update("AAPL", 10, 165)
	tracker.Update("MSFT", -3, 271.6)

	aapl, _ := tracker.Get("AAPL")
	msft, _ := tracker.Get("MSFT")
	if aapl.MaxReturnPct != 10 || msft.MaxReturnPct != -3 {
		t.Errorf("per-ticker marks mixed: AAPL=%v MSFT=%v", aapl.MaxReturnPct, msft.MaxReturnPct)
	}
}

func TestHighWaterTrackerGetMissing(t *testing.T) {
	tracker := NewHighWaterTracker()
	if _, ok := tracker.Get("NONE"); ok {
		t.Error("expected no mark for unknown ticker")
	}
}

func TestHighWaterTrackerRestoreMaxMerges(t *testing.T) {
	tracker := NewHighWaterTracker()
	tracker.Update("AAPL", 12, 168)

	tracker.Restore([]models.HighWaterMark{
		{Ticker: "AAPL", MaxReturnPct: 20, MaxPrice: 160},
		{Ticker: "GOOGL", MaxReturnPct: 4, MaxPrice: 2808},
	})

	aapl, _ := tracker.Get("AAPL")
	if aapl.MaxReturnPct != 20 {
		t.Errorf("restored MaxReturnPct = %v, want 20", aapl.MaxReturnPct)
	}
	if aapl.MaxPrice != 168 {
		t.Errorf("restored MaxPrice = %v, want 168 (live value higher)", aapl.MaxPrice)
	}

	if _, ok := tracker.Get("GOOGL"); !ok {
		t.Error("expected GOOGL mark after restore")
	}
}

func TestHighWaterTrackerSnapshotIsCopy(t *testing.T) {
	tracker := NewHighWaterTracker()
	tracker.Update("AAPL", 5, 157.5)

	snap := tracker.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(snap))
	}
	snap[0].MaxReturnPct = 999

	mark, _ := tracker.Get("AAPL")
	if mark.MaxReturnPct != 5 {
		t.Error("mutating a snapshot leaked into the tracker")
	}
}
