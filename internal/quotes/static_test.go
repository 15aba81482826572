package quotes

import (
	"context"
	"math"
	"testing"

	"sell-monitor/internal/errors"
	"sell-monitor/internal/models"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(map[string]models.Quote{
		"AAPL": {Price: 160, MA20: 155},
	})

	quote, err := p.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Price != 160 || quote.MA20 != 155 {
		t.Errorf("quote = %v/%v, want 160/155", quote.Price, quote.MA20)
	}
	if quote.Ticker != "AAPL" {
		t.Errorf("ticker = %s, want AAPL (filled from seed key)", quote.Ticker)
	}
}

func TestStaticProviderUnknownTicker(t *testing.T) {
	p := NewStaticProvider(nil)
	if _, err := p.GetQuote(context.Background(), "NONE"); !errors.Is(err, errors.ErrQuoteUnavailable) {
		t.Errorf("err = %v, want ErrQuoteUnavailable", err)
	}
}

func TestStaticProviderInvalidQuote(t *testing.T) {
	p := NewStaticProvider(nil)
	p.quotes["BAD"] = models.Quote{Ticker: "BAD", Price: math.NaN(), MA20: 100}

	if _, err := p.GetQuote(context.Background(), "BAD"); !errors.Is(err, errors.ErrQuoteUnavailable) {
		t.Errorf("err = %v, want ErrQuoteUnavailable for NaN price", err)
	}
}

func TestStaticProviderSetRemove(t *testing.T) {
	p := NewStaticProvider(nil)
	p.Set("MSFT", 285, 282)

	if _, err := p.GetQuote(context.Background(), "MSFT"); err != nil {
		t.Fatalf("GetQuote after Set: %v", err)
	}

	p.Remove("MSFT")
	if _, err := p.GetQuote(context.Background(), "MSFT"); err == nil {
		t.Error("expected error after Remove")
	}
}

func TestStaticProviderHonorsContext(t *testing.T) {
	p := NewStaticProvider(map[string]models.Quote{
		"AAPL": {Price: 160, MA20: 155},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.GetQuote(ctx, "AAPL"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
