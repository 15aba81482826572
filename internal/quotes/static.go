package quotes

import (
	"context"
	"sync"
	"time"

	"sell-monitor/internal/errors"
	"sell-monitor/internal/models"
)

// StaticProvider serves quotes from an in-memory table. Used in tests and
// dry runs where no live market data source is wanted.
type StaticProvider struct {
	quotes map[string]models.Quote
	mu     sync.RWMutex
}

// NewStaticProvider creates a provider seeded with the given quotes.
func NewStaticProvider(seed map[string]models.Quote) *StaticProvider {
	p := &StaticProvider{quotes: make(map[string]models.Quote)}
	for ticker, q := range seed {
		q.Ticker = ticker
		p.quotes[ticker] = q
	}
	return p
}

// Set installs or replaces the quote for a ticker.
func (p *StaticProvider) Set(ticker string, price, ma20 float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[ticker] = models.Quote{Ticker: ticker, Price: price, MA20: ma20}
}

// Remove drops the quote for a ticker, making it unavailable.
func (p *StaticProvider) Remove(ticker string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.quotes, ticker)
}

// GetQuote returns the stored quote, or ErrQuoteUnavailable for unknown or
// invalid tickers.
func (p *StaticProvider) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	q, ok := p.quotes[ticker]
	p.mu.RUnlock()

	if !ok {
		return nil, errors.NewQuoteError(ticker, "no data", errors.ErrQuoteUnavailable)
	}
	q.Timestamp = time.Now()
	if !q.Valid() {
		return nil, errors.NewQuoteError(ticker, "invalid observation", errors.ErrQuoteUnavailable)
	}
	return &q, nil
}
