// Package quotes provides market data providers for the sell monitor.
package quotes

import (
	"context"

	"sell-monitor/internal/models"
)

// Provider supplies, per ticker, the latest price and the 20-period moving
// average. Implementations return plain scalars; any unwrapping of
// provider-specific response shapes stays inside the implementation.
type Provider interface {
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

// ma20Window is the number of daily closes needed for the moving average.
const ma20Window = 20
