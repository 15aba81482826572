package quotes

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sell-monitor/internal/errors"
	"sell-monitor/internal/models"
)

// Circuit states for the quote source.
type circuitState string

const (
	circuitClosed   circuitState = "CLOSED"
	circuitOpen     circuitState = "OPEN"
	circuitHalfOpen circuitState = "HALF_OPEN"
)

const (
	breakerFailureThreshold = 5
	breakerSuccessThreshold = 2
	breakerCooldown         = 30 * time.Second
)

// BreakerProvider wraps a Provider with a circuit breaker. After a run of
// consecutive failures the circuit opens and fetches fail fast for a
// cooldown; positions are then skipped for the cycle instead of each fetch
// burning its full timeout against a dead source. A probe fetch after the
// cooldown closes the circuit again once the source recovers.
type BreakerProvider struct {
	inner  Provider
	logger zerolog.Logger

	mu          sync.Mutex
	state       circuitState
	failures    int
	successes   int
	lastFailure time.Time
}

// NewBreakerProvider wraps a provider with circuit breaking.
func NewBreakerProvider(inner Provider, logger zerolog.Logger) *BreakerProvider {
	return &BreakerProvider{
		inner:  inner,
		logger: logger,
		state:  circuitClosed,
	}
}

// GetQuote fetches through the circuit. With the circuit open it returns
// ErrQuoteUnavailable without touching the underlying provider.
func (b *BreakerProvider) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	if !b.allow() {
		return nil, errors.NewQuoteError(ticker, "quote source circuit open", errors.ErrQuoteUnavailable)
	}

	quote, err := b.inner.GetQuote(ctx, ticker)
	if err != nil {
		b.recordFailure()
		return nil, err
	}
	b.recordSuccess()
	return quote, nil
}

// State returns the current circuit state name.
func (b *BreakerProvider) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.state)
}

func (b *BreakerProvider) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == circuitOpen {
		if time.Since(b.lastFailure) < breakerCooldown {
			return false
		}
		b.state = circuitHalfOpen
		b.successes = 0
		b.logger.Debug().Msg("Quote circuit half-open, probing source")
	}
	return true
}

func (b *BreakerProvider) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = time.Now()

	switch b.state {
	case circuitHalfOpen:
		b.state = circuitOpen
		b.logger.Warn().Msg("Quote source still failing, circuit re-opened")
	case circuitClosed:
		if b.failures >= breakerFailureThreshold {
			b.state = circuitOpen
			b.logger.Warn().
				Int("failures", b.failures).
				Msg("Quote source failing, circuit opened")
		}
	}
}

func (b *BreakerProvider) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case circuitHalfOpen:
		b.successes++
		if b.successes >= breakerSuccessThreshold {
			b.state = circuitClosed
			b.failures = 0
			b.logger.Info().Msg("Quote source recovered, circuit closed")
		}
	case circuitClosed:
		b.failures = 0
	}
}
