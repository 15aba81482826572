package quotes

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"sell-monitor/internal/errors"
	"sell-monitor/internal/models"
	"sell-monitor/pkg/utils"
)

// Yahoo chart API. One month of daily candles gives the ~21 trading days
// needed for a 20-period moving average plus the latest close.
const (
	yahooChartURL      = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooRange         = "1mo"
	yahooInterval      = "1d"
	defaultHTTPTimeout = 5 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// YahooProvider fetches quotes from the Yahoo Finance chart API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	retry   utils.RetryConfig
}

// NewYahooProvider creates a Yahoo-backed quote provider.
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: yahooChartURL,
		retry: utils.RetryConfig{
			MaxAttempts:   2,
			InitialDelay:  250 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			BackoffFactor: 2.0,
		},
	}
}

// GetQuote fetches the latest close and 20-day moving average for a ticker.
// Any failure, short history, or NaN observation maps to ErrQuoteUnavailable
// so the caller can skip the ticker for this cycle.
func (p *YahooProvider) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	if ticker == "" {
		return nil, errors.NewQuoteError(ticker, "empty ticker", errors.ErrQuoteUnavailable)
	}

	body, err := utils.RetryWithResult(ctx, p.retry, func() ([]byte, error) {
		return p.fetchChart(ctx, ticker)
	})
	if err != nil {
		return nil, errors.NewQuoteError(ticker, "fetching chart data", err)
	}

	quote, err := parseChart(body, ticker)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, ticker string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s?range=%s&interval=%s",
		p.baseURL, url.PathEscape(ticker), yahooRange, yahooInterval)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseChart extracts the last close and MA20 from a Yahoo chart response.
// Null entries in the close array (holidays, halts) are dropped before the
// average is taken.
func parseChart(body []byte, ticker string) (*models.Quote, error) {
	if errMsg := gjson.GetBytes(body, "chart.error.description"); errMsg.Exists() && errMsg.String() != "" {
		return nil, errors.NewQuoteError(ticker, errMsg.String(), errors.ErrQuoteUnavailable)
	}

	closesResult := gjson.GetBytes(body, "chart.result.0.indicators.quote.0.close")
	if !closesResult.Exists() || !closesResult.IsArray() {
		return nil, errors.NewQuoteError(ticker, "no close series in response", errors.ErrQuoteUnavailable)
	}

	var closes []float64
	for _, v := range closesResult.Array() {
		if v.Type == gjson.Null {
			continue
		}
		c := v.Float()
		if math.IsNaN(c) || c <= 0 {
			continue
		}
		closes = append(closes, c)
	}
	if len(closes) < ma20Window {
		return nil, errors.NewQuoteError(ticker,
			fmt.Sprintf("only %d closes, need %d for MA20", len(closes), ma20Window),
			errors.ErrQuoteUnavailable)
	}

	price := closes[len(closes)-1]
	if meta := gjson.GetBytes(body, "chart.result.0.meta.regularMarketPrice"); meta.Exists() && meta.Float() > 0 {
		price = meta.Float()
	}

	var sum float64
	for _, c := range closes[len(closes)-ma20Window:] {
		sum += c
	}
	ma20 := sum / ma20Window

	quote := &models.Quote{
		Ticker:    ticker,
		Price:     price,
		MA20:      ma20,
		Timestamp: time.Now(),
	}
	if !quote.Valid() {
		return nil, errors.NewQuoteError(ticker, "non-finite observation", errors.ErrQuoteUnavailable)
	}
	return quote, nil
}
