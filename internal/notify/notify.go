// Package notify delivers sell alerts to external channels.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sell-monitor/internal/config"
	"sell-monitor/internal/models"
)

// Channel is one delivery target for sell alerts.
type Channel interface {
	Name() string
	Send(ctx context.Context, entry models.AlertEntry) error
}

// Notifier fans a sell alert out to all configured channels. Delivery is
// best effort: a failing channel is logged and never fails the cycle that
// produced the alert.
type Notifier struct {
	channels []Channel
	logger   zerolog.Logger
}

// NewNotifier builds a notifier from configuration. With nothing enabled it
// returns a notifier with no channels, which sends are a no-op on.
func NewNotifier(cfg config.NotifyConfig, logger zerolog.Logger) *Notifier {
	n := &Notifier{logger: logger}
	if cfg.WebhookURL != "" {
		n.channels = append(n.channels, NewWebhookChannel(cfg.WebhookURL))
	}
	if cfg.Desktop {
		n.channels = append(n.channels, NewDesktopChannel())
	}
	return n
}

// Enabled reports whether any channel is configured.
func (n *Notifier) Enabled() bool {
	return len(n.channels) > 0
}

// SendSellAlert delivers one alert to every channel.
func (n *Notifier) SendSellAlert(ctx context.Context, entry models.AlertEntry) {
	for _, ch := range n.channels {
		if err := ch.Send(ctx, entry); err != nil {
			n.logger.Warn().
				Err(err).
				Str("channel", ch.Name()).
				Str("ticker", entry.Ticker).
				Msg("Failed to deliver sell alert")
		}
	}
}

// WebhookChannel POSTs sell alerts as JSON to a configured URL.
type WebhookChannel struct {
	url    string
	client *http.Client
}

// NewWebhookChannel creates a webhook channel.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookChannel) Name() string {
	return "webhook"
}

// webhookPayload is the wire shape of one sell alert.
type webhookPayload struct {
	Timestamp    string  `json:"timestamp"`
	Ticker       string  `json:"ticker"`
	Advice       string  `json:"advice"`
	BuyPrice     float64 `json:"buy_price"`
	CurrentPrice float64 `json:"current_price"`
	ReturnPct    float64 `json:"return_pct"`
}

// Send posts the alert. Any non-2xx response is an error.
func (w *WebhookChannel) Send(ctx context.Context, entry models.AlertEntry) error {
	payload := webhookPayload{
		Timestamp:    entry.Timestamp.Format(time.RFC3339),
		Ticker:       entry.Ticker,
		Advice:       string(entry.Advice),
		BuyPrice:     entry.BuyPrice,
		CurrentPrice: entry.CurrentPrice,
		ReturnPct:    entry.ReturnPct,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
