package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Sell Monitor Configuration

[exit]
# Target return before taking profit (%)
target_return_pct = 20.0
# Stop loss (%)
stop_loss_pct = 10.0
# Trailing stop measured from the running high (%)
trailing_stop_pct = 5.0
# Maximum holding period (days)
max_hold_days = 180

[monitor]
# How often to re-evaluate positions (e.g., "60s", "5m")
interval = "60s"
# Default positions CSV (columns: Ticker, Buy Date, Buy Price)
positions_file = ""

[quotes]
# Per-ticker quote fetch timeout
timeout = "5s"
# Concurrent quote fetches per cycle
max_workers = 4

[notify]
# POST sell alerts as JSON to this URL (empty = disabled)
webhook_url = ""
# Desktop notifications for sell alerts
desktop = false

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true
`

// writeTemplate creates the config directory and writes a commented template
// config file. It never overwrites an existing file.
func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
