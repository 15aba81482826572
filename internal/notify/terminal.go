package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"sell-monitor/internal/models"
)

// DesktopChannel raises a desktop notification for sell alerts, using
// notify-send on Linux and osascript on macOS. On platforms without a known
// notifier the channel is a silent no-op.
type DesktopChannel struct{}

// NewDesktopChannel creates a desktop notification channel.
func NewDesktopChannel() *DesktopChannel {
	return &DesktopChannel{}
}

func (d *DesktopChannel) Name() string {
	return "desktop"
}

// Send shows the alert. The notifier process is not waited on.
func (d *DesktopChannel) Send(ctx context.Context, entry models.AlertEntry) error {
	title := fmt.Sprintf("Sell Alert: %s", entry.Ticker)
	message := fmt.Sprintf("%s at %.2f (%+.2f%%)", entry.Advice, entry.CurrentPrice, entry.ReturnPct)

	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("notify-send"); err != nil {
			return nil
		}
		return exec.CommandContext(ctx, "notify-send", "--urgency=critical", title, message).Start()
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		return exec.CommandContext(ctx, "osascript", "-e", script).Start()
	default:
		return nil
	}
}
