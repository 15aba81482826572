package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sell-monitor/internal/config"
	"sell-monitor/internal/engine"
	"sell-monitor/internal/models"
)

var sellCell = color.New(color.FgRed, color.Bold).SprintFunc()

func newMonitorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the sell-condition monitor",
		Long: `Evaluate all positions against the exit criteria, print a report table,
and repeat every interval. Sell advisories are appended to the alert log.

Without --positions, the positions file from the config is used; if none is
configured, built-in sample positions are monitored.`,
		Example: `  sellmonitor monitor
  sellmonitor monitor --positions holdings.csv
  sellmonitor monitor --once --target 25 --stop-loss 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			positions, source, err := loadPositions(cmd, app)
			if err != nil {
				output.Error("Failed to load positions: %v", err)
				return err
			}

			criteria := criteriaFromFlags(cmd, app.Config.Exit)
			if err := (&config.Config{
				Exit:    criteria,
				Monitor: app.Config.Monitor,
				Quotes:  app.Config.Quotes,
				Logging: app.Config.Logging,
			}).Validate(); err != nil {
				output.Error("Invalid exit criteria: %v", err)
				return err
			}

			interval, _ := cmd.Flags().GetDuration("interval")
			if interval <= 0 {
				interval = app.Config.Monitor.Interval
			}
			once, _ := cmd.Flags().GetBool("once")

			monitor := engine.NewMonitor(engine.MonitorConfig{
				Provider:     app.Provider,
				Logger:       app.Logger,
				QuoteTimeout: app.Config.Quotes.Timeout,
				MaxWorkers:   app.Config.Quotes.MaxWorkers,
			})
			app.restoreState(cmd.Context(), monitor)

			output.Bold("Sell Condition Monitor")
			output.Printf("  Positions: %d (%s)\n", len(positions), source)
			output.Printf("  Criteria:  target %.1f%% / stop %.1f%% / trailing %.1f%% / max hold %dd\n",
				criteria.TargetReturnPct, criteria.StopLossPct, criteria.TrailingStopPct, criteria.MaxHoldDays)
			if !once {
				output.Printf("  Interval:  %s (Ctrl-C to stop)\n", interval)
			}
			output.Println()

			persisted := monitor.Alerts().Len()
			onCycle := func(rows []models.ReportRow) {
				renderReport(output, rows, len(positions))
				if app.Notifier != nil && app.Notifier.Enabled() {
					for _, entry := range monitor.Alerts().Snapshot()[persisted:] {
						app.Notifier.SendSellAlert(context.Background(), entry)
					}
				}
				persisted = app.persistState(context.Background(), monitor, persisted)
			}

			if once {
				rows := monitor.RunCycle(cmd.Context(), positions, criteria)
				onCycle(rows)
				if output.IsJSON() {
					return output.JSON(rows)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = monitor.Run(ctx, positions, criteria, interval, onCycle)
			if err == context.Canceled {
				output.Println()
				output.Dim("Monitor stopped.")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringP("positions", "p", "", "positions CSV file")
	cmd.Flags().Bool("once", false, "run a single cycle and exit")
	cmd.Flags().Duration("interval", 0, "evaluation interval (default from config)")
	cmd.Flags().Float64("target", 0, "target return % (overrides config)")
	cmd.Flags().Float64("stop-loss", 0, "stop loss % (overrides config)")
	cmd.Flags().Float64("trailing", 0, "trailing stop % (overrides config)")
	cmd.Flags().Int("max-hold-days", 0, "max holding period in days (overrides config)")
	return cmd
}

// criteriaFromFlags overlays any provided threshold flags on the configured
// exit criteria.
func criteriaFromFlags(cmd *cobra.Command, base config.ExitConfig) config.ExitConfig {
	if v, _ := cmd.Flags().GetFloat64("target"); v > 0 {
		base.TargetReturnPct = v
	}
	if v, _ := cmd.Flags().GetFloat64("stop-loss"); v > 0 {
		base.StopLossPct = v
	}
	if v, _ := cmd.Flags().GetFloat64("trailing"); v > 0 {
		base.TrailingStopPct = v
	}
	if v, _ := cmd.Flags().GetInt("max-hold-days"); v > 0 {
		base.MaxHoldDays = v
	}
	return base
}

// restoreState seeds the monitor's tracker and alert history from the
// snapshot store, when one is available.
func (app *App) restoreState(ctx context.Context, monitor *engine.Monitor) {
	if app.Store == nil {
		return
	}
	if marks, err := app.Store.LoadHighWaterMarks(ctx); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to restore high-water marks")
	} else if len(marks) > 0 {
		monitor.Tracker().Restore(marks)
		app.Logger.Debug().Int("tickers", len(marks)).Msg("High-water marks restored")
	}
	if entries, err := app.Store.GetAlerts(ctx, 0); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to restore alert history")
	} else {
		for _, e := range entries {
			monitor.Alerts().Append(e)
		}
	}
}

// persistState snapshots the tracker and any alerts recorded since the last
// call. Returns the new persisted alert count.
func (app *App) persistState(ctx context.Context, monitor *engine.Monitor, persisted int) int {
	entries := monitor.Alerts().Snapshot()
	if app.Store == nil {
		return len(entries)
	}
	for _, entry := range entries[persisted:] {
		if err := app.Store.SaveAlert(ctx, entry); err != nil {
			app.Logger.Warn().Err(err).Str("ticker", entry.Ticker).Msg("Failed to persist alert")
		}
	}
	if err := app.Store.SaveHighWaterMarks(ctx, monitor.Tracker().Snapshot()); err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to persist high-water marks")
	}
	return len(entries)
}

// renderReport prints one cycle's report table. Decimal fields are rounded
// to two places for display only.
func renderReport(output *Output, rows []models.ReportRow, total int) {
	if output.IsJSON() {
		return
	}

	output.Printf("Last checked: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	output.Printf("Monitoring %d of %d positions\n\n", len(rows), total)

	if len(rows) == 0 {
		output.Warning("No valid tickers found or data unavailable.")
		output.Println()
		return
	}

	table := NewTable(output, "Ticker", "Days", "Buy", "Current", "Return", "Max Ret", "Max Price", "20D MA", "Advice")
	for _, row := range rows {
		adviceCell := string(row.Advice)
		if row.Advice.IsSell() && output.colorEnabled {
			adviceCell = sellCell(adviceCell)
		}
		table.AddRow(
			row.Ticker,
			fmt.Sprintf("%d", row.DaysHeld),
			fmt.Sprintf("%.2f", row.BuyPrice),
			fmt.Sprintf("%.2f", row.CurrentPrice),
			output.ColoredString(output.PnLColor(row.ReturnPct), fmt.Sprintf("%+.2f%%", row.ReturnPct)),
			fmt.Sprintf("%.2f%%", row.MaxReturnPct),
			fmt.Sprintf("%.2f", row.MaxPrice),
			fmt.Sprintf("%.2f", row.MA20),
			adviceCell,
		)
	}
	table.Render()
	output.Println()
}
