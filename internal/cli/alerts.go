package cli

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"sell-monitor/internal/models"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Sell alert history",
		Long:  "List and export the historical sell alert log.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sell alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			entries, err := app.alertHistory(cmd)
			if err != nil {
				output.Error("Failed to load alert history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}

			if len(entries) == 0 {
				output.Dim("No sell alerts recorded yet.")
				return nil
			}

			output.Bold("Sell Alerts Log (%d entries)", len(entries))
			output.Println()
			table := NewTable(output, "Timestamp", "Ticker", "Advice", "Buy", "Current", "Return")
			for _, e := range entries {
				table.AddRow(
					e.Timestamp.Format("2006-01-02 15:04:05"),
					e.Ticker,
					string(e.Advice),
					fmt.Sprintf("%.2f", e.BuyPrice),
					fmt.Sprintf("%.2f", e.CurrentPrice),
					output.ColoredString(output.PnLColor(e.ReturnPct), fmt.Sprintf("%+.2f%%", e.ReturnPct)),
				)
			}
			table.Render()
			return nil
		},
	})

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export sell alerts as CSV",
		Long: `Write the alert log as CSV with the header
Timestamp,Ticker,Advice,Buy Price,Current Price,Return (%).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			entries, err := app.alertHistory(cmd)
			if err != nil {
				output.Error("Failed to load alert history: %v", err)
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				return gocsv.Marshal(&entries, cmd.OutOrStdout())
			}

			f, err := os.Create(outPath)
			if err != nil {
				output.Error("Failed to create %s: %v", outPath, err)
				return err
			}
			defer f.Close()

			if err := gocsv.Marshal(&entries, f); err != nil {
				output.Error("Failed to write CSV: %v", err)
				return err
			}
			output.Success("✓ Exported %d alerts to %s", len(entries), outPath)
			return nil
		},
	}
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	cmd.AddCommand(exportCmd)

	return cmd
}

// alertHistory returns the persisted alert log, oldest first.
func (app *App) alertHistory(cmd *cobra.Command) ([]models.AlertEntry, error) {
	if app.Store == nil {
		return []models.AlertEntry{}, nil
	}
	entries, err := app.Store.GetAlerts(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.AlertEntry{}
	}
	return entries, nil
}
