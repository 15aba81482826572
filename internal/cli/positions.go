package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sell-monitor/internal/models"
	"sell-monitor/internal/positions"
)

func newPositionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Position input management",
		Long:  "Validate and inspect the positions CSV.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Validate a positions CSV file",
		Long: `Parse a positions CSV and report the first malformed row, if any.
A file that fails validation must not be monitored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			loaded, err := positions.LoadFile(args[0])
			if err != nil {
				output.Error("✗ %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"valid":     true,
					"positions": len(loaded),
				})
			}
			output.Success("✓ %d positions parsed", len(loaded))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [file.csv]",
		Short: "Show positions",
		Long:  "Display positions from a CSV file, the configured file, or the built-in samples.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			var loaded []models.Position
			var source string
			var err error
			switch {
			case len(args) > 0:
				loaded, err = positions.LoadFile(args[0])
				source = args[0]
			case app.Config.Monitor.PositionsFile != "":
				loaded, err = positions.LoadFile(app.Config.Monitor.PositionsFile)
				source = app.Config.Monitor.PositionsFile
			default:
				loaded = positions.Sample()
				source = "sample data"
			}
			if err != nil {
				output.Error("Failed to load positions: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(loaded)
			}

			output.Bold("Positions (%s)", source)
			output.Println()
			table := NewTable(output, "Ticker", "Buy Date", "Buy Price")
			for _, p := range loaded {
				table.AddRow(p.Ticker, p.BuyDate.Format("2006-01-02"), fmt.Sprintf("%.2f", p.BuyPrice))
			}
			table.Render()
			return nil
		},
	})

	return cmd
}

// loadPositions resolves the position set for the monitor command:
// --positions flag, then the configured file, then the built-in samples.
func loadPositions(cmd *cobra.Command, app *App) ([]models.Position, string, error) {
	if path, _ := cmd.Flags().GetString("positions"); path != "" {
		loaded, err := positions.LoadFile(path)
		return loaded, path, err
	}
	if path := app.Config.Monitor.PositionsFile; path != "" {
		loaded, err := positions.LoadFile(path)
		return loaded, path, err
	}
	return positions.Sample(), "sample data", nil
}
