package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"sell-monitor/internal/logging"
)

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <ticker>",
		Short: "Fetch a one-shot quote",
		Long:  "Fetch the latest price and 20-day moving average for a ticker.",
		Example: `  sellmonitor quote AAPL
  sellmonitor quote MSFT --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ticker := strings.ToUpper(args[0])

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.Quotes.Timeout)
			defer cancel()

			logger := logging.WithTicker(app.Logger, ticker)
			logger.Debug().Msg("Fetching quote")

			quote, err := app.Provider.GetQuote(ctx, ticker)
			if err != nil {
				output.Error("Quote unavailable for %s: %v", ticker, err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(quote)
			}

			output.Bold(ticker)
			output.Printf("  Price:     %.2f\n", quote.Price)
			output.Printf("  20-Day MA: %.2f\n", quote.MA20)
			if quote.Price < quote.MA20 {
				output.Warning("  Trading below the 20-day moving average")
			}
			return nil
		},
	}
}
