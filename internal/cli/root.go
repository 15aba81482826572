// Package cli provides the command-line interface for the sell monitor.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sell-monitor/internal/config"
	"sell-monitor/internal/logging"
	"sell-monitor/internal/notify"
	"sell-monitor/internal/quotes"
	"sell-monitor/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider quotes.Provider
	Store    store.SnapshotStore
	Notifier *notify.Notifier
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: quotes.NewBreakerProvider(quotes.NewYahooProvider(cfg.Quotes.Timeout), logger),
		Notifier: notify.NewNotifier(cfg.Notify, logger),
	}

	// Snapshot store; the monitor works without it if it fails to open.
	dbPath := filepath.Join(config.DefaultConfigDir(), "monitor.db")
	snapshotStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open snapshot store, history will not persist")
	} else {
		app.Store = snapshotStore
		logger.Debug().Str("path", dbPath).Msg("SQLite snapshot store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "sellmonitor",
		Short: "Sell Monitor - exit-condition monitoring for held positions",
		Long: `Sell Monitor periodically re-evaluates held positions against a
configurable exit-strategy rule set (target return, stop loss, trailing stop,
20-day moving average, max holding period) and records every sell advisory in
an exportable alert log.

Positions are loaded from a CSV with columns: Ticker, Buy Date, Buy Price.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/sell-monitor)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newMonitorCmd(app))
	rootCmd.AddCommand(newPositionsCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
	rootCmd.AddCommand(newQuoteCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Sell Monitor v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Exit Criteria")
	output.Printf("  Target Return:   %.1f%%\n", cfg.Exit.TargetReturnPct)
	output.Printf("  Stop Loss:       %.1f%%\n", cfg.Exit.StopLossPct)
	output.Printf("  Trailing Stop:   %.1f%%\n", cfg.Exit.TrailingStopPct)
	output.Printf("  Max Hold Period: %d days\n", cfg.Exit.MaxHoldDays)
	output.Println()

	output.Bold("Monitor")
	output.Printf("  Interval:        %s\n", cfg.Monitor.Interval)
	output.Printf("  Positions File:  %s\n", cfg.Monitor.PositionsFile)
	output.Println()

	output.Bold("Quotes")
	output.Printf("  Timeout:         %s\n", cfg.Quotes.Timeout)
	output.Printf("  Max Workers:     %d\n", cfg.Quotes.MaxWorkers)
	output.Println()

	output.Bold("Notifications")
	webhook := cfg.Notify.WebhookURL
	if webhook == "" {
		webhook = "(disabled)"
	}
	output.Printf("  Webhook:         %s\n", webhook)
	output.Printf("  Desktop:         %v\n", cfg.Notify.Desktop)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)
}
