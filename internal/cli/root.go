package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/config"
	"trade-journal/internal/currency"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies shared by all commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.TradeStore
	Rates  *currency.Service
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Rates:  currency.NewServiceURL(cfg.Rates.Endpoint, logger),
	}

	dataStore, err := store.NewSQLiteStore(cfg.Journal.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal commands unavailable")
	} else {
		app.Store = dataStore
	}

	rootCmd := &cobra.Command{
		Use:     "trade-journal",
		Short:   "Trading journal with instrument-aware P&L analytics",
		Long:    "Log trades, compute normalized P&L across futures, forex, crypto and stocks, and analyze the behavioral patterns behind your results.",
		Version: Version,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("color", cfg.Display.ColorEnabled, "Colorize terminal output")
	rootCmd.PersistentFlags().String("format", "", "P&L display format (dollars, points, pips, ticks, percentage, rmultiple, privacy)")
	rootCmd.PersistentFlags().String("currency", "", "Display currency (USD, EUR, GBP, JPY, CAD, AUD, CHF)")

	addPnLCommand(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addAnalyzeCommand(rootCmd, app)
	addPlaybookCommands(rootCmd, app)
	addComplianceCommand(rootCmd, app)
	addRatesCommand(rootCmd, app)
	addInstrumentsCommand(rootCmd, app)

	return rootCmd
}

// displayPrefs resolves the effective display format and currency from
// flags, falling back to the persisted preferences.
func (app *App) displayPrefs(cmd *cobra.Command) (models.DisplayFormat, string) {
	format := app.Config.Display.PnLFormat()
	if name, _ := cmd.Flags().GetString("format"); name != "" {
		if f := models.DisplayFormat(name); f.Valid() {
			format = f
		}
	}
	curr, _ := cmd.Flags().GetString("currency")
	if curr == "" {
		curr = app.Config.Display.Currency
	}
	return format, curr
}

// displayRates returns the rate table for rendering in the target
// currency, fetching live rates the first time a non-USD display is
// requested. USD display never touches the network.
func (app *App) displayRates(ctx context.Context, currencyCode string) models.ExchangeRates {
	snap := app.Rates.Rates()
	if currencyCode != "" && currencyCode != "USD" && snap.Stale() {
		snap = app.Rates.Refresh(ctx)
	}
	return snap.Rates
}

// customInstruments loads user overrides, tolerating a missing store.
func (app *App) customInstruments(cmd *cobra.Command) []models.CustomInstrument {
	if app.Store == nil {
		return nil
	}
	custom, err := app.Store.GetCustomInstruments(cmd.Context())
	if err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to load custom instruments")
		return nil
	}
	return custom
}
