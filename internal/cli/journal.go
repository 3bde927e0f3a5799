package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"trade-journal/internal/display"
	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/instruments"
	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/pnl"
	"trade-journal/internal/store"
)

// addJournalCommands adds the journal command group.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and review trades",
	}

	cmd.AddCommand(newJournalLogCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalStatsCmd(app))
	cmd.AddCommand(newJournalExportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newJournalLogCmd(app *App) *cobra.Command {
	var (
		stopLoss   float64
		takeProfit float64
		setup      string
		strategyID string
		factors    []string
		rules      []string
		dateStr    string
	)

	cmd := &cobra.Command{
		Use:   "log <symbol> <long|short> <entry> <exit> <size>",
		Short: "Record a completed trade",
		Long:  "Record a trade; its dollar P&L and outcome are computed from the instrument's contract parameters before saving.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store not initialized.")
				return fmt.Errorf("store unavailable")
			}

			trade, err := parseTradeArgs(args)
			if err != nil {
				return err
			}

			trade.Date = time.Now()
			if dateStr != "" {
				d, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
				}
				trade.Date = d
			}
			trade.StopLoss = stopLoss
			trade.TakeProfit = takeProfit
			trade.SetupName = setup
			trade.StrategyID = strategyID
			trade.PsychologyFactors = factors
			trade.ExecutedRules = rules

			if trade.StrategyID != "" {
				if _, err := app.Store.GetStrategy(cmd.Context(), trade.StrategyID); err != nil {
					if apperrors.Is(err, apperrors.ErrStrategyNotFound) {
						return fmt.Errorf("unknown strategy %q", trade.StrategyID)
					}
					return err
				}
			}

			cfg := instruments.Resolve(trade.Instrument, app.customInstruments(cmd))
			result := pnl.Calculate(cfg, trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.Size)
			trade.PnL = result.AdjustedPnL
			trade.Outcome = pnl.Classify(result)

			if err := app.Store.LogTrade(cmd.Context(), &trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}
			tradeLogger := logging.WithSymbol(app.Logger, trade.Instrument)
			tradeLogger.Info().
				Str("id", trade.ID).Float64("pnl", trade.PnL).Msg("Trade recorded")

			output.Success("Trade %s recorded: %s %s, P&L %s", shortID(trade.ID),
				trade.Instrument, trade.Direction,
				output.PnL(trade.PnL, display.Format(result, models.FormatDollars, cfg, display.Options{})))
			return nil
		},
	}

	cmd.Flags().Float64Var(&stopLoss, "stop", 0, "Stop-loss price")
	cmd.Flags().Float64Var(&takeProfit, "target", 0, "Take-profit price")
	cmd.Flags().StringVar(&setup, "setup", "", "Setup name")
	cmd.Flags().StringVar(&strategyID, "strategy", "", "Playbook strategy ID")
	cmd.Flags().StringSliceVar(&factors, "factors", nil, "Psychology factor tags (comma-separated)")
	cmd.Flags().StringSliceVar(&rules, "rules", nil, "Executed rule IDs (comma-separated)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Trade date (YYYY-MM-DD, default today)")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade in every display format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			trade, err := app.Store.GetTrade(cmd.Context(), args[0])
			if err != nil {
				if apperrors.Is(err, apperrors.ErrTradeNotFound) {
					output.Error("No trade with ID %s.", args[0])
				}
				return err
			}

			custom := app.customInstruments(cmd)
			cfg := instruments.Resolve(trade.Instrument, custom)
			result := pnl.CalculateTrade(trade, custom)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trade":      trade,
					"instrument": cfg,
					"result":     result,
				})
			}

			_, currencyCode := app.displayPrefs(cmd)
			opts := display.Options{
				RiskAmount: trade.RiskAmount(cfg.Multiplier),
				Currency:   currencyCode,
				Rates:      app.displayRates(cmd.Context(), currencyCode),
			}

			output.Bold("%s  %s %s  %v -> %v  x%v", trade.Date.Format("2006-01-02"),
				cfg.Symbol, trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.Size)
			if trade.SetupName != "" {
				output.Printf("Setup:      %s\n", trade.SetupName)
			}
			output.Printf("Outcome:    %s\n", trade.Outcome)
			for _, f := range []models.DisplayFormat{
				models.FormatDollars, models.FormatPoints, models.FormatPips,
				models.FormatTicks, models.FormatPercentage, models.FormatRMultiple,
			} {
				output.Printf("%-11s %s\n", string(f)+":", display.Format(result, f, cfg, opts))
			}
			if len(trade.PsychologyFactors) > 0 {
				output.Printf("Factors:    %s\n", strings.Join(trade.PsychologyFactors, ", "))
			}
			return nil
		},
	}
}

func newJournalListCmd(app *App) *cobra.Command {
	var (
		instrument string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := app.loadTrades(cmd, store.TradeFilter{Instrument: instrument, Limit: limit})
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			_, currencyCode := app.displayPrefs(cmd)
			opts := display.Options{Currency: currencyCode, Rates: app.displayRates(cmd.Context(), currencyCode)}
			custom := app.customInstruments(cmd)

			output.Bold("%-10s  %-8s  %-5s  %10s  %10s  %8s  %12s  %-9s",
				"Date", "Symbol", "Side", "Entry", "Exit", "Size", "P&L", "Outcome")
			for _, t := range trades {
				cfg := instruments.Resolve(t.Instrument, custom)
				result := pnl.CalculateTrade(t, custom)
				output.Printf("%-10s  %-8s  %-5s  %10.*f  %10.*f  %8g  %12s  %-9s\n",
					t.Date.Format("2006-01-02"), cfg.Symbol, t.Direction,
					cfg.DisplayDecimals, t.EntryPrice,
					cfg.DisplayDecimals, t.ExitPrice, t.Size,
					output.PnL(result.AdjustedPnL, display.Format(result, models.FormatDollars, cfg, opts)),
					t.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instrument, "instrument", "", "Filter by instrument symbol")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of trades")
	return cmd
}

func newJournalStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summary statistics over all trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := app.loadTrades(cmd, store.TradeFilter{})
			if err != nil {
				return err
			}

			var wins, losses, breakevens int
			var totalPnL, grossWin, grossLoss float64
			for _, t := range trades {
				totalPnL += t.PnL
				switch t.Outcome {
				case models.Win:
					wins++
					grossWin += t.PnL
				case models.Loss:
					losses++
					grossLoss += t.PnL
				default:
					breakevens++
				}
			}

			stats := map[string]interface{}{
				"trades":     len(trades),
				"wins":       wins,
				"losses":     losses,
				"breakevens": breakevens,
				"totalPnL":   totalPnL,
			}
			if len(trades) > 0 {
				stats["winRate"] = float64(wins) / float64(len(trades))
			}
			if grossLoss != 0 {
				stats["profitFactor"] = grossWin / -grossLoss
			}

			if output.IsJSON() {
				return output.JSON(stats)
			}
			output.Bold("Journal statistics")
			output.Printf("Trades:     %d (%d W / %d L / %d BE)\n", len(trades), wins, losses, breakevens)
			if len(trades) > 0 {
				output.Printf("Win rate:   %.1f%%\n", float64(wins)/float64(len(trades))*100)
			}
			output.Printf("Total P&L:  %s\n", output.PnL(totalPnL, fmt.Sprintf("%+.2f", totalPnL)))
			if grossLoss != 0 {
				output.Printf("Profit factor: %.2f\n", grossWin/-grossLoss)
			}
			return nil
		},
	}
}

func newJournalExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := app.loadTrades(cmd, store.TradeFilter{})
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()

			if err := gocsv.MarshalFile(&trades, f); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			output.Success("Exported %d trades to %s", len(trades), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "trades.csv", "Output file path")
	return cmd
}

// loadTrades fetches trades with a consistent store-missing error.
func (app *App) loadTrades(cmd *cobra.Command, filter store.TradeFilter) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("store unavailable")
	}
	trades, err := app.Store.GetTrades(cmd.Context(), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}
	return trades, nil
}

// parseTradeArgs parses the shared <symbol> <side> <entry> <exit> <size>
// positional arguments.
func parseTradeArgs(args []string) (models.Trade, error) {
	var t models.Trade
	t.Instrument = instruments.Normalize(args[0])
	t.Direction = models.Direction(strings.ToLower(args[1]))
	if !t.Direction.Valid() {
		return t, fmt.Errorf("direction must be long or short, got %q", args[1])
	}
	values := make([]float64, 3)
	for i, name := range []string{"entry", "exit", "size"} {
		v, err := strconv.ParseFloat(args[i+2], 64)
		if err != nil {
			return t, fmt.Errorf("invalid %s %q", name, args[i+2])
		}
		values[i] = v
	}
	t.EntryPrice, t.ExitPrice, t.Size = values[0], values[1], values[2]
	return t, nil
}
