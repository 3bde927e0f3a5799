package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/display"
	"trade-journal/internal/instruments"
	"trade-journal/internal/models"
	"trade-journal/internal/pnl"
)

// addPnLCommand adds the one-shot P&L calculation command.
func addPnLCommand(rootCmd *cobra.Command, app *App) {
	var risk float64

	cmd := &cobra.Command{
		Use:   "pnl <symbol> <long|short> <entry> <exit> <size>",
		Short: "Calculate P&L for a single trade",
		Long:  "Resolve the instrument's contract parameters and compute points, pips, dollar P&L and percentage for one trade.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trade, err := parseTradeArgs(args)
			if err != nil {
				return err
			}
			direction, entry, exit, size := trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.Size

			cfg := instruments.Resolve(trade.Instrument, app.customInstruments(cmd))
			result := pnl.Calculate(cfg, direction, entry, exit, size)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"instrument": cfg,
					"result":     result,
					"outcome":    pnl.Classify(result),
				})
			}

			if !result.Valid {
				output.Warning("Inputs out of range; result zeroed. Prices and size must be positive.")
			}

			format, currencyCode := app.displayPrefs(cmd)
			opts := display.Options{
				RiskAmount: risk,
				Currency:   currencyCode,
				Rates:      app.displayRates(cmd.Context(), currencyCode),
			}

			output.Bold("%s  %s  %v -> %v  x%v", cfg.Symbol, direction, entry, exit, size)
			output.Printf("Outcome:    %s\n", pnl.Classify(result))
			output.Printf("P&L:        %s\n", output.PnL(result.AdjustedPnL,
				display.Format(result, models.FormatDollars, cfg, opts)))
			output.Printf("Points:     %s\n", display.Format(result, models.FormatPoints, cfg, opts))
			if cfg.Category == models.Forex {
				output.Printf("Pips:       %s\n", display.Format(result, models.FormatPips, cfg, opts))
			}
			output.Printf("Ticks:      %s\n", display.Format(result, models.FormatTicks, cfg, opts))
			output.Printf("Percentage: %s\n", display.Format(result, models.FormatPercentage, cfg, opts))
			output.Printf("R-multiple: %s\n", display.Format(result, models.FormatRMultiple, cfg, opts))

			if format != models.FormatDollars {
				output.Printf("Preferred:  %s\n", display.Format(result, format, cfg, opts))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&risk, "risk", 0, "Dollar amount risked, for the R-multiple figure")
	rootCmd.AddCommand(cmd)
}
