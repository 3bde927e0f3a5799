package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/instruments"
	"trade-journal/internal/models"
)

// addInstrumentsCommand adds the instrument registry inspection command.
func addInstrumentsCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "instruments [symbol]",
		Short: "Show instrument contract parameters",
		Long:  "With no argument, list the static registry. With a symbol, show what the symbol resolves to, including custom overrides and inferred defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if len(args) == 1 {
				cfg := instruments.Resolve(args[0], app.customInstruments(cmd))
				if output.IsJSON() {
					return output.JSON(cfg)
				}
				printConfig(output, cfg)
				return nil
			}

			all := instruments.All()
			sort.Slice(all, func(i, j int) bool { return all[i].Symbol < all[j].Symbol })
			if output.IsJSON() {
				return output.JSON(all)
			}

			output.Bold("%-8s %-28s %-8s %12s %10s %10s", "Symbol", "Name", "Category", "Multiplier", "Tick", "Pip")
			for _, cfg := range all {
				output.Printf("%-8s %-28s %-8s %12g %10g %10g\n",
					cfg.Symbol, cfg.Name, cfg.Category, cfg.Multiplier, cfg.TickSize, cfg.PipSize)
			}
			return nil
		},
	}

	cmd.AddCommand(newInstrumentsAddCmd(app))
	rootCmd.AddCommand(cmd)
}

func newInstrumentsAddCmd(app *App) *cobra.Command {
	var cfg models.CustomInstrument

	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Save a custom instrument override",
		Long:  "Save contract parameters for a symbol. Overrides take precedence over the built-in registry when the symbol is resolved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			cfg.Symbol = instruments.Normalize(args[0])
			cfg.Category = models.Category(strings.ToLower(string(cfg.Category)))
			if err := validateCustomInstrument(cfg); err != nil {
				return err
			}
			if cfg.Name == "" {
				cfg.Name = cfg.Symbol
			}
			if cfg.Currency == "" {
				cfg.Currency = "USD"
			}

			if base, ok := instruments.Lookup(cfg.Symbol); ok {
				output.Warning("Overriding built-in instrument %s (%s)", base.Symbol, base.Name)
			}
			if err := app.Store.SaveCustomInstrument(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("failed to save instrument: %w", err)
			}
			output.Success("Saved custom instrument %s", cfg.Symbol)
			printConfig(output, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Name, "name", "", "Display name")
	cmd.Flags().StringVar((*string)(&cfg.Category), "category", "futures", "Category (futures, forex, crypto, stock, other)")
	cmd.Flags().Float64Var(&cfg.Multiplier, "multiplier", 1, "Contract multiplier (dollars per point per contract)")
	cmd.Flags().Float64Var(&cfg.TickSize, "tick-size", 0, "Minimum price increment")
	cmd.Flags().Float64Var(&cfg.TickValue, "tick-value", 0, "Dollar value of one tick")
	cmd.Flags().Float64Var(&cfg.PipSize, "pip-size", 0, "Pip size for forex pairs")
	cmd.Flags().IntVar(&cfg.DisplayDecimals, "decimals", 2, "Price display decimals")
	cmd.Flags().StringVar(&cfg.Currency, "currency", "USD", "Quote currency")
	return cmd
}

// validateCustomInstrument checks user-supplied contract parameters
// before they enter the store.
func validateCustomInstrument(cfg models.CustomInstrument) error {
	if cfg.Symbol == "" {
		return apperrors.NewValidationError("symbol", "must not be empty")
	}
	if !cfg.Category.Valid() {
		return apperrors.NewValidationError("category", fmt.Sprintf("unknown category %q", cfg.Category))
	}
	if cfg.Multiplier <= 0 {
		return apperrors.NewValidationError("multiplier", "must be positive")
	}
	if cfg.TickSize < 0 || cfg.TickValue < 0 || cfg.PipSize < 0 {
		return apperrors.NewValidationError("tick-size", "contract parameters must not be negative")
	}
	if cfg.DisplayDecimals < 0 {
		return apperrors.NewValidationError("decimals", "must not be negative")
	}
	return nil
}

func printConfig(output *Output, cfg models.InstrumentConfig) {
	output.Bold("%s (%s)", cfg.Symbol, cfg.Name)
	output.Printf("Category:    %s\n", cfg.Category)
	output.Printf("Multiplier:  %g\n", cfg.Multiplier)
	output.Printf("Tick size:   %g\n", cfg.TickSize)
	if cfg.TickValue > 0 {
		output.Printf("Tick value:  $%g\n", cfg.TickValue)
	}
	if cfg.PipSize > 0 {
		output.Printf("Pip size:    %g\n", cfg.PipSize)
	}
	output.Printf("Decimals:    %d\n", cfg.DisplayDecimals)
	output.Printf("Currency:    %s\n", cfg.Currency)
}
