package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/currency"
)

// addRatesCommand adds the exchange-rates command.
func addRatesCommand(rootCmd *cobra.Command, app *App) {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show exchange rates used for currency display",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			snap := app.Rates.Rates()
			if refresh {
				snap = app.Rates.Refresh(cmd.Context())
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"rates":     snap.Rates,
					"source":    snap.Source,
					"fetchedAt": snap.FetchedAt,
					"stale":     snap.Stale(),
				})
			}

			output.Bold("Exchange rates (per 1 USD)")
			for _, code := range currency.Supported {
				if rate, ok := snap.Rates[code]; ok {
					output.Printf("  %s  %10.4f\n", code, rate)
				}
			}
			output.Println()
			if snap.Stale() {
				output.Warning("Source: %s (stale). Run with --refresh to fetch live rates.", snap.Source)
			} else {
				output.Dim("Source: live, fetched %s", snap.FetchedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch fresh rates before displaying")
	rootCmd.AddCommand(cmd)
}
