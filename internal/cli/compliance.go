package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trade-journal/internal/playbook"
	"trade-journal/internal/store"
)

// addComplianceCommand adds the playbook compliance report command.
func addComplianceCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Score rule adherence against your playbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			strategies, err := app.Store.GetStrategies(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch strategies: %w", err)
			}
			trades, err := app.loadTrades(cmd, store.TradeFilter{})
			if err != nil {
				return err
			}

			summaries := playbook.Summarize(strategies, trades)
			if output.IsJSON() {
				return output.JSON(summaries)
			}

			if len(summaries) == 0 {
				output.Info("No trades reference a playbook strategy yet.")
				return nil
			}

			output.Bold("%-28s %7s %10s %12s", "Strategy", "Trades", "Adherence", "Total P&L")
			for _, s := range summaries {
				output.Printf("%-28s %7d %9.0f%% %12s\n",
					s.StrategyName, s.TradeCount, s.AvgScore*100,
					output.PnL(s.TotalPnL, fmt.Sprintf("%+.2f", s.TotalPnL)))
			}
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
