package cli

import (
	"github.com/spf13/cobra"

	"trade-journal/internal/psychology"
	"trade-journal/internal/store"
)

// addAnalyzeCommand adds the psychology analysis command.
func addAnalyzeCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze psychology factors and streaks",
		Long:  "Aggregate trades by their psychology factor tags, compare each factor's win rate against your baseline, and report win/loss streaks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trades, err := app.loadTrades(cmd, store.TradeFilter{})
			if err != nil {
				return err
			}

			result := psychology.Analyze(trades)
			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Psychology analysis (%d trades, baseline win rate %.1f%%)",
				len(trades), result.BaselineWinRate*100)
			output.Println()

			if len(result.AllFactors) > 0 {
				output.Bold("%-24s %7s %8s %10s %8s", "Factor", "Trades", "Win %", "Avg P&L", "Impact")
				for _, fs := range result.AllFactors {
					output.Printf("%-24s %7d %7.1f%% %10.2f %+7.1f\n",
						fs.Factor, fs.TradeCount, fs.WinRate*100, fs.AvgPnL, fs.Impact)
				}
				output.Println()
			}

			if len(result.TopEnablers) > 0 {
				output.Success("Enablers:")
				for _, fs := range result.TopEnablers {
					output.Printf("  %-24s %+.1f pts vs baseline\n", fs.Factor, fs.Impact)
				}
			}
			if len(result.TopKillers) > 0 {
				output.Error("Killers:")
				for _, fs := range result.TopKillers {
					output.Printf("  %-24s %+.1f pts vs baseline\n", fs.Factor, fs.Impact)
				}
			}

			if len(result.Insights) > 0 {
				output.Println()
				output.Bold("Insights")
				for _, insight := range result.Insights {
					output.Printf("  • %s\n", insight)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
