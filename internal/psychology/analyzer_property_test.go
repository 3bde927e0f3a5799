package psychology

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-journal/internal/models"
)

func outcomesToTrades(outcomes []models.Outcome) []models.Trade {
	trades := make([]models.Trade, len(outcomes))
	for i, o := range outcomes {
		trades[i] = models.Trade{Outcome: o}
	}
	return trades
}

func outcomeGen() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(models.Win, models.Loss, models.Breakeven))
}

// Appending a trade with the same outcome as the running streak never
// decreases the recorded max streak for that outcome.
func TestPropertyStreakMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("appending a win never lowers the win streak", prop.ForAll(
		func(outcomes []models.Outcome) bool {
			trades := outcomesToTrades(outcomes)
			before, _ := Streaks(trades)
			after, _ := Streaks(append(trades, models.Trade{Outcome: models.Win}))
			return after >= before
		},
		outcomeGen(),
	))

	properties.Property("appending a loss never lowers the loss streak", prop.ForAll(
		func(outcomes []models.Outcome) bool {
			trades := outcomesToTrades(outcomes)
			_, before := Streaks(trades)
			_, after := Streaks(append(trades, models.Trade{Outcome: models.Loss}))
			return after >= before
		},
		outcomeGen(),
	))

	properties.Property("streaks never exceed collection length", prop.ForAll(
		func(outcomes []models.Outcome) bool {
			maxWin, maxLoss := Streaks(outcomesToTrades(outcomes))
			return maxWin <= len(outcomes) && maxLoss <= len(outcomes) &&
				maxWin >= 0 && maxLoss >= 0
		},
		outcomeGen(),
	))

	properties.TestingRun(t)
}

// Per-factor counts always partition the factor's trade count, and the
// factor's total P&L equals the naive sum over tagged trades.
func TestPropertyFactorSums(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	tradeGen := gen.SliceOf(gopter.CombineGens(
		gen.OneConstOf(models.Win, models.Loss, models.Breakeven),
		gen.Float64Range(-1000, 1000),
		gen.SliceOfN(2, gen.OneConstOf("a", "b", "c")),
	).Map(func(values []interface{}) models.Trade {
		return models.Trade{
			Outcome:           values[0].(models.Outcome),
			PnL:               values[1].(float64),
			PsychologyFactors: values[2].([]string),
		}
	}))

	properties.Property("counts partition and totals match", prop.ForAll(
		func(trades []models.Trade) bool {
			result := Analyze(trades)
			for _, fs := range result.AllFactors {
				if fs.WinCount+fs.LossCount+fs.BreakevenCount != fs.TradeCount {
					return false
				}
				var naive float64
				for _, tr := range trades {
					for _, f := range tr.PsychologyFactors {
						if f == fs.Factor {
							naive += tr.PnL
						}
					}
				}
				if fs.TotalPnL != naive {
					return false
				}
			}
			return true
		},
		tradeGen,
	))

	properties.TestingRun(t)
}
