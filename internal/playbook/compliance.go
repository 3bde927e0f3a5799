// Package playbook scores how closely executed trades followed their
// strategy's rules.
package playbook

import "trade-journal/internal/models"

// Compliance is the adherence score for a single trade against its
// strategy.
type Compliance struct {
	StrategyID      string  `json:"strategyId"`
	Score           float64 `json:"score"`
	RequiredTotal   int     `json:"requiredTotal"`
	RequiredMatched int     `json:"requiredMatched"`
	Followed        int     `json:"followed"`
	Skipped         int     `json:"skipped"`
}

// StrategySummary aggregates compliance across all trades referencing
// one strategy.
type StrategySummary struct {
	StrategyID   string  `json:"strategyId"`
	StrategyName string  `json:"strategyName"`
	TradeCount   int     `json:"tradeCount"`
	AvgScore     float64 `json:"avgScore"`
	TotalPnL     float64 `json:"totalPnL"`
}

// ScoreTrade computes the compliance score for one trade's executed
// rules against its strategy: matched required rules over total
// required rules. A strategy with no required rules is vacuously fully
// compliant.
func ScoreTrade(strategy models.Strategy, executedRuleIDs []string) Compliance {
	executed := make(map[string]bool, len(executedRuleIDs))
	for _, id := range executedRuleIDs {
		executed[id] = true
	}

	c := Compliance{StrategyID: strategy.ID}
	for _, rule := range strategy.Rules {
		if executed[rule.ID] {
			c.Followed++
		} else {
			c.Skipped++
		}
		if rule.Required {
			c.RequiredTotal++
			if executed[rule.ID] {
				c.RequiredMatched++
			}
		}
	}

	if c.RequiredTotal == 0 {
		c.Score = 1.0
	} else {
		c.Score = float64(c.RequiredMatched) / float64(c.RequiredTotal)
	}
	return c
}

// Summarize joins a trade collection against the playbook and returns
// one summary per strategy, in the order strategies were given. Trades
// referencing an unknown strategy are skipped.
func Summarize(strategies []models.Strategy, trades []models.Trade) []StrategySummary {
	byID := make(map[string]models.Strategy, len(strategies))
	for _, s := range strategies {
		byID[s.ID] = s
	}

	totals := map[string]*StrategySummary{}
	for _, t := range trades {
		strategy, ok := byID[t.StrategyID]
		if !ok {
			continue
		}
		sum, ok := totals[strategy.ID]
		if !ok {
			sum = &StrategySummary{StrategyID: strategy.ID, StrategyName: strategy.Name}
			totals[strategy.ID] = sum
		}
		score := ScoreTrade(strategy, t.ExecutedRules)
		sum.AvgScore += score.Score
		sum.TradeCount++
		sum.TotalPnL += t.PnL
	}

	out := []StrategySummary{}
	for _, s := range strategies {
		if sum, ok := totals[s.ID]; ok {
			sum.AvgScore /= float64(sum.TradeCount)
			out = append(out, *sum)
		}
	}
	return out
}
