// Package psychology derives behavioral statistics from a trade
// collection: per-factor win rates, impact against the baseline win
// rate, win/loss streaks and templated natural-language insights.
// Results are recomputed per call and never cached.
package psychology

import (
	"fmt"
	"sort"

	"trade-journal/internal/models"
)

// FactorStats aggregates all trades tagged with one psychology factor.
type FactorStats struct {
	Factor         string  `json:"factor"`
	TradeCount     int     `json:"tradeCount"`
	WinCount       int     `json:"winCount"`
	LossCount      int     `json:"lossCount"`
	BreakevenCount int     `json:"breakevenCount"`
	WinRate        float64 `json:"winRate"`
	AvgPnL         float64 `json:"avgPnL"`
	TotalPnL       float64 `json:"totalPnL"`
	// Impact is the factor's win rate minus the baseline win rate over
	// the entire collection, in percentage points.
	Impact float64 `json:"impact"`
}

// AnalysisResult is the full output of one analysis pass.
type AnalysisResult struct {
	AllFactors      []FactorStats `json:"allFactors"`
	TopEnablers     []FactorStats `json:"topEnablers"`
	TopKillers      []FactorStats `json:"topKillers"`
	BaselineWinRate float64       `json:"baselineWinRate"`
	MaxWinStreak    int           `json:"maxWinStreak"`
	MaxLossStreak   int           `json:"maxLossStreak"`
	Insights        []string      `json:"insights"`
}

const topN = 3

// Analyze computes behavioral statistics over a trade collection. The
// collection is assumed chronological for streak detection. An empty
// input returns an empty-but-well-shaped result, never an error.
func Analyze(trades []models.Trade) AnalysisResult {
	result := AnalysisResult{
		AllFactors:  []FactorStats{},
		TopEnablers: []FactorStats{},
		TopKillers:  []FactorStats{},
		Insights:    []string{},
	}
	if len(trades) == 0 {
		return result
	}

	baseline := baselineWinRate(trades)
	result.BaselineWinRate = baseline

	// First-appearance order keys the factor map so downstream ties
	// break stably.
	stats := map[string]*FactorStats{}
	var order []string
	for _, t := range trades {
		for _, factor := range t.PsychologyFactors {
			fs, ok := stats[factor]
			if !ok {
				fs = &FactorStats{Factor: factor}
				stats[factor] = fs
				order = append(order, factor)
			}
			fs.TradeCount++
			fs.TotalPnL += t.PnL
			switch t.Outcome {
			case models.Win:
				fs.WinCount++
			case models.Loss:
				fs.LossCount++
			default:
				fs.BreakevenCount++
			}
		}
	}

	for _, factor := range order {
		fs := stats[factor]
		fs.WinRate = float64(fs.WinCount) / float64(fs.TradeCount)
		fs.AvgPnL = fs.TotalPnL / float64(fs.TradeCount)
		fs.Impact = (fs.WinRate - baseline) * 100
		result.AllFactors = append(result.AllFactors, *fs)
	}

	result.TopEnablers = topByImpact(result.AllFactors, true)
	result.TopKillers = topByImpact(result.AllFactors, false)
	result.MaxWinStreak, result.MaxLossStreak = Streaks(trades)
	result.Insights = insights(result)
	return result
}

// Streaks scans trades in order and returns the longest run of
// consecutive wins and of consecutive losses. Breakeven trades and
// outcome changes reset the running streak; a streak still in progress
// at the end of the collection counts.
func Streaks(trades []models.Trade) (maxWin, maxLoss int) {
	var current int
	var currentOutcome models.Outcome

	flush := func() {
		switch currentOutcome {
		case models.Win:
			if current > maxWin {
				maxWin = current
			}
		case models.Loss:
			if current > maxLoss {
				maxLoss = current
			}
		}
	}

	for _, t := range trades {
		if t.Outcome != models.Win && t.Outcome != models.Loss {
			flush()
			current, currentOutcome = 0, ""
			continue
		}
		if t.Outcome != currentOutcome {
			flush()
			current, currentOutcome = 0, t.Outcome
		}
		current++
	}
	flush()
	return maxWin, maxLoss
}

// baselineWinRate is the unconditional win rate across all trades,
// computed once and reused for every factor's impact.
func baselineWinRate(trades []models.Trade) float64 {
	var wins int
	for _, t := range trades {
		if t.Outcome == models.Win {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// topByImpact picks the strongest enablers (positive impact, descending)
// or killers (negative impact, most negative first). The stable sort
// keeps first-appearance order for tied factors.
func topByImpact(all []FactorStats, enablers bool) []FactorStats {
	picked := []FactorStats{}
	for _, fs := range all {
		if enablers && fs.Impact > 0 || !enablers && fs.Impact < 0 {
			picked = append(picked, fs)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		if enablers {
			return picked[i].Impact > picked[j].Impact
		}
		return picked[i].Impact < picked[j].Impact
	})
	if len(picked) > topN {
		picked = picked[:topN]
	}
	return picked
}

// insights renders the templated natural-language summary.
func insights(r AnalysisResult) []string {
	out := []string{}

	if len(r.AllFactors) == 0 {
		out = append(out, "No psychology factors recorded yet. Tag your trades to see what helps and what hurts.")
	} else {
		if len(r.TopEnablers) > 0 {
			top := r.TopEnablers[0]
			out = append(out, fmt.Sprintf(
				"Your edge shows up when %q: %.0f%% win rate, %+.0f points above your baseline.",
				top.Factor, top.WinRate*100, top.Impact))
		}
		if len(r.TopKillers) > 0 {
			worst := r.TopKillers[0]
			out = append(out, fmt.Sprintf(
				"Watch out for %q: win rate drops to %.0f%%, %.0f points below your baseline.",
				worst.Factor, worst.WinRate*100, -worst.Impact))
		}
	}

	if r.MaxWinStreak >= 3 {
		out = append(out, fmt.Sprintf("Longest win streak: %d trades in a row.", r.MaxWinStreak))
	}
	if r.MaxLossStreak >= 3 {
		out = append(out, fmt.Sprintf("Longest losing streak: %d trades. Consider sizing down after consecutive losses.", r.MaxLossStreak))
	}

	return out
}
