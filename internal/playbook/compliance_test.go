package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func breakoutStrategy() models.Strategy {
	return models.Strategy{
		ID:   "s1",
		Name: "Opening Range Breakout",
		Rules: []models.Rule{
			{ID: "r1", Phase: models.PhaseBefore, Text: "Mark overnight high/low", Required: true},
			{ID: "r2", Phase: models.PhaseBefore, Text: "Check the news calendar", Required: false},
			{ID: "r3", Phase: models.PhaseDuring, Text: "Wait for the range break", Required: true},
			{ID: "r4", Phase: models.PhaseAfter, Text: "Journal the exit", Required: true},
		},
	}
}

func TestScoreTradeFullCompliance(t *testing.T) {
	c := ScoreTrade(breakoutStrategy(), []string{"r1", "r2", "r3", "r4"})
	assert.Equal(t, 1.0, c.Score)
	assert.Equal(t, 3, c.RequiredTotal)
	assert.Equal(t, 3, c.RequiredMatched)
	assert.Equal(t, 4, c.Followed)
	assert.Zero(t, c.Skipped)
}

func TestScoreTradePartialCompliance(t *testing.T) {
	// One of three required rules executed; the optional rule does not
	// count toward the score.
	c := ScoreTrade(breakoutStrategy(), []string{"r1", "r2"})
	assert.InDelta(t, 1.0/3, c.Score, 1e-9)
	assert.Equal(t, 1, c.RequiredMatched)
	assert.Equal(t, 2, c.Followed)
	assert.Equal(t, 2, c.Skipped)
}

func TestScoreTradeNoRulesExecuted(t *testing.T) {
	c := ScoreTrade(breakoutStrategy(), nil)
	assert.Zero(t, c.Score)
	assert.Equal(t, 4, c.Skipped)
}

func TestScoreTradeVacuousCompliance(t *testing.T) {
	// No required rules: fully compliant, not NaN.
	strategy := models.Strategy{ID: "s2", Name: "Freestyle", Rules: []models.Rule{
		{ID: "r1", Phase: models.PhaseBefore, Text: "Optional check", Required: false},
	}}
	c := ScoreTrade(strategy, nil)
	assert.Equal(t, 1.0, c.Score)

	empty := models.Strategy{ID: "s3", Name: "Empty"}
	assert.Equal(t, 1.0, ScoreTrade(empty, nil).Score)
}

func TestScoreTradeIgnoresUnknownRuleIDs(t *testing.T) {
	c := ScoreTrade(breakoutStrategy(), []string{"r1", "bogus"})
	assert.Equal(t, 1, c.RequiredMatched)
	assert.Equal(t, 1, c.Followed)
}

func TestSummarize(t *testing.T) {
	strategies := []models.Strategy{breakoutStrategy()}
	trades := []models.Trade{
		{StrategyID: "s1", PnL: 100, ExecutedRules: []string{"r1", "r3", "r4"}},
		{StrategyID: "s1", PnL: -50, ExecutedRules: []string{"r1"}},
		{StrategyID: "unknown", PnL: 10, ExecutedRules: []string{"r1"}},
	}

	summaries := Summarize(strategies, trades)
	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "Opening Range Breakout", s.StrategyName)
	assert.Equal(t, 2, s.TradeCount)
	assert.InDelta(t, (1.0+1.0/3)/2, s.AvgScore, 1e-9)
	assert.InDelta(t, 50.0, s.TotalPnL, 1e-9)
}

func TestSummarizeNoTrades(t *testing.T) {
	summaries := Summarize([]models.Strategy{breakoutStrategy()}, nil)
	assert.Empty(t, summaries)
}

func TestRequiredRulesOrder(t *testing.T) {
	req := breakoutStrategy().RequiredRules()
	require.Len(t, req, 3)
	assert.Equal(t, []string{"r1", "r3", "r4"}, []string{req[0].ID, req[1].ID, req[2].ID})
}
