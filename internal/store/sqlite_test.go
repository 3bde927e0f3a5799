package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogAndGetTrades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := models.Trade{
		Date:              time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Instrument:        "MNQ",
		Direction:         models.Long,
		EntryPrice:        18000,
		ExitPrice:         18020,
		Size:              3,
		StopLoss:          17990,
		Outcome:           models.Win,
		PnL:               120,
		SetupName:         "orb",
		StrategyID:        "s1",
		PsychologyFactors: []string{"patient", "well-rested"},
		ExecutedRules:     []string{"r1", "r2"},
	}
	require.NoError(t, s.LogTrade(ctx, &trade))
	assert.NotEmpty(t, trade.ID, "LogTrade mints an ID")

	trades, err := s.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	require.Len(t, trades, 1)

	got := trades[0]
	assert.Equal(t, trade.ID, got.ID)
	assert.Equal(t, "MNQ", got.Instrument)
	assert.Equal(t, models.Long, got.Direction)
	assert.Equal(t, 120.0, got.PnL)
	assert.Equal(t, []string{"patient", "well-rested"}, got.PsychologyFactors)
	assert.Equal(t, []string{"r1", "r2"}, got.ExecutedRules)
	assert.Equal(t, "s1", got.StrategyID)
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, symbol := range []string{"MNQ", "ES", "MNQ"} {
		trade := models.Trade{
			Date: base.AddDate(0, 0, i), Instrument: symbol,
			Direction: models.Long, EntryPrice: 100, ExitPrice: 101,
			Size: 1, Outcome: models.Win, PnL: 1,
		}
		require.NoError(t, s.LogTrade(ctx, &trade))
	}

	mnq, err := s.GetTrades(ctx, TradeFilter{Instrument: "MNQ"})
	require.NoError(t, err)
	assert.Len(t, mnq, 2)

	windowed, err := s.GetTrades(ctx, TradeFilter{
		StartDate: base.AddDate(0, 0, 1),
		EndDate:   base.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, "ES", windowed[0].Instrument)

	limited, err := s.GetTrades(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetTradesChronologicalOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		trade := models.Trade{
			Date: d, Instrument: "ES", Direction: models.Long,
			EntryPrice: 100, ExitPrice: 101, Size: 1,
			Outcome: models.Win, PnL: 1,
		}
		require.NoError(t, s.LogTrade(ctx, &trade))
	}

	trades, err := s.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.True(t, trades[0].Date.Before(trades[1].Date))
	assert.True(t, trades[1].Date.Before(trades[2].Date))
}

func TestCustomInstrumentsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg := models.CustomInstrument{
		Symbol: "MYFUT", Name: "My Future", Category: models.Futures,
		Multiplier: 12.5, TickSize: 0.1, TickValue: 1.25,
		DisplayDecimals: 1, Currency: "USD",
	}
	require.NoError(t, s.SaveCustomInstrument(ctx, cfg))

	// Replacing the same symbol updates rather than duplicates.
	cfg.Multiplier = 25
	require.NoError(t, s.SaveCustomInstrument(ctx, cfg))

	got, err := s.GetCustomInstruments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 25.0, got[0].Multiplier)
	assert.Equal(t, models.Futures, got[0].Category)
}

func TestStrategiesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	strategy := models.Strategy{
		Name: "Pullback",
		Rules: []models.Rule{
			{Phase: models.PhaseBefore, Text: "Trend up on H1", Required: true},
			{Phase: models.PhaseDuring, Text: "Enter at the EMA", Required: false},
		},
	}
	require.NoError(t, s.SaveStrategy(ctx, &strategy))
	assert.NotEmpty(t, strategy.ID)

	got, err := s.GetStrategies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Rules, 2)
	assert.Equal(t, "Trend up on H1", got[0].Rules[0].Text)
	assert.True(t, got[0].Rules[0].Required)
	assert.False(t, got[0].Rules[1].Required)

	// Re-saving replaces the rule set.
	strategy.Rules = strategy.Rules[:1]
	require.NoError(t, s.SaveStrategy(ctx, &strategy))
	got, err = s.GetStrategies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Rules, 1)
}

func TestGetTradeByIDAndPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := models.Trade{
		Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Instrument: "ES",
		Direction: models.Short, EntryPrice: 5000, ExitPrice: 4990,
		Size: 1, Outcome: models.Win, PnL: 500,
	}
	require.NoError(t, s.LogTrade(ctx, &trade))

	got, err := s.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ID, got.ID)

	got, err = s.GetTrade(ctx, trade.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, trade.ID, got.ID)
}

func TestGetTradeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTrade(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTradeNotFound))
}

func TestGetStrategyByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	strategy := models.Strategy{
		Name:  "Breakout",
		Rules: []models.Rule{{Phase: models.PhaseBefore, Text: "Range identified", Required: true}},
	}
	require.NoError(t, s.SaveStrategy(ctx, &strategy))

	got, err := s.GetStrategy(ctx, strategy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Breakout", got.Name)
	require.Len(t, got.Rules, 1)

	_, err = s.GetStrategy(ctx, "nope")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrStrategyNotFound))
}

func TestGetTradesLimitReturnsNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		trade := models.Trade{
			Date: base.AddDate(0, 0, i), Instrument: "ES",
			Direction: models.Long, EntryPrice: 100, ExitPrice: 101,
			Size: 1, Outcome: models.Win, PnL: float64(i),
		}
		require.NoError(t, s.LogTrade(ctx, &trade))
	}

	trades, err := s.GetTrades(ctx, TradeFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// The two newest trades, still in chronological order.
	assert.Equal(t, 1.0, trades[0].PnL)
	assert.Equal(t, 2.0, trades[1].PnL)
	assert.True(t, trades[0].Date.Before(trades[1].Date))
}
