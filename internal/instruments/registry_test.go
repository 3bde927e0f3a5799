package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func TestResolveKnownFutures(t *testing.T) {
	cfg := Resolve("MNQ", nil)
	assert.Equal(t, "MNQ", cfg.Symbol)
	assert.Equal(t, models.Futures, cfg.Category)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.Equal(t, 0.25, cfg.TickSize)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Resolve("mnq", nil), Resolve("MNQ", nil))
	assert.Equal(t, Resolve("eurusd", nil), Resolve("EURUSD", nil))
}

func TestResolveStripsSeparators(t *testing.T) {
	for _, symbol := range []string{"EUR_USD", "EUR/USD", "EUR-USD", " eurusd "} {
		cfg := Resolve(symbol, nil)
		assert.Equal(t, "EURUSD", cfg.Symbol, "symbol %q", symbol)
		assert.Equal(t, models.Forex, cfg.Category)
	}
}

func TestResolveCustomOverrideWins(t *testing.T) {
	custom := []models.CustomInstrument{{
		Symbol:          "MNQ",
		Name:            "My MNQ",
		Category:        models.Futures,
		Multiplier:      4,
		TickSize:        0.25,
		DisplayDecimals: 2,
		Currency:        "USD",
	}}
	cfg := Resolve("mnq", custom)
	assert.Equal(t, "My MNQ", cfg.Name)
	assert.Equal(t, 4.0, cfg.Multiplier)
}

func TestResolveUnknownSymbolFallsBack(t *testing.T) {
	cfg := Resolve("ZZZZ", nil)
	require.NotZero(t, cfg.Symbol)
	assert.Equal(t, models.Other, cfg.Category)
	assert.Equal(t, 1.0, cfg.Multiplier)
	assert.Equal(t, 2, cfg.DisplayDecimals)
}

func TestResolveInfersForexPair(t *testing.T) {
	cfg := Resolve("EURCHF", nil)
	assert.Equal(t, models.Forex, cfg.Category)
	assert.Equal(t, 0.0001, cfg.PipSize)
	assert.Equal(t, "CHF", cfg.Currency)

	jpy := Resolve("CADJPY", nil)
	assert.Equal(t, models.Forex, jpy.Category)
	assert.Equal(t, 0.01, jpy.PipSize)
	assert.Equal(t, 3, jpy.DisplayDecimals)
}

func TestResolveInfersCrypto(t *testing.T) {
	cfg := Resolve("DOGEUSDT", nil)
	assert.Equal(t, models.Crypto, cfg.Category)
	assert.Equal(t, 1.0, cfg.Multiplier)
}

func TestRegistryTickValuesConsistent(t *testing.T) {
	// TickValue should equal TickSize * Multiplier for linear contracts.
	for _, cfg := range All() {
		if cfg.Category != models.Futures || cfg.TickValue == 0 {
			continue
		}
		assert.InDelta(t, cfg.TickSize*cfg.Multiplier, cfg.TickValue, 1e-9,
			"tick value mismatch for %s", cfg.Symbol)
	}
}

func TestLookup(t *testing.T) {
	cfg, ok := Lookup("es")
	require.True(t, ok)
	assert.Equal(t, "ES", cfg.Symbol)

	// Lookup hits only the static registry, never inference.
	_, ok = Lookup("EURUSD ")
	assert.True(t, ok)
	_, ok = Lookup("ZZZZZZ")
	assert.False(t, ok)
}
