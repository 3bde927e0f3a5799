package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-journal/internal/instruments"
	"trade-journal/internal/models"
	"trade-journal/internal/pnl"
)

func mnqWin() (models.PnLCalculationResult, models.InstrumentConfig) {
	cfg := instruments.Resolve("MNQ", nil)
	return pnl.Calculate(cfg, models.Long, 18000, 18020, 3), cfg
}

func TestFormatDollars(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+$120.00", Format(result, models.FormatDollars, cfg, Options{}))

	loss := pnl.Calculate(cfg, models.Short, 18000, 18020, 3)
	assert.Equal(t, "-$120.00", Format(loss, models.FormatDollars, cfg, Options{}))
}

func TestFormatZeroNeverSigned(t *testing.T) {
	cfg := instruments.Resolve("MNQ", nil)
	flat := pnl.Calculate(cfg, models.Long, 18000, 18000, 3)

	assert.Equal(t, "$0.00", Format(flat, models.FormatDollars, cfg, Options{}))
	assert.Equal(t, "0.00 pts", Format(flat, models.FormatPoints, cfg, Options{}))
	assert.Equal(t, "0 ticks", Format(flat, models.FormatTicks, cfg, Options{}))
	assert.Equal(t, "0.00%", Format(flat, models.FormatPercentage, cfg, Options{}))
}

func TestFormatPoints(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+20.00 pts", Format(result, models.FormatPoints, cfg, Options{}))
}

func TestFormatPips(t *testing.T) {
	cfg := instruments.Resolve("EURUSD", nil)
	result := pnl.Calculate(cfg, models.Short, 1.0850, 1.0820, 10000)
	assert.Equal(t, "+30.0 pips", Format(result, models.FormatPips, cfg, Options{}))
}

func TestFormatTicks(t *testing.T) {
	result, cfg := mnqWin()
	// 20 points at 0.25/tick = 80 ticks.
	assert.Equal(t, "+80 ticks", Format(result, models.FormatTicks, cfg, Options{}))
}

func TestFormatTicksWithoutTickSizeDegrades(t *testing.T) {
	cfg := models.InstrumentConfig{Symbol: "XX", Category: models.Other, Multiplier: 1, DisplayDecimals: 2}
	result := pnl.Calculate(cfg, models.Long, 10, 12, 1)
	// Unknown tick size: show points under the ticks label.
	assert.Equal(t, "+2.00 ticks", Format(result, models.FormatTicks, cfg, Options{}))
}

func TestFormatPercentage(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+0.11%", Format(result, models.FormatPercentage, cfg, Options{}))
}

func TestFormatRMultiple(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+2.00R", Format(result, models.FormatRMultiple, cfg, Options{RiskAmount: 60}))
	assert.Equal(t, "N/A", Format(result, models.FormatRMultiple, cfg, Options{}))
	assert.Equal(t, "N/A", Format(result, models.FormatRMultiple, cfg, Options{RiskAmount: -5}))
}

func TestFormatPrivacy(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+•••", Format(result, models.FormatPrivacy, cfg, Options{}))

	loss := pnl.Calculate(cfg, models.Short, 18000, 18020, 3)
	assert.Equal(t, "-•••", Format(loss, models.FormatPrivacy, cfg, Options{}))

	flat := pnl.Calculate(cfg, models.Long, 18000, 18000, 3)
	assert.Equal(t, "•••", Format(flat, models.FormatPrivacy, cfg, Options{}))
}

func TestFormatDollarsConverted(t *testing.T) {
	result, cfg := mnqWin()
	rates := models.ExchangeRates{"EUR": 0.5}
	assert.Equal(t, "+€60.00", Format(result, models.FormatDollars, cfg, Options{Currency: "EUR", Rates: rates}))
}

func TestFormatUnknownCurrencyFallsBackToUSD(t *testing.T) {
	result, cfg := mnqWin()
	assert.Equal(t, "+$120.00", Format(result, models.FormatDollars, cfg, Options{Currency: "XXX"}))
}

func TestFormatUnknownFormatPanics(t *testing.T) {
	result, cfg := mnqWin()
	assert.Panics(t, func() {
		Format(result, models.DisplayFormat("bogus"), cfg, Options{})
	})
}
