// Package pnl converts raw trade records into normalized P&L figures:
// points, pips, dollars and percentage. Every function here is pure and
// runs inside render paths, so malformed inputs zero the result instead
// of panicking.
package pnl

import (
	"math"

	"trade-journal/internal/instruments"
	"trade-journal/internal/models"
)

// Calculate turns (instrument, direction, entry, exit, size) into a
// PnLCalculationResult. Non-positive or non-finite prices and sizes
// yield a zeroed result with Valid=false.
func Calculate(cfg models.InstrumentConfig, direction models.Direction, entryPrice, exitPrice, size float64) models.PnLCalculationResult {
	if !validInputs(entryPrice, exitPrice, size) || !direction.Valid() {
		return models.PnLCalculationResult{}
	}

	rawDelta := exitPrice - entryPrice
	points := rawDelta
	if direction == models.Short {
		points = -rawDelta
	}

	pips := points
	if cfg.Category == models.Forex && cfg.PipSize > 0 {
		pips = points / cfg.PipSize
	}

	var dollars float64
	switch cfg.Category {
	case models.Forex:
		dollars = pips * pipValuePerUnit(cfg, exitPrice) * size
	case models.Crypto:
		// Size is denominated directly in the asset.
		dollars = points * size
	default:
		multiplier := cfg.Multiplier
		if multiplier <= 0 {
			multiplier = 1
		}
		dollars = points * size * multiplier
	}

	return models.PnLCalculationResult{
		Points:      points,
		Pips:        pips,
		AdjustedPnL: dollars,
		Percentage:  points / entryPrice * 100,
		Valid:       true,
	}
}

// CalculateSymbol resolves the symbol through the registry (honoring
// custom instrument overrides) and calculates.
func CalculateSymbol(symbol string, direction models.Direction, entryPrice, exitPrice, size float64, custom []models.CustomInstrument) models.PnLCalculationResult {
	cfg := instruments.Resolve(symbol, custom)
	return Calculate(cfg, direction, entryPrice, exitPrice, size)
}

// CalculateTrade calculates for a stored trade record.
func CalculateTrade(t models.Trade, custom []models.CustomInstrument) models.PnLCalculationResult {
	return CalculateSymbol(t.Instrument, t.Direction, t.EntryPrice, t.ExitPrice, t.Size, custom)
}

// Classify maps a calculation result to a trade outcome. Zero points is
// breakeven regardless of direction.
func Classify(result models.PnLCalculationResult) models.Outcome {
	switch {
	case result.Points == 0 || result.AdjustedPnL == 0:
		return models.Breakeven
	case result.AdjustedPnL > 0:
		return models.Win
	default:
		return models.Loss
	}
}

// pipValuePerUnit derives the dollar value of one pip for one unit of
// the base currency. For USD-quoted pairs a pip is worth its size in
// dollars; for pairs quoted in another currency the quote-currency pip
// is converted to dollars at the trade's exit rate.
func pipValuePerUnit(cfg models.InstrumentConfig, exitPrice float64) float64 {
	if cfg.PipSize <= 0 {
		return 0
	}
	if cfg.Currency == "" || cfg.Currency == "USD" {
		return cfg.PipSize
	}
	return cfg.PipSize / exitPrice
}

func validInputs(entry, exit, size float64) bool {
	for _, v := range []float64{entry, exit, size} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
