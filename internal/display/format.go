// Package display renders P&L calculation results as strings in the
// user's preferred format. The formatter is pure: currency conversion
// uses a rates snapshot supplied by the caller and performs no network
// or cache access.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trade-journal/internal/currency"
	"trade-journal/internal/models"
)

// Options modifies how a result is rendered.
type Options struct {
	// RiskAmount is the dollars risked on the trade, required for the
	// R-multiple format. Zero renders the "N/A" sentinel.
	RiskAmount float64
	// Currency is the target display currency for dollar amounts.
	// Empty or "USD" leaves the amount untouched.
	Currency string
	// Rates is the snapshot used for conversion. Nil rates fall back
	// to USD display.
	Rates models.ExchangeRates
}

// currencySymbols covers the closed set of supported currencies.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF ",
}

// Format renders a calculation result in the requested display format.
// Non-zero values carry a sign prefix; zero never does. An unknown
// format is a programmer error and panics.
func Format(result models.PnLCalculationResult, format models.DisplayFormat, cfg models.InstrumentConfig, opts Options) string {
	switch format {
	case models.FormatDollars:
		return formatDollars(result.AdjustedPnL, opts)
	case models.FormatPoints:
		return signed(result.Points, cfg.DisplayDecimals) + " pts"
	case models.FormatPips:
		return signed(result.Pips, 1) + " pips"
	case models.FormatTicks:
		if cfg.TickSize <= 0 {
			// Tick size unknown: show points under the ticks label
			// rather than failing the render.
			return signed(result.Points, cfg.DisplayDecimals) + " ticks"
		}
		return signed(result.Points/cfg.TickSize, 0) + " ticks"
	case models.FormatPercentage:
		return signed(result.Percentage, 2) + "%"
	case models.FormatRMultiple:
		if opts.RiskAmount <= 0 {
			return "N/A"
		}
		return signed(result.AdjustedPnL/opts.RiskAmount, 2) + "R"
	case models.FormatPrivacy:
		switch {
		case result.AdjustedPnL > 0:
			return "+•••"
		case result.AdjustedPnL < 0:
			return "-•••"
		default:
			return "•••"
		}
	}
	panic(fmt.Sprintf("display: unknown format %q", format))
}

// formatDollars renders a dollar amount, converting to the target
// currency first when one is configured.
func formatDollars(amountUSD float64, opts Options) string {
	code := opts.Currency
	if code == "" {
		code = "USD"
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		code, symbol = "USD", "$"
	}

	amount := currency.Convert(amountUSD, code, opts.Rates)
	sign, magnitude := signParts(amount, 2)
	return sign + symbol + magnitude
}

// signed formats a value with a sign prefix for non-zero amounts.
func signed(value float64, decimals int) string {
	sign, magnitude := signParts(value, decimals)
	return sign + magnitude
}

// signParts splits a value into sign prefix and formatted magnitude.
// A value that rounds to zero at the requested precision gets no sign.
func signParts(value float64, decimals int) (string, string) {
	magnitude := strconv.FormatFloat(math.Abs(value), 'f', decimals, 64)
	if value == 0 || strings.Trim(magnitude, "0.") == "" {
		return "", magnitude
	}
	if value > 0 {
		return "+", magnitude
	}
	return "-", magnitude
}
