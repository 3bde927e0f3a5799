// Package instruments resolves trading symbols to contract parameters.
// Resolution never fails: unknown symbols fall back to a generic config
// so downstream calculation can always proceed.
package instruments

import (
	"strings"

	"trade-journal/internal/models"
)

// registry is the static symbol table. Multipliers are dollars per
// point per contract; forex entries carry the conventional pip size
// instead of a meaningful multiplier.
var registry = map[string]models.InstrumentConfig{
	// CME equity index futures
	"ES":  {Symbol: "ES", Name: "E-mini S&P 500", Category: models.Futures, Multiplier: 50, TickSize: 0.25, TickValue: 12.50, DisplayDecimals: 2, Currency: "USD"},
	"MES": {Symbol: "MES", Name: "Micro E-mini S&P 500", Category: models.Futures, Multiplier: 5, TickSize: 0.25, TickValue: 1.25, DisplayDecimals: 2, Currency: "USD"},
	"NQ":  {Symbol: "NQ", Name: "E-mini Nasdaq-100", Category: models.Futures, Multiplier: 20, TickSize: 0.25, TickValue: 5.00, DisplayDecimals: 2, Currency: "USD"},
	"MNQ": {Symbol: "MNQ", Name: "Micro E-mini Nasdaq-100", Category: models.Futures, Multiplier: 2, TickSize: 0.25, TickValue: 0.50, DisplayDecimals: 2, Currency: "USD"},
	"YM":  {Symbol: "YM", Name: "E-mini Dow", Category: models.Futures, Multiplier: 5, TickSize: 1, TickValue: 5.00, DisplayDecimals: 0, Currency: "USD"},
	"MYM": {Symbol: "MYM", Name: "Micro E-mini Dow", Category: models.Futures, Multiplier: 0.5, TickSize: 1, TickValue: 0.50, DisplayDecimals: 0, Currency: "USD"},
	"RTY": {Symbol: "RTY", Name: "E-mini Russell 2000", Category: models.Futures, Multiplier: 50, TickSize: 0.1, TickValue: 5.00, DisplayDecimals: 1, Currency: "USD"},
	"M2K": {Symbol: "M2K", Name: "Micro E-mini Russell 2000", Category: models.Futures, Multiplier: 5, TickSize: 0.1, TickValue: 0.50, DisplayDecimals: 1, Currency: "USD"},

	// Energy and metals
	"CL":  {Symbol: "CL", Name: "Crude Oil", Category: models.Futures, Multiplier: 1000, TickSize: 0.01, TickValue: 10.00, DisplayDecimals: 2, Currency: "USD"},
	"MCL": {Symbol: "MCL", Name: "Micro Crude Oil", Category: models.Futures, Multiplier: 100, TickSize: 0.01, TickValue: 1.00, DisplayDecimals: 2, Currency: "USD"},
	"NG":  {Symbol: "NG", Name: "Natural Gas", Category: models.Futures, Multiplier: 10000, TickSize: 0.001, TickValue: 10.00, DisplayDecimals: 3, Currency: "USD"},
	"GC":  {Symbol: "GC", Name: "Gold", Category: models.Futures, Multiplier: 100, TickSize: 0.1, TickValue: 10.00, DisplayDecimals: 1, Currency: "USD"},
	"MGC": {Symbol: "MGC", Name: "Micro Gold", Category: models.Futures, Multiplier: 10, TickSize: 0.1, TickValue: 1.00, DisplayDecimals: 1, Currency: "USD"},
	"SI":  {Symbol: "SI", Name: "Silver", Category: models.Futures, Multiplier: 5000, TickSize: 0.005, TickValue: 25.00, DisplayDecimals: 3, Currency: "USD"},
	"SIL": {Symbol: "SIL", Name: "Micro Silver", Category: models.Futures, Multiplier: 1000, TickSize: 0.005, TickValue: 5.00, DisplayDecimals: 3, Currency: "USD"},

	// Rates and FX futures
	"ZB": {Symbol: "ZB", Name: "30-Year T-Bond", Category: models.Futures, Multiplier: 1000, TickSize: 0.03125, TickValue: 31.25, DisplayDecimals: 5, Currency: "USD"},
	"ZN": {Symbol: "ZN", Name: "10-Year T-Note", Category: models.Futures, Multiplier: 1000, TickSize: 0.015625, TickValue: 15.625, DisplayDecimals: 6, Currency: "USD"},
	"6E": {Symbol: "6E", Name: "Euro FX", Category: models.Futures, Multiplier: 125000, TickSize: 0.00005, TickValue: 6.25, DisplayDecimals: 5, Currency: "USD"},
	"6B": {Symbol: "6B", Name: "British Pound", Category: models.Futures, Multiplier: 62500, TickSize: 0.0001, TickValue: 6.25, DisplayDecimals: 4, Currency: "USD"},
	"6J": {Symbol: "6J", Name: "Japanese Yen", Category: models.Futures, Multiplier: 12500000, TickSize: 0.0000005, TickValue: 6.25, DisplayDecimals: 7, Currency: "USD"},

	// Spot forex majors and common crosses
	"EURUSD": {Symbol: "EURUSD", Name: "Euro / US Dollar", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "USD"},
	"GBPUSD": {Symbol: "GBPUSD", Name: "British Pound / US Dollar", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "USD"},
	"AUDUSD": {Symbol: "AUDUSD", Name: "Australian Dollar / US Dollar", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "USD"},
	"NZDUSD": {Symbol: "NZDUSD", Name: "New Zealand Dollar / US Dollar", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "USD"},
	"USDJPY": {Symbol: "USDJPY", Name: "US Dollar / Japanese Yen", Category: models.Forex, Multiplier: 1, PipSize: 0.01, TickSize: 0.001, DisplayDecimals: 3, Currency: "JPY"},
	"USDCHF": {Symbol: "USDCHF", Name: "US Dollar / Swiss Franc", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "CHF"},
	"USDCAD": {Symbol: "USDCAD", Name: "US Dollar / Canadian Dollar", Category: models.Forex, Multiplier: 1, PipSize: 0.0001, TickSize: 0.00001, DisplayDecimals: 5, Currency: "CAD"},
	"EURJPY": {Symbol: "EURJPY", Name: "Euro / Japanese Yen", Category: models.Forex, Multiplier: 1, PipSize: 0.01, TickSize: 0.001, DisplayDecimals: 3, Currency: "JPY"},
	"GBPJPY": {Symbol: "GBPJPY", Name: "British Pound / Japanese Yen", Category: models.Forex, Multiplier: 1, PipSize: 0.01, TickSize: 0.001, DisplayDecimals: 3, Currency: "JPY"},

	// Crypto, size denominated in the asset itself
	"BTCUSD": {Symbol: "BTCUSD", Name: "Bitcoin", Category: models.Crypto, Multiplier: 1, TickSize: 0.01, DisplayDecimals: 2, Currency: "USD"},
	"ETHUSD": {Symbol: "ETHUSD", Name: "Ethereum", Category: models.Crypto, Multiplier: 1, TickSize: 0.01, DisplayDecimals: 2, Currency: "USD"},
	"SOLUSD": {Symbol: "SOLUSD", Name: "Solana", Category: models.Crypto, Multiplier: 1, TickSize: 0.01, DisplayDecimals: 2, Currency: "USD"},
}

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "NZD": true, "SEK": true, "NOK": true,
	"SGD": true, "HKD": true, "MXN": true, "ZAR": true,
}

var cryptoBases = map[string]bool{
	"BTC": true, "ETH": true, "SOL": true, "XRP": true, "ADA": true,
	"DOGE": true, "LTC": true, "DOT": true, "AVAX": true, "LINK": true,
}

// Normalize uppercases a symbol and strips the separators brokers
// commonly insert, so EUR_USD, EUR/USD and eurusd all resolve alike.
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.NewReplacer("/", "", "_", "", "-", "").Replace(s)
	return s
}

// Default returns the generic fallback config used when nothing else
// matches. It lets calculation proceed with neutral parameters.
func Default(symbol string) models.InstrumentConfig {
	return models.InstrumentConfig{
		Symbol:          Normalize(symbol),
		Name:            "Unknown Instrument",
		Category:        models.Other,
		Multiplier:      1,
		TickSize:        0.01,
		DisplayDecimals: 2,
		Currency:        "USD",
	}
}

// Resolve maps a symbol to its contract parameters. Custom instruments
// take precedence over the static registry; unknown symbols get a
// category-inferred default and, failing that, the generic fallback.
// Resolve never fails.
func Resolve(symbol string, custom []models.CustomInstrument) models.InstrumentConfig {
	key := Normalize(symbol)

	for _, c := range custom {
		if Normalize(c.Symbol) == key {
			return c
		}
	}

	if cfg, ok := registry[key]; ok {
		return cfg
	}

	if cfg, ok := inferConfig(key); ok {
		return cfg
	}

	return Default(symbol)
}

// Lookup reports whether a symbol exists in the static registry.
func Lookup(symbol string) (models.InstrumentConfig, bool) {
	cfg, ok := registry[Normalize(symbol)]
	return cfg, ok
}

// All returns the static registry contents sorted into a slice. The
// returned configs are copies; the registry itself is immutable.
func All() []models.InstrumentConfig {
	out := make([]models.InstrumentConfig, 0, len(registry))
	for _, cfg := range registry {
		out = append(out, cfg)
	}
	return out
}

// inferConfig guesses a config for symbols that look like forex pairs
// or crypto quoted against the dollar.
func inferConfig(key string) (models.InstrumentConfig, bool) {
	// Six letters splitting into two ISO currency codes reads as a
	// forex pair. JPY-quoted pairs use the 0.01 pip convention.
	if len(key) == 6 && currencyCodes[key[:3]] && currencyCodes[key[3:]] {
		cfg := models.InstrumentConfig{
			Symbol:          key,
			Name:            key[:3] + " / " + key[3:],
			Category:        models.Forex,
			Multiplier:      1,
			PipSize:         0.0001,
			TickSize:        0.00001,
			DisplayDecimals: 5,
			Currency:        key[3:],
		}
		if key[3:] == "JPY" {
			cfg.PipSize = 0.01
			cfg.TickSize = 0.001
			cfg.DisplayDecimals = 3
		}
		return cfg, true
	}

	for _, quote := range []string{"USDT", "USD"} {
		if base, ok := strings.CutSuffix(key, quote); ok && cryptoBases[base] {
			return models.InstrumentConfig{
				Symbol:          key,
				Name:            base,
				Category:        models.Crypto,
				Multiplier:      1,
				TickSize:        0.01,
				DisplayDecimals: 2,
				Currency:        "USD",
			}, true
		}
	}

	return models.InstrumentConfig{}, false
}
