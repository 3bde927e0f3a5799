package models

// DisplayFormat selects how a calculation result is rendered.
type DisplayFormat string

const (
	FormatDollars    DisplayFormat = "dollars"
	FormatPoints     DisplayFormat = "points"
	FormatPips       DisplayFormat = "pips"
	FormatTicks      DisplayFormat = "ticks"
	FormatPercentage DisplayFormat = "percentage"
	FormatRMultiple  DisplayFormat = "rmultiple"
	FormatPrivacy    DisplayFormat = "privacy"
)

// Valid reports whether f is a known display format.
func (f DisplayFormat) Valid() bool {
	switch f {
	case FormatDollars, FormatPoints, FormatPips, FormatTicks,
		FormatPercentage, FormatRMultiple, FormatPrivacy:
		return true
	}
	return false
}

// PnLCalculationResult is the derived result of a single-trade P&L
// calculation. It is never persisted; callers recompute on demand.
type PnLCalculationResult struct {
	// Points is the direction-adjusted price delta: (exit-entry) for
	// longs, (entry-exit) for shorts.
	Points float64 `json:"points"`
	// Pips is Points expressed in pip units for forex instruments and
	// equals Points for everything else.
	Pips float64 `json:"pips"`
	// AdjustedPnL is the dollar P&L after contract normalization.
	AdjustedPnL float64 `json:"adjustedPnL"`
	// Percentage is Points relative to the entry price, in percent.
	Percentage float64 `json:"percentage"`
	// Valid is false when the inputs violated preconditions and the
	// result was zeroed instead of computed.
	Valid bool `json:"valid"`
}

// ExchangeRates maps an ISO currency code to units of that currency
// per one USD.
type ExchangeRates map[string]float64
