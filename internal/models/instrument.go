package models

// Category groups instruments by contract semantics.
type Category string

const (
	Futures Category = "futures"
	Forex   Category = "forex"
	Crypto  Category = "crypto"
	Stock   Category = "stock"
	Other   Category = "other"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Futures, Forex, Crypto, Stock, Other:
		return true
	}
	return false
}

// InstrumentConfig holds the contract parameters needed to turn a raw
// price delta into dollars. Configs are immutable and keyed by
// uppercase symbol.
type InstrumentConfig struct {
	Symbol          string   `mapstructure:"symbol" json:"symbol"`
	Name            string   `mapstructure:"name" json:"name"`
	Category        Category `mapstructure:"category" json:"category"`
	Multiplier      float64  `mapstructure:"multiplier" json:"multiplier"`
	TickSize        float64  `mapstructure:"tick_size" json:"tickSize"`
	TickValue       float64  `mapstructure:"tick_value" json:"tickValue"`
	PipSize         float64  `mapstructure:"pip_size" json:"pipSize,omitempty"`
	DisplayDecimals int      `mapstructure:"display_decimals" json:"displayDecimals"`
	Currency        string   `mapstructure:"currency" json:"currency"`
}

// CustomInstrument is a user-supplied override for symbols missing from
// the static registry. Same shape, same invariants.
type CustomInstrument = InstrumentConfig
