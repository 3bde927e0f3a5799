// Package models defines the core data structures shared across the
// journal: trade records, instrument configuration, calculation results
// and playbook types.
package models

import "time"

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Outcome classifies a closed trade.
type Outcome string

const (
	Win       Outcome = "win"
	Loss      Outcome = "loss"
	Breakeven Outcome = "breakeven"
)

// Trade represents a completed trade record. Trades are owned by the
// store; the calculation and analysis packages consume them read-only.
type Trade struct {
	ID                string    `csv:"id"`
	Date              time.Time `csv:"date"`
	Instrument        string    `csv:"instrument"`
	Direction         Direction `csv:"direction"`
	EntryPrice        float64   `csv:"entry_price"`
	ExitPrice         float64   `csv:"exit_price"`
	Size              float64   `csv:"size"`
	StopLoss          float64   `csv:"stop_loss,omitempty"`
	TakeProfit        float64   `csv:"take_profit,omitempty"`
	Outcome           Outcome   `csv:"outcome"`
	PnL               float64   `csv:"pnl"`
	SetupName         string    `csv:"setup_name,omitempty"`
	StrategyID        string    `csv:"strategy_id,omitempty"`
	PsychologyFactors []string  `csv:"-"`
	ExecutedRules     []string  `csv:"-"`
}

// RiskAmount returns the dollar amount risked between entry and stop,
// or 0 when no stop loss was recorded.
func (t Trade) RiskAmount(multiplier float64) float64 {
	if t.StopLoss <= 0 {
		return 0
	}
	risk := t.EntryPrice - t.StopLoss
	if t.Direction == Short {
		risk = t.StopLoss - t.EntryPrice
	}
	if risk <= 0 {
		return 0
	}
	return risk * t.Size * multiplier
}
