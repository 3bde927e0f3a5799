// Package store provides the trade-record store backing the journal.
// The calculation and analysis packages never touch it directly; they
// consume the records it returns.
package store

import (
	"context"
	"time"

	"trade-journal/internal/models"
)

// TradeFilter narrows trade queries.
type TradeFilter struct {
	Instrument string
	StrategyID string
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
}

// TradeStore defines the persistence boundary for trade records,
// custom instrument overrides and playbook strategies.
type TradeStore interface {
	// Trades
	LogTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)

	// Custom instruments
	SaveCustomInstrument(ctx context.Context, cfg models.CustomInstrument) error
	GetCustomInstruments(ctx context.Context) ([]models.CustomInstrument, error)

	// Playbook
	SaveStrategy(ctx context.Context, strategy *models.Strategy) error
	GetStrategy(ctx context.Context, id string) (models.Strategy, error)
	GetStrategies(ctx context.Context) ([]models.Strategy, error)

	Close() error
}
