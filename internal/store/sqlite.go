package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

const tradeColumns = `id, date, instrument, direction, entry_price, exit_price,
	size, stop_loss, take_profit, outcome, pnl, setup_name,
	strategy_id, psychology_factors, executed_rules`

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed trade store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", apperrors.ErrDatabaseError, dbPath, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to initialize schema: %v", apperrors.ErrDatabaseError, err)
	}
	return s, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		instrument TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		size REAL NOT NULL,
		stop_loss REAL,
		take_profit REAL,
		outcome TEXT NOT NULL,
		pnl REAL NOT NULL,
		setup_name TEXT,
		strategy_id TEXT,
		psychology_factors TEXT,
		executed_rules TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_instrument ON trades(instrument);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy_id);

	CREATE TABLE IF NOT EXISTS custom_instruments (
		symbol TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		multiplier REAL NOT NULL,
		tick_size REAL,
		tick_value REAL,
		pip_size REAL,
		display_decimals INTEGER NOT NULL,
		currency TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strategies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strategy_rules (
		id TEXT PRIMARY KEY,
		strategy_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		text TEXT NOT NULL,
		required INTEGER NOT NULL,
		position INTEGER NOT NULL,
		FOREIGN KEY (strategy_id) REFERENCES strategies(id)
	);
	CREATE INDEX IF NOT EXISTS idx_rules_strategy ON strategy_rules(strategy_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LogTrade inserts a trade record, minting an ID when none is set.
func (s *SQLiteStore) LogTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	factors, err := json.Marshal(trade.PsychologyFactors)
	if err != nil {
		return fmt.Errorf("failed to encode psychology factors: %w", err)
	}
	rules, err := json.Marshal(trade.ExecutedRules)
	if err != nil {
		return fmt.Errorf("failed to encode executed rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trades (
			id, date, instrument, direction, entry_price, exit_price,
			size, stop_loss, take_profit, outcome, pnl, setup_name,
			strategy_id, psychology_factors, executed_rules
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.Date, trade.Instrument, string(trade.Direction),
		trade.EntryPrice, trade.ExitPrice, trade.Size, trade.StopLoss,
		trade.TakeProfit, string(trade.Outcome), trade.PnL, trade.SetupName,
		trade.StrategyID, string(factors), string(rules),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// GetTrade returns one trade by ID. A unique ID prefix also matches, so
// the short IDs printed by the CLI work as lookup keys.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (models.Trade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE id = ? OR id LIKE ? LIMIT 2`,
		id, id+"%")
	if err != nil {
		return models.Trade{}, apperrors.Wrap(err, "failed to query trade")
	}
	defer rows.Close()

	var matches []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return models.Trade{}, err
		}
		matches = append(matches, t)
	}
	if err := rows.Err(); err != nil {
		return models.Trade{}, apperrors.Wrap(err, "failed to read trade")
	}

	switch len(matches) {
	case 0:
		return models.Trade{}, fmt.Errorf("trade %s: %w", id, apperrors.ErrTradeNotFound)
	case 1:
		return matches[0], nil
	}
	return models.Trade{}, fmt.Errorf("trade ID prefix %q is ambiguous", id)
}

// GetTrades returns trades matching the filter in chronological order.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE 1=1`
	var args []interface{}

	if filter.Instrument != "" {
		query += " AND instrument = ?"
		args = append(args, filter.Instrument)
	}
	if filter.StrategyID != "" {
		query += " AND strategy_id = ?"
		args = append(args, filter.StrategyID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date < ?"
		args = append(args, filter.EndDate)
	}
	// A limit selects the newest window; the scan below restores
	// chronological order.
	if filter.Limit > 0 {
		query += " ORDER BY date DESC LIMIT ?"
		args = append(args, filter.Limit)
	} else {
		query += " ORDER BY date ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Limit > 0 {
		for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
			trades[i], trades[j] = trades[j], trades[i]
		}
	}
	return trades, nil
}

func scanTrade(rows *sql.Rows) (models.Trade, error) {
	var t models.Trade
	var stopLoss, takeProfit sql.NullFloat64
	var setupName, strategyID, factors, rules sql.NullString
	if err := rows.Scan(
		&t.ID, &t.Date, &t.Instrument, &t.Direction, &t.EntryPrice,
		&t.ExitPrice, &t.Size, &stopLoss, &takeProfit, &t.Outcome,
		&t.PnL, &setupName, &strategyID, &factors, &rules,
	); err != nil {
		return models.Trade{}, fmt.Errorf("failed to scan trade: %w", err)
	}
	t.StopLoss = stopLoss.Float64
	t.TakeProfit = takeProfit.Float64
	t.SetupName = setupName.String
	t.StrategyID = strategyID.String
	if factors.String != "" {
		json.Unmarshal([]byte(factors.String), &t.PsychologyFactors)
	}
	if rules.String != "" {
		json.Unmarshal([]byte(rules.String), &t.ExecutedRules)
	}
	return t, nil
}

// SaveCustomInstrument inserts or replaces a user instrument override.
func (s *SQLiteStore) SaveCustomInstrument(ctx context.Context, cfg models.CustomInstrument) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO custom_instruments (
			symbol, name, category, multiplier, tick_size, tick_value,
			pip_size, display_decimals, currency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.Symbol, cfg.Name, string(cfg.Category), cfg.Multiplier,
		cfg.TickSize, cfg.TickValue, cfg.PipSize, cfg.DisplayDecimals,
		cfg.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to save custom instrument: %w", err)
	}
	return nil
}

// GetCustomInstruments returns all user instrument overrides.
func (s *SQLiteStore) GetCustomInstruments(ctx context.Context) ([]models.CustomInstrument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, category, multiplier, tick_size, tick_value,
		       pip_size, display_decimals, currency
		FROM custom_instruments ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom instruments: %w", err)
	}
	defer rows.Close()

	var out []models.CustomInstrument
	for rows.Next() {
		var c models.CustomInstrument
		var category string
		var tickSize, tickValue, pipSize sql.NullFloat64
		if err := rows.Scan(
			&c.Symbol, &c.Name, &category, &c.Multiplier, &tickSize,
			&tickValue, &pipSize, &c.DisplayDecimals, &c.Currency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan custom instrument: %w", err)
		}
		c.Category = models.Category(category)
		c.TickSize = tickSize.Float64
		c.TickValue = tickValue.Float64
		c.PipSize = pipSize.Float64
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveStrategy inserts or replaces a playbook strategy and its rules.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, strategy *models.Strategy) error {
	if strategy.ID == "" {
		strategy.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO strategies (id, name) VALUES (?, ?)`,
		strategy.ID, strategy.Name,
	); err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM strategy_rules WHERE strategy_id = ?`, strategy.ID,
	); err != nil {
		return fmt.Errorf("failed to clear strategy rules: %w", err)
	}

	for i := range strategy.Rules {
		rule := &strategy.Rules[i]
		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO strategy_rules (id, strategy_id, phase, text, required, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rule.ID, strategy.ID, string(rule.Phase), rule.Text, rule.Required, i,
		); err != nil {
			return fmt.Errorf("failed to save strategy rule: %w", err)
		}
	}

	return tx.Commit()
}

// GetStrategy returns one playbook strategy with its rules.
func (s *SQLiteStore) GetStrategy(ctx context.Context, id string) (models.Strategy, error) {
	var st models.Strategy
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM strategies WHERE id = ?`, id).Scan(&st.ID, &st.Name)
	if err == sql.ErrNoRows {
		return st, fmt.Errorf("strategy %s: %w", id, apperrors.ErrStrategyNotFound)
	}
	if err != nil {
		return st, apperrors.Wrap(err, "failed to query strategy")
	}

	st.Rules, err = s.loadRules(ctx, st.ID)
	return st, err
}

// GetStrategies returns all playbook strategies with their rules in
// playbook order.
func (s *SQLiteStore) GetStrategies(ctx context.Context) ([]models.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM strategies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var strategies []models.Strategy
	for rows.Next() {
		var st models.Strategy
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		strategies = append(strategies, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range strategies {
		strategies[i].Rules, err = s.loadRules(ctx, strategies[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return strategies, nil
}

func (s *SQLiteStore) loadRules(ctx context.Context, strategyID string) ([]models.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phase, text, required FROM strategy_rules
		WHERE strategy_id = ? ORDER BY position`, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy rules: %w", err)
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var r models.Rule
		var phase string
		if err := rows.Scan(&r.ID, &phase, &r.Text, &r.Required); err != nil {
			return nil, fmt.Errorf("failed to scan strategy rule: %w", err)
		}
		r.Phase = models.RulePhase(phase)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
