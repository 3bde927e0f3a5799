// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Display DisplayConfig `mapstructure:"display"`
	Rates   RatesConfig   `mapstructure:"rates"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// JournalConfig holds trade-store configuration.
type JournalConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// DisplayConfig holds the persisted user display preferences: the
// P&L display format and the selected currency.
type DisplayConfig struct {
	Format       string `mapstructure:"format"`
	Currency     string `mapstructure:"currency"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
}

// PnLFormat returns the configured display format, falling back to
// dollars when the configured value is not a known format.
func (d DisplayConfig) PnLFormat() models.DisplayFormat {
	f := models.DisplayFormat(d.Format)
	if !f.Valid() {
		return models.FormatDollars
	}
	return f
}

// RatesConfig holds exchange-rate fetching configuration.
type RatesConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the directory holding config and data files.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// Load reads configuration from the config file, environment and
// defaults, in that precedence order.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultConfigDir())
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRADE_JOURNAL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	dir := DefaultConfigDir()

	v.SetDefault("journal.database_path", filepath.Join(dir, "journal.db"))

	v.SetDefault("display.format", string(models.FormatDollars))
	v.SetDefault("display.currency", "USD")
	v.SetDefault("display.color_enabled", true)

	v.SetDefault("rates.endpoint", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("rates.refresh_interval", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(dir, "logs", "journal.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
}
