package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/analysis"
	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/logging"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/oanda"
	"github.com/rustyeddy/hedger/risk"
	"gopkg.in/yaml.v3"
)

// Config represents the complete hedger configuration
type Config struct {
	Locale   string          `json:"locale" yaml:"locale" default:"en"`
	Rate     RateConfig      `json:"rate" yaml:"rate"`
	Forecast forecast.Bounds `json:"forecast" yaml:"forecast"`
	Risk     risk.Policy     `json:"risk" yaml:"risk"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
	Server   ServerConfig    `json:"server" yaml:"server"`
	Log      logging.Config  `json:"log" yaml:"log"`
	Watch    WatchConfig     `json:"watch" yaml:"watch"`
}

// RateConfig selects where the current exchange rate comes from
type RateConfig struct {
	Instrument string      `json:"instrument" yaml:"instrument" default:"USD_KRW"`
	Source     string      `json:"source" yaml:"source" default:"static"` // "static" or "oanda"
	Static     float64     `json:"static" yaml:"static" default:"1353"`
	OANDA      OANDAConfig `json:"oanda" yaml:"oanda"`
}

// OANDAConfig contains the REST pricing credentials. The token itself is
// read from the environment variable named by TokenEnv.
type OANDAConfig struct {
	Env       string `json:"env" yaml:"env" default:"practice"` // "practice" or "live"
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	TokenEnv  string `json:"token_env" yaml:"token_env" default:"OANDA_TOKEN"`
}

// Token returns the API token from the environment.
func (o OANDAConfig) Token() string {
	return os.Getenv(o.TokenEnv)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type" default:"sqlite"` // "csv", "sqlite" or "none"
	AnalysesFile  string `json:"analyses_file,omitempty" yaml:"analyses_file,omitempty" default:"./analyses.csv"`
	ScenariosFile string `json:"scenarios_file,omitempty" yaml:"scenarios_file,omitempty" default:"./scenarios.csv"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty" default:"./hedger.db"`
}

// ServerConfig contains HTTP API parameters
type ServerConfig struct {
	Addr            string `json:"addr" yaml:"addr" default:":8080"`
	ShutdownTimeout string `json:"shutdown_timeout" yaml:"shutdown_timeout" default:"10s"` // e.g. "10s", "1m"
}

// ParseShutdownTimeout converts the shutdown timeout string to time.Duration
func (s ServerConfig) ParseShutdownTimeout() (time.Duration, error) {
	if s.ShutdownTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.ShutdownTimeout)
}

// WatchConfig lists pending trades to re-analyze on a cron schedule
type WatchConfig struct {
	Schedule string           `json:"schedule" yaml:"schedule" default:"0 9 * * 1-5"`
	Trades   []analysis.Trade `json:"trades,omitempty" yaml:"trades,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML), fills in
// defaults for anything left unset and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = &Config{}
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := locale.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}

	if c.Rate.Instrument == "" {
		return fmt.Errorf("rate.instrument is required")
	}
	if _, err := market.Lookup(c.Rate.Instrument); err != nil {
		return fmt.Errorf("unknown instrument: %s", c.Rate.Instrument)
	}
	switch c.Rate.Source {
	case "static":
		if c.Rate.Static <= 0 {
			return fmt.Errorf("rate.static must be positive")
		}
	case "oanda":
		if c.Rate.OANDA.AccountID == "" {
			return fmt.Errorf("rate.oanda.account_id required for oanda source")
		}
		if c.Rate.OANDA.TokenEnv == "" {
			return fmt.Errorf("rate.oanda.token_env required for oanda source")
		}
		if _, err := oanda.BaseURL(c.Rate.OANDA.Env); err != nil {
			return fmt.Errorf("rate.oanda.env: %w", err)
		}
	default:
		return fmt.Errorf("rate.source must be 'static' or 'oanda'")
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	meta, _ := market.Lookup(c.Rate.Instrument)
	if c.Risk.Currency != meta.BaseCurrency && c.Risk.Currency != meta.QuoteCurrency {
		return fmt.Errorf("risk.currency must be %s or %s", meta.BaseCurrency, meta.QuoteCurrency)
	}
	if c.Risk.MaxWorstLossPct < 0 || c.Risk.MaxWorstLossPct > 1 {
		return fmt.Errorf("risk.max_worst_loss_pct must be between 0 and 1")
	}
	if c.Risk.MaxExpectedLossPct < 0 || c.Risk.MaxExpectedLossPct > 1 {
		return fmt.Errorf("risk.max_expected_loss_pct must be between 0 and 1")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.AnalysesFile == "" || c.Journal.ScenariosFile == "" {
			return fmt.Errorf("journal analyses_file and scenarios_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if d, err := c.Server.ParseShutdownTimeout(); err != nil || d < 0 {
		return fmt.Errorf("server.shutdown_timeout must be a non-negative duration")
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if len(c.Watch.Trades) > 0 {
		if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
			return fmt.Errorf("watch.schedule: %w", err)
		}
	}
	for i, t := range c.Watch.Trades {
		if t.CompletionDate.IsZero() {
			return fmt.Errorf("watch.trades[%d].completion_date is required", i)
		}
		if t.Amount <= 0 {
			return fmt.Errorf("watch.trades[%d].amount must be positive", i)
		}
		if !t.Direction.Valid() {
			return fmt.Errorf("watch.trades[%d].direction must be export or import", i)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	cfg := &Config{}
	defaults.MustSet(cfg)
	return cfg
}
