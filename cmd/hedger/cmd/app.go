package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/analysis"
	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/oanda"
	"github.com/rustyeddy/hedger/pricing"
)

// newRateSource returns the configured source of the current rate.
func newRateSource(c *config.Config) (pricing.TickSource, error) {
	switch c.Rate.Source {
	case "static":
		return pricing.NewTickStore(pricing.Fixed(c.Rate.Instrument, c.Rate.Static, time.Now())), nil
	case "oanda":
		base, err := oanda.BaseURL(c.Rate.OANDA.Env)
		if err != nil {
			return nil, err
		}
		token := c.Rate.OANDA.Token()
		if token == "" {
			return nil, fmt.Errorf("oanda: environment variable %s is empty", c.Rate.OANDA.TokenEnv)
		}
		return oanda.NewClient(base, token, c.Rate.OANDA.AccountID), nil
	default:
		return nil, fmt.Errorf("unknown rate source %q", c.Rate.Source)
	}
}

// newAnalyzer wires the configured rate source and forecast bounds. A nil
// rnd uses the system random source.
func newAnalyzer(c *config.Config, rnd forecast.RandSource, l zerolog.Logger, obs analysis.Observer) (*analysis.Analyzer, error) {
	rates, err := newRateSource(c)
	if err != nil {
		return nil, fmt.Errorf("rate source: %w", err)
	}

	opts := []analysis.Option{
		analysis.WithInstrument(c.Rate.Instrument),
		analysis.WithLogger(l),
		analysis.WithPolicy(c.Risk),
	}
	if obs != nil {
		opts = append(opts, analysis.WithObserver(obs))
	}
	return analysis.New(forecast.NewEngine(c.Forecast, rnd), rates, opts...), nil
}

// openJournal opens the configured journal. Both return values are nil for
// type "none"; the reader is only set for SQLite.
func openJournal(c *config.Config) (journal.Journal, journal.Reader, error) {
	switch c.Journal.Type {
	case "none", "":
		return nil, nil, nil
	case "csv":
		j, err := journal.NewCSV(c.Journal.AnalysesFile, c.Journal.ScenariosFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil, nil
	case "sqlite":
		j, err := journal.NewSQLite(c.Journal.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return j, j, nil
	default:
		return nil, nil, fmt.Errorf("unknown journal type %q", c.Journal.Type)
	}
}
