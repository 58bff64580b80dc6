package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/pkg/id"
	"github.com/rustyeddy/hedger/pricing"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/strategy"
)

// Report is the full result of analyzing one trade.
type Report struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Instrument   string            `json:"instrument"`
	Trade        Trade             `json:"trade"`
	Tick         pricing.Tick      `json:"tick"`
	CurrentRate  float64           `json:"current_rate"`
	CurrentValue float64           `json:"current_value"`
	Forecast     forecast.Result   `json:"forecast"`
	Trend        forecast.Trend    `json:"trend"`
	Strategy     strategy.Strategy `json:"strategy"`
	StrategyKind string            `json:"strategy_kind"`
	Rationale    string            `json:"rationale"`
	Scenarios    []forecast.Row    `json:"scenarios"`
	Exposure     risk.Exposure     `json:"exposure"`
	Limits       *risk.Decision    `json:"limits,omitempty"`
}

// Observer is told about every analysis attempt. metrics.Recorder
// implements it.
type Observer interface {
	ObserveAnalysis(r *Report, elapsed time.Duration)
	RecordError(kind string)
}

// Analyzer runs the outlook pipeline for submitted trades. It is safe for
// concurrent use if its rate source and random source are.
type Analyzer struct {
	engine     *forecast.Engine
	rates      pricing.TickSource
	instrument string
	now        func() time.Time
	logger     zerolog.Logger
	observer   Observer
	policy     *risk.Policy
}

type Option func(*Analyzer)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithInstrument(instrument string) Option {
	return func(a *Analyzer) { a.instrument = instrument }
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

func WithObserver(o Observer) Option {
	return func(a *Analyzer) { a.observer = o }
}

// WithPolicy checks every report's exposure against p.
func WithPolicy(p risk.Policy) Option {
	return func(a *Analyzer) { a.policy = &p }
}

func New(engine *forecast.Engine, rates pricing.TickSource, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:     engine,
		rates:      rates,
		instrument: market.DefaultInstrument,
		now:        time.Now,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Instrument() string {
	return a.instrument
}

// Today is the analyzer's notion of the current date.
func (a *Analyzer) Today() time.Time {
	return a.now()
}

// Rate returns the current quote from the configured source.
func (a *Analyzer) Rate(ctx context.Context) (pricing.Tick, error) {
	tick, _, err := pricing.CurrentRate(ctx, a.rates, a.instrument)
	return tick, err
}

// Analyze validates trade, reads the current rate and derives the outlook,
// recommendation, conversion table and exposure.
func (a *Analyzer) Analyze(ctx context.Context, trade Trade) (*Report, error) {
	start := a.now()
	log := a.logger.With().
		Str("direction", trade.Direction.String()).
		Float64("amount", trade.Amount).
		Str("completion", trade.CompletionDate.String()).
		Logger()

	if err := trade.Validate(start); err != nil {
		a.fail("validation")
		log.Debug().Err(err).Msg("trade rejected")
		return nil, err
	}

	tick, rate, err := pricing.CurrentRate(ctx, a.rates, a.instrument)
	if err != nil {
		a.fail("rate")
		log.Error().Err(err).Str("instrument", a.instrument).Msg("rate lookup failed")
		return nil, fmt.Errorf("analyze: %w", err)
	}

	r := a.evaluate(start, trade, tick, rate)

	if a.observer != nil {
		a.observer.ObserveAnalysis(r, a.now().Sub(start))
	}
	log.Info().
		Str("id", r.ID).
		Float64("rate", rate).
		Str("bucket", r.Forecast.Bucket.String()).
		Str("dominant", r.Trend.Outcome.String()).
		Str("strategy", r.Strategy.String()).
		Msg("trade analyzed")
	if r.Limits != nil && !r.Limits.WithinLimits {
		log.Warn().Str("id", r.ID).Int("violations", len(r.Limits.Violations)).Msg("exposure exceeds risk limits")
	}

	return r, nil
}

func (a *Analyzer) evaluate(today time.Time, trade Trade, tick pricing.Tick, rate float64) *Report {
	res := a.engine.Forecast(today, trade.CompletionDate.Time, rate)
	trend := forecast.SelectDominant(res)
	strat := strategy.Recommend(trend.Outcome, trade.Direction)
	rows := forecast.BuildConversionTable(res, trade.Amount, rate)
	current := market.QuoteValue(trade.Amount, rate)
	exposure := risk.Evaluate(trade.Direction, current, rows)

	var limits *risk.Decision
	if a.policy != nil {
		d := risk.Check(*a.policy, exposure, a.instrument, rate)
		limits = &d
	}

	return &Report{
		ID:           id.NewAt(today),
		CreatedAt:    today.UTC(),
		Instrument:   a.instrument,
		Trade:        trade,
		Tick:         tick,
		CurrentRate:  rate,
		CurrentValue: current,
		Forecast:     res,
		Trend:        trend,
		Strategy:     strat,
		StrategyKind: strat.Kind().String(),
		Rationale:    strategy.Rationale(strat, trade.Direction),
		Scenarios:    rows,
		Exposure:     exposure,
		Limits:       limits,
	}
}

func (a *Analyzer) fail(kind string) {
	if a.observer != nil {
		a.observer.RecordError(kind)
	}
}

// IsInvalid reports whether err came from trade validation.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidTrade)
}
