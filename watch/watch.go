// Package watch re-analyzes pending trades on a cron schedule so a change in
// the recommended strategy is noticed before the completion date.
package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/analysis"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/strategy"
)

type Analyzer interface {
	Analyze(ctx context.Context, trade analysis.Trade) (*analysis.Report, error)
}

// Result is the outcome of re-analyzing one watched trade.
type Result struct {
	Index    int
	Trade    analysis.Trade
	Report   *analysis.Report
	Previous strategy.Strategy
	Changed  bool
	Err      error
}

// Watcher manages the cron entry and remembers the last strategy per trade.
type Watcher struct {
	cron     *cron.Cron
	analyzer Analyzer
	journal  journal.Journal
	trades   []analysis.Trade
	logger   zerolog.Logger
	ctx      context.Context

	mu   sync.Mutex
	last map[int]strategy.Strategy
}

// New creates a Watcher. j may be nil when analyses should not be stored.
// Scheduled runs use ctx; cancel it to abort a run in progress.
func New(ctx context.Context, a Analyzer, j journal.Journal, trades []analysis.Trade, logger zerolog.Logger) *Watcher {
	cl := cronLogger{logger}
	return &Watcher{
		cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
		analyzer: a,
		journal:  j,
		trades:   trades,
		logger:   logger,
		ctx:      ctx,
		last:     make(map[int]strategy.Strategy),
	}
}

// Register adds the re-analysis job on a standard five-field schedule.
func (w *Watcher) Register(schedule string) error {
	if _, err := w.cron.AddFunc(schedule, func() { w.RunOnce(w.ctx) }); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

func (w *Watcher) Start() {
	w.cron.Start()
	w.logger.Info().Int("trades", len(w.trades)).Msg("watcher started")
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info().Msg("watcher stopped")
}

// RunOnce analyzes every watched trade now, in order.
func (w *Watcher) RunOnce(ctx context.Context) []Result {
	results := make([]Result, 0, len(w.trades))
	for i, t := range w.trades {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Index: i, Trade: t, Err: err})
			continue
		}
		results = append(results, w.check(ctx, i, t))
	}
	return results
}

func (w *Watcher) check(ctx context.Context, i int, t analysis.Trade) Result {
	res := Result{Index: i, Trade: t}
	log := w.logger.With().
		Int("trade", i).
		Str("direction", t.Direction.String()).
		Str("completion", t.CompletionDate.String()).
		Logger()

	report, err := w.analyzer.Analyze(ctx, t)
	if err != nil {
		res.Err = err
		if analysis.IsInvalid(err) {
			log.Warn().Err(err).Msg("watched trade is no longer analyzable")
		} else {
			log.Error().Err(err).Msg("watch analysis failed")
		}
		return res
	}
	res.Report = report

	if w.journal != nil {
		if err := w.journal.RecordAnalysis(ctx, journal.FromReport(report)); err != nil {
			log.Error().Err(err).Str("id", report.ID).Msg("failed to journal watch analysis")
		}
	}

	w.mu.Lock()
	prev, seen := w.last[i]
	w.last[i] = report.Strategy
	w.mu.Unlock()

	res.Previous = prev
	res.Changed = seen && prev != report.Strategy

	if l := report.Limits; l != nil && !l.WithinLimits {
		for _, v := range l.Violations {
			log.Warn().Str("id", report.ID).Str("code", v.Code).Msg(v.Msg)
		}
	}

	if res.Changed {
		log.Warn().
			Str("id", report.ID).
			Str("from", prev.String()).
			Str("to", report.Strategy.String()).
			Msg("recommended strategy changed")
	} else {
		log.Info().
			Str("id", report.ID).
			Str("strategy", report.Strategy.String()).
			Str("trend", report.Trend.Label).
			Msg("trade re-analyzed")
	}
	return res
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	zl zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.zl.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.zl.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
