package forecast

import (
	"time"
)

// Result is one evaluation of the outlook model. It is a plain value: callers
// may pass it around and read it freely without affecting other holders.
type Result struct {
	Days          int          `json:"days"`
	Bucket        Bucket       `json:"bucket"`
	CurrentRate   float64      `json:"current_rate"`
	Probabilities Distribution `json:"probabilities"`
	Rates         Rates        `json:"predicted_rates"`
}

// Engine combines the horizon table with the rate perturbation generator.
type Engine struct {
	perturber Perturber
}

// NewEngine returns an engine drawing from r. A nil r uses NewSystemRand.
func NewEngine(bounds Bounds, r RandSource) *Engine {
	if r == nil {
		r = NewSystemRand()
	}
	return &Engine{perturber: Perturber{Bounds: bounds, Rand: r}}
}

// Forecast evaluates the outlook for a trade completing on completion, as seen
// from today, with the market currently at currentRate.
//
// Completion on or before today is not rejected: it lands in the Expired
// bucket, where Stable is certain and every rate equals currentRate.
func (e *Engine) Forecast(today, completion time.Time, currentRate float64) Result {
	days := DaysUntil(today, completion)
	return e.ForecastDays(days, currentRate)
}

// ForecastDays is Forecast for a precomputed day count.
func (e *Engine) ForecastDays(days int, currentRate float64) Result {
	b := BucketFor(days)
	return Result{
		Days:          days,
		Bucket:        b,
		CurrentRate:   currentRate,
		Probabilities: DistributionFor(b),
		Rates:         e.perturber.Rates(currentRate, b),
	}
}
