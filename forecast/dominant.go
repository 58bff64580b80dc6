package forecast

import (
	"fmt"

	"github.com/rustyeddy/hedger/market"
)

// Trend is the dominant outcome of a forecast.
type Trend struct {
	Label       string         `json:"label"`
	Outcome     market.Outcome `json:"outcome"`
	Rate        float64        `json:"rate"`
	Probability float64        `json:"probability"`
}

// SelectDominant picks the outcome with the highest probability. Ties go to
// the outcome listed first in market.Outcomes (Decrease, Increase, Stable).
func SelectDominant(r Result) Trend {
	best := market.Outcomes[0]
	for _, o := range market.Outcomes[1:] {
		if r.Probabilities.Of(o) > r.Probabilities.Of(best) {
			best = o
		}
	}

	p := r.Probabilities.Of(best)
	return Trend{
		Label:       TrendLabel(best, p),
		Outcome:     best,
		Rate:        r.Rates.Of(best),
		Probability: p,
	}
}

// TrendLabel formats "<outcome> expected (probability X.X%)".
func TrendLabel(o market.Outcome, p float64) string {
	return fmt.Sprintf("%s expected (probability %.1f%%)", o, p*100)
}
