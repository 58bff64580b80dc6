package forecast

import (
	"encoding/json"

	"github.com/rustyeddy/hedger/market"
)

// Distribution holds the probability of each outcome, indexed by
// market.Outcome. Every table row sums to 1.
type Distribution [market.NumOutcomes]float64

var distributions = map[Bucket]Distribution{
	//        Decrease Increase Stable
	Expired: {0.00, 0.00, 1.00},
	Short:   {0.40, 0.50, 0.10},
	Medium:  {0.55, 0.35, 0.10},
	Long:    {0.65, 0.25, 0.10},
}

// DistributionFor returns the fixed scenario probabilities for a horizon.
func DistributionFor(b Bucket) Distribution {
	d, ok := distributions[b]
	if !ok {
		return distributions[Expired]
	}
	return d
}

func (d Distribution) Of(o market.Outcome) float64 {
	return d[o]
}

func (d Distribution) Sum() float64 {
	var s float64
	for _, p := range d {
		s += p
	}
	return s
}

func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(byOutcome(d))
}

// Rates holds the predicted exchange rate for each outcome, indexed by
// market.Outcome.
type Rates [market.NumOutcomes]float64

func (r Rates) Of(o market.Outcome) float64 {
	return r[o]
}

func (r Rates) MarshalJSON() ([]byte, error) {
	return json.Marshal(byOutcome(r))
}

func byOutcome(v [market.NumOutcomes]float64) map[market.Outcome]float64 {
	m := make(map[market.Outcome]float64, market.NumOutcomes)
	for _, o := range market.Outcomes {
		m[o] = v[o]
	}
	return m
}
