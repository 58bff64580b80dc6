package forecast

import (
	"math"
	"sort"

	"github.com/rustyeddy/hedger/market"
)

// Row is one scenario of the conversion table, valued in quote currency.
type Row struct {
	Outcome        market.Outcome `json:"outcome"`
	Probability    float64        `json:"probability"`
	ProbabilityPct float64        `json:"probability_pct"`
	PredictedRate  float64        `json:"predicted_rate"`
	PredictedValue float64        `json:"predicted_value"`
	Delta          float64        `json:"delta"`
}

// BuildConversionTable values amount under each scenario, most likely first.
// Scenarios with equal probability keep canonical order.
func BuildConversionTable(r Result, amount, currentRate float64) []Row {
	rows := make([]Row, 0, market.NumOutcomes)
	for _, o := range market.Outcomes {
		p := r.Probabilities.Of(o)
		rate := r.Rates.Of(o)
		rows = append(rows, Row{
			Outcome:        o,
			Probability:    p,
			ProbabilityPct: math.Round(p*1000) / 10,
			PredictedRate:  rate,
			PredictedValue: market.QuoteValue(amount, rate),
			Delta:          (rate - currentRate) * amount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Probability > rows[j].Probability
	})
	return rows
}
