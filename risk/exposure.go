package risk

import (
	"math"

	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/market"
)

// Scenario is the profit or loss of leaving a trade unhedged under one outcome,
// in quote currency.
type Scenario struct {
	Outcome     market.Outcome `json:"outcome"`
	Probability float64        `json:"probability"`
	PL          float64        `json:"pl"`
}

// Exposure summarizes what an unhedged trade stands to gain or lose.
type Exposure struct {
	Direction    market.Direction `json:"direction"`
	Notional     float64          `json:"notional"`
	Scenarios    []Scenario       `json:"scenarios"`
	ExpectedPL   float64          `json:"expected_pl"`
	WorstPL      float64          `json:"worst_pl"`
	WorstOutcome market.Outcome   `json:"worst_outcome"`
	BestPL       float64          `json:"best_pl"`
	BestOutcome  market.Outcome   `json:"best_outcome"`
}

// DirectionalPL turns a change in quote-currency value into P/L for the side
// of the trade. An exporter receives the foreign currency, so a higher value
// is a gain; an importer pays it, so a higher value is a loss.
func DirectionalPL(dir market.Direction, delta float64) float64 {
	if dir == market.Import {
		return -delta
	}
	return delta
}

// Evaluate walks the conversion table rows in order. When two scenarios have
// the same P/L the earlier (more likely) row is reported.
func Evaluate(dir market.Direction, notional float64, rows []forecast.Row) Exposure {
	e := Exposure{
		Direction: dir,
		Notional:  notional,
		Scenarios: make([]Scenario, 0, len(rows)),
		WorstPL:   math.Inf(1),
		BestPL:    math.Inf(-1),
	}

	for _, row := range rows {
		pl := DirectionalPL(dir, row.Delta)
		e.Scenarios = append(e.Scenarios, Scenario{
			Outcome:     row.Outcome,
			Probability: row.Probability,
			PL:          pl,
		})
		e.ExpectedPL += row.Probability * pl

		if pl < e.WorstPL {
			e.WorstPL = pl
			e.WorstOutcome = row.Outcome
		}
		if pl > e.BestPL {
			e.BestPL = pl
			e.BestOutcome = row.Outcome
		}
	}

	if len(rows) == 0 {
		e.WorstPL, e.BestPL = 0, 0
	}
	return e
}

// WorstPct is the worst-case loss as a fraction of notional.
func (e Exposure) WorstPct() float64 {
	if e.Notional <= 0 {
		return 0
	}
	return e.WorstPL / e.Notional
}

// AtRisk reports whether any scenario loses money.
func (e Exposure) AtRisk() bool {
	return e.WorstPL < 0
}
