package risk

import (
	"fmt"

	"github.com/rustyeddy/hedger/market"
)

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"message"`
}

// Decision is the outcome of checking an exposure against a Policy.
type Decision struct {
	WithinLimits bool        `json:"within_limits"`
	Violations   []Violation `json:"violations,omitempty"`

	Currency     string  `json:"currency"`
	WorstLoss    float64 `json:"worst_loss"`
	ExpectedLoss float64 `json:"expected_loss"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.WithinLimits = false
}

// Check compares the exposure's worst-case and expected losses with the
// policy limits. rate converts quote-currency losses into p.Currency.
func Check(p Policy, e Exposure, instrument string, rate float64) Decision {
	d := Decision{WithinLimits: true, Currency: p.Currency}

	worst, err := market.Convert(instrument, loss(e.WorstPL), rate, p.Currency)
	if err != nil {
		d.add("NO_CONVERSION", err.Error())
		return d
	}
	expected, err := market.Convert(instrument, loss(e.ExpectedPL), rate, p.Currency)
	if err != nil {
		d.add("NO_CONVERSION", err.Error())
		return d
	}
	d.WorstLoss = worst
	d.ExpectedLoss = expected

	if pct := lossPct(e.WorstPL, e.Notional); p.MaxWorstLossPct > 0 && pct > p.MaxWorstLossPct {
		d.add("WORST_LOSS_LIMIT",
			fmt.Sprintf("worst-case loss %.2f%% (%s) exceeds max %.2f%%",
				100*pct, e.WorstOutcome, 100*p.MaxWorstLossPct))
	}
	if pct := lossPct(e.ExpectedPL, e.Notional); p.MaxExpectedLossPct > 0 && pct > p.MaxExpectedLossPct {
		d.add("EXPECTED_LOSS_LIMIT",
			fmt.Sprintf("expected loss %.2f%% exceeds max %.2f%%",
				100*pct, 100*p.MaxExpectedLossPct))
	}

	return d
}
