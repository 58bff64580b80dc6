package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/market"
)

// Render writes a human-readable report in the given locale.
func Render(w io.Writer, r *Report, loc *locale.Locale) error {
	if loc == nil {
		loc = locale.English
	}
	meta, err := market.Lookup(r.Instrument)
	if err != nil {
		return err
	}
	h := loc.Headings()
	rate := func(x float64) string { return humanize.CommafWithDigits(x, meta.RateDecimals) }
	quote := func(x float64) string { return money(x) + " " + meta.QuoteCurrency }

	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", h.Result)
	fmt.Fprintf(&b, "%s: %s\n", h.Direction, loc.Direction(r.Trade.Direction))
	fmt.Fprintf(&b, "%s: %s\n", h.Currency, meta.BaseCurrency)
	fmt.Fprintf(&b, "%s: %s %s\n", h.Amount, money(r.Trade.Amount), meta.BaseCurrency)
	if !r.Trade.StartDate.IsZero() {
		fmt.Fprintf(&b, "%s: %s\n", h.StartDate, r.Trade.StartDate.Format(loc.DateLayout))
	}
	fmt.Fprintf(&b, "%s: %s\n", h.Completion, r.Trade.CompletionDate.Format(loc.DateLayout))
	fmt.Fprintf(&b, "%s (%s): %s\n", h.CurrentRate, meta.Pair(), rate(r.CurrentRate))

	fmt.Fprintf(&b, "\n-- %s (%s) --\n", h.Probability, r.Trade.CompletionDate.Format(loc.DateLayout))
	for _, o := range market.Outcomes {
		mark := ""
		if o == r.Trend.Outcome {
			mark = "  <"
		}
		fmt.Fprintf(&b, "  %s: %.1f%%%s\n", loc.Outcome(o), r.Forecast.Probabilities.Of(o)*100, mark)
	}
	fmt.Fprintf(&b, "%s: %s\n", h.Dominant, loc.Trend(r.Trend.Outcome, r.Trend.Probability))
	fmt.Fprintf(&b, "%s (%s): %s\n", h.DominantRate, loc.Outcome(r.Trend.Outcome), rate(r.Trend.Rate))

	fmt.Fprintf(&b, "\n-- %s --\n", h.Strategy)
	fmt.Fprintf(&b, "  %s\n", loc.Strategy(r.Strategy))
	fmt.Fprintf(&b, "  %s\n", loc.Rationale(r.Strategy, r.Trade.Direction))

	fmt.Fprintf(&b, "\n-- %s (%s) --\n", h.Scenarios, meta.QuoteCurrency)
	fmt.Fprintf(&b, "%s: %s %s = %s\n", h.CurrentValue, money(r.Trade.Amount), meta.BaseCurrency, quote(r.CurrentValue))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", h.Scenario, h.ProbabilityPct, h.PredictedRate, h.PredictedValue, h.Delta)
	for _, row := range r.Scenarios {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\t%s\t\n",
			loc.Outcome(row.Outcome), row.ProbabilityPct, rate(row.PredictedRate), money(row.PredictedValue), signed(row.Delta))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b.Reset()
	e := r.Exposure
	fmt.Fprintf(&b, "\n-- %s --\n", h.Exposure)
	fmt.Fprintf(&b, "  %s: %s %s\n", h.ExpectedPL, signed(e.ExpectedPL), meta.QuoteCurrency)
	fmt.Fprintf(&b, "  %s (%s): %s %s (%.2f%%)\n", h.WorstCase, loc.Outcome(e.WorstOutcome), signed(e.WorstPL), meta.QuoteCurrency, e.WorstPct()*100)
	fmt.Fprintf(&b, "  %s (%s): %s %s\n", h.BestCase, loc.Outcome(e.BestOutcome), signed(e.BestPL), meta.QuoteCurrency)
	if l := r.Limits; l != nil {
		for _, v := range l.Violations {
			fmt.Fprintf(&b, "  ! %s\n", v.Msg)
		}
		if l.WithinLimits {
			fmt.Fprintf(&b, "  %s %s %s, %s\n", h.WorstLoss, money(l.WorstLoss), l.Currency, h.WithinLimits)
		}
	}
	fmt.Fprintf(&b, "\n%s\n", loc.Disclaimer)
	_, err = io.WriteString(w, b.String())
	return err
}

// money rounds to whole units and adds thousands separators.
func money(x float64) string {
	r := math.Round(x)
	if r == 0 {
		return "0"
	}
	return humanize.Commaf(r)
}

// signed is money with an explicit sign for non-zero values.
func signed(x float64) string {
	if math.Round(x) > 0 {
		return "+" + money(x)
	}
	return money(x)
}
