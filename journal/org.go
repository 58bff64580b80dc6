package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatAnalysisOrg renders an AnalysisRecord as an Org-mode block suitable for
// pasting into a treasury diary. Structured facts go in the PROPERTIES drawer;
// the scenario table and the narrative headings follow.
func FormatAnalysisOrg(a AnalysisRecord) string {
	heading := fmt.Sprintf("** Analysis: %s %s (%s)", a.Instrument, a.Direction, shortID(a.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", a.ID))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", a.CreatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", a.Instrument))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", a.Direction))
	b.WriteString(fmt.Sprintf(":AMOUNT: %.2f\n", a.Amount))
	if a.StartDate != "" {
		b.WriteString(fmt.Sprintf(":START_DATE: %s\n", a.StartDate))
	}
	b.WriteString(fmt.Sprintf(":COMPLETION_DATE: %s\n", a.CompletionDate))
	b.WriteString(fmt.Sprintf(":CURRENT_RATE: %.4f\n", a.CurrentRate))
	b.WriteString(fmt.Sprintf(":HORIZON: %d days (%s)\n", a.Days, a.Bucket))
	b.WriteString(fmt.Sprintf(":DOMINANT: %s %.1f%%\n", a.Dominant, a.Probability*100))
	b.WriteString(fmt.Sprintf(":DOMINANT_RATE: %.4f\n", a.DominantRate))
	b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", a.Strategy))
	b.WriteString(fmt.Sprintf(":EXPECTED_PL: %.2f\n", a.ExpectedPL))
	b.WriteString(fmt.Sprintf(":WORST_PL: %.2f\n", a.WorstPL))
	b.WriteString(":END:\n")

	if len(a.Scenarios) > 0 {
		b.WriteString("\n| rank | outcome | prob % | rate | value | delta |\n")
		b.WriteString("|------+---------+--------+------+-------+-------|\n")
		for _, s := range a.Scenarios {
			b.WriteString(fmt.Sprintf("| %d | %s | %.1f | %.4f | %.2f | %.2f |\n",
				s.Rank, s.Outcome, s.Probability*100, s.PredictedRate, s.PredictedValue, s.Delta))
		}
	}

	b.WriteString("\n")
	b.WriteString("*** Decision\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatAnalysesOrg renders multiple analyses separated by blank lines.
func FormatAnalysesOrg(recs []AnalysisRecord) string {
	var b strings.Builder
	for i, a := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatAnalysisOrg(a))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
