// journal/journal.go
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/hedger/analysis"
)

// ErrNotFound is returned when an analysis ID is not in the journal.
var ErrNotFound = errors.New("analysis not found")

// AnalysisRecord is the stored summary of one analysis run.
type AnalysisRecord struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Instrument     string           `json:"instrument"`
	Direction      string           `json:"direction"`
	Amount         float64          `json:"amount"`
	StartDate      string           `json:"start_date,omitempty"`
	CompletionDate string           `json:"completion_date"`
	CurrentRate    float64          `json:"current_rate"`
	Days           int              `json:"days"`
	Bucket         string           `json:"bucket"`
	Dominant       string           `json:"dominant"`
	DominantRate   float64          `json:"dominant_rate"`
	Probability    float64          `json:"probability"`
	Strategy       string           `json:"strategy"`
	ExpectedPL     float64          `json:"expected_pl"`
	WorstPL        float64          `json:"worst_pl"`
	Scenarios      []ScenarioRecord `json:"scenarios,omitempty"`
}

// ScenarioRecord is one row of an analysis' conversion table. Rank 1 is the
// most likely scenario.
type ScenarioRecord struct {
	AnalysisID     string  `json:"-"`
	Rank           int     `json:"rank"`
	Outcome        string  `json:"outcome"`
	Probability    float64 `json:"probability"`
	PredictedRate  float64 `json:"predicted_rate"`
	PredictedValue float64 `json:"predicted_value"`
	Delta          float64 `json:"delta"`
}

type Journal interface {
	RecordAnalysis(ctx context.Context, rec AnalysisRecord) error
	Close() error
}

// Reader is implemented by journals that can be queried.
type Reader interface {
	GetAnalysis(ctx context.Context, id string) (AnalysisRecord, error)
	ListAnalysesBetween(ctx context.Context, start, end time.Time) ([]AnalysisRecord, error)
}

// FromReport flattens an analysis report into a journal record.
func FromReport(r *analysis.Report) AnalysisRecord {
	rec := AnalysisRecord{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt,
		Instrument:     r.Instrument,
		Direction:      text(r.Trade.Direction),
		Amount:         r.Trade.Amount,
		StartDate:      r.Trade.StartDate.String(),
		CompletionDate: r.Trade.CompletionDate.String(),
		CurrentRate:    r.CurrentRate,
		Days:           r.Forecast.Days,
		Bucket:         r.Forecast.Bucket.String(),
		Dominant:       text(r.Trend.Outcome),
		DominantRate:   r.Trend.Rate,
		Probability:    r.Trend.Probability,
		Strategy:       r.Strategy.String(),
		ExpectedPL:     r.Exposure.ExpectedPL,
		WorstPL:        r.Exposure.WorstPL,
		Scenarios:      make([]ScenarioRecord, 0, len(r.Scenarios)),
	}
	for i, row := range r.Scenarios {
		rec.Scenarios = append(rec.Scenarios, ScenarioRecord{
			AnalysisID:     r.ID,
			Rank:           i + 1,
			Outcome:        text(row.Outcome),
			Probability:    row.Probability,
			PredictedRate:  row.PredictedRate,
			PredictedValue: row.PredictedValue,
			Delta:          row.Delta,
		})
	}
	return rec
}

type textMarshaler interface {
	MarshalText() ([]byte, error)
	String() string
}

func text(v textMarshaler) string {
	b, err := v.MarshalText()
	if err != nil {
		return v.String()
	}
	return string(b)
}
