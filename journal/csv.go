// journal/csv.go
package journal

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	analysisHeader = []string{"id", "created_at", "instrument", "direction", "amount", "start_date", "completion_date",
		"current_rate", "days", "bucket", "dominant", "dominant_rate", "probability", "strategy", "expected_pl", "worst_pl"}
	scenarioHeader = []string{"analysis_id", "rank", "outcome", "probability", "predicted_rate", "predicted_value", "delta"}
)

type CSVJournal struct {
	analyses  *csv.Writer
	scenarios *csv.Writer
	af, sf    *os.File
}

// NewCSV opens (or creates) the two CSV files for appending. Headers are
// written only to empty files, so a journal accumulates across runs.
func NewCSV(analysesPath, scenariosPath string) (*CSVJournal, error) {
	af, err := openAppend(analysesPath)
	if err != nil {
		return nil, err
	}
	sf, err := openAppend(scenariosPath)
	if err != nil {
		_ = af.Close()
		return nil, err
	}

	j := &CSVJournal{
		analyses:  csv.NewWriter(af),
		scenarios: csv.NewWriter(sf),
		af:        af,
		sf:        sf,
	}
	if err := j.header(af, j.analyses, analysisHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if err := j.header(sf, j.scenarios, scenarioHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func (j *CSVJournal) header(f *os.File, w *csv.Writer, row []string) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() > 0 {
		return nil
	}
	return j.write(w, row)
}

func (j *CSVJournal) RecordAnalysis(ctx context.Context, a AnalysisRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := j.write(j.analyses, []string{
		a.ID,
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.Instrument,
		a.Direction,
		f(a.Amount),
		a.StartDate,
		a.CompletionDate,
		f(a.CurrentRate),
		strconv.Itoa(a.Days),
		a.Bucket,
		a.Dominant,
		f(a.DominantRate),
		f(a.Probability),
		a.Strategy,
		f(a.ExpectedPL),
		f(a.WorstPL),
	})
	if err != nil {
		return err
	}

	for _, s := range a.Scenarios {
		err := j.write(j.scenarios, []string{
			a.ID,
			strconv.Itoa(s.Rank),
			s.Outcome,
			f(s.Probability),
			f(s.PredictedRate),
			f(s.PredictedValue),
			f(s.Delta),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (j *CSVJournal) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	j.analyses.Flush()
	if err := j.analyses.Error(); err != nil {
		return err
	}
	j.scenarios.Flush()
	if err := j.scenarios.Error(); err != nil {
		return err
	}

	if err := j.af.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
