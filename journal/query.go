package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const analysisColumns = `id, created_at, instrument, direction, amount, start_date, completion_date, current_rate,
	days, bucket, dominant, dominant_rate, probability, strategy, expected_pl, worst_pl`

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (AnalysisRecord, error) {
	var rec AnalysisRecord
	err := s.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Instrument,
		&rec.Direction,
		&rec.Amount,
		&rec.StartDate,
		&rec.CompletionDate,
		&rec.CurrentRate,
		&rec.Days,
		&rec.Bucket,
		&rec.Dominant,
		&rec.DominantRate,
		&rec.Probability,
		&rec.Strategy,
		&rec.ExpectedPL,
		&rec.WorstPL,
	)
	return rec, err
}

// GetAnalysis returns a single analysis with its scenarios, most likely first.
func (j *SQLite) GetAnalysis(ctx context.Context, id string) (AnalysisRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	rec, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AnalysisRecord{}, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return AnalysisRecord{}, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT rank, outcome, probability, predicted_rate, predicted_value, delta
		FROM scenarios
		WHERE analysis_id = ?
		ORDER BY rank ASC`, id)
	if err != nil {
		return AnalysisRecord{}, err
	}
	defer rows.Close()

	for rows.Next() {
		s := ScenarioRecord{AnalysisID: id}
		if err := rows.Scan(&s.Rank, &s.Outcome, &s.Probability, &s.PredictedRate, &s.PredictedValue, &s.Delta); err != nil {
			return AnalysisRecord{}, err
		}
		rec.Scenarios = append(rec.Scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return AnalysisRecord{}, err
	}
	return rec, nil
}

// ListAnalysesBetween returns analyses created within [start, end), oldest
// first. Scenarios are not loaded.
func (j *SQLite) ListAnalysesBetween(ctx context.Context, start, end time.Time) ([]AnalysisRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
