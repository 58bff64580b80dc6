package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	j, err := NewSQLiteDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// NewSQLiteDB wraps an open database and makes sure the schema exists.
func NewSQLiteDB(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// RecordAnalysis stores the analysis and its scenarios in one transaction.
func (j *SQLite) RecordAnalysis(ctx context.Context, a AnalysisRecord) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses
		(id, created_at, instrument, direction, amount, start_date, completion_date, current_rate,
		 days, bucket, dominant, dominant_rate, probability, strategy, expected_pl, worst_pl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CreatedAt.UTC(), a.Instrument, a.Direction, a.Amount, a.StartDate, a.CompletionDate, a.CurrentRate,
		a.Days, a.Bucket, a.Dominant, a.DominantRate, a.Probability, a.Strategy, a.ExpectedPL, a.WorstPL,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", a.ID, err)
	}

	for _, s := range a.Scenarios {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scenarios
			(analysis_id, rank, outcome, probability, predicted_rate, predicted_value, delta)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, s.Rank, s.Outcome, s.Probability, s.PredictedRate, s.PredictedValue, s.Delta,
		)
		if err != nil {
			return fmt.Errorf("insert scenario %d of %s: %w", s.Rank, a.ID, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
