package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalysisWithScenarios(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ctx := context.Background()
	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	want := sampleRecord("A1", created)
	require.NoError(t, j.RecordAnalysis(ctx, want))

	got, err := j.GetAnalysis(ctx, "A1")
	require.NoError(t, err)

	assert.True(t, got.CreatedAt.Equal(created))
	got.CreatedAt = want.CreatedAt
	assert.Equal(t, want, got)

	require.Len(t, got.Scenarios, 3)
	assert.Equal(t, 1, got.Scenarios[0].Rank)
	assert.Equal(t, "decrease", got.Scenarios[0].Outcome)
}

func TestGetAnalysisNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetAnalysis(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestListAnalysesBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ctx := context.Background()
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordAnalysis(ctx, sampleRecord("before", day.Add(-time.Minute))))
	require.NoError(t, j.RecordAnalysis(ctx, sampleRecord("late", day.Add(20*time.Hour))))
	require.NoError(t, j.RecordAnalysis(ctx, sampleRecord("early", day.Add(9*time.Hour))))
	require.NoError(t, j.RecordAnalysis(ctx, sampleRecord("after", day.Add(24*time.Hour))))

	got, err := j.ListAnalysesBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
	assert.Empty(t, got[0].Scenarios)
}

func TestListAnalysesBetweenEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	got, err := j.ListAnalysesBetween(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetAnalysisScenarioQueryError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	j, err := NewSQLiteDB(db)
	require.NoError(t, err)

	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "instrument", "direction", "amount", "start_date", "completion_date", "current_rate",
		"days", "bucket", "dominant", "dominant_rate", "probability", "strategy", "expected_pl", "worst_pl",
	}).AddRow("A1", created, "USD_KRW", "import", 5000.0, "", "2026-11-01", 1353.0,
		16, "1-30", "increase", 1400.0, 0.5, "Buy forward", 10.0, -20.0)

	mock.ExpectQuery("FROM analyses WHERE id").WithArgs("A1").WillReturnRows(rows)
	mock.ExpectQuery("FROM scenarios").WithArgs("A1").WillReturnError(errors.New("locked"))

	_, err = j.GetAnalysis(context.Background(), "A1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}
