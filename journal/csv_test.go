package journal

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	analysesPath := filepath.Join(dir, "analyses.csv")
	scenariosPath := filepath.Join(dir, "scenarios.csv")

	j, err := NewCSV(analysesPath, scenariosPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	analyses := readCSV(t, analysesPath)
	scenarios := readCSV(t, scenariosPath)

	require.Len(t, analyses, 1)
	require.Len(t, scenarios, 1)
	assert.Equal(t, analysisHeader, analyses[0])
	assert.Equal(t, []string{"analysis_id", "rank", "outcome", "probability", "predicted_rate", "predicted_value", "delta"}, scenarios[0])
}

func TestCSVJournalRecordAnalysis(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	analysesPath := filepath.Join(dir, "analyses.csv")
	scenariosPath := filepath.Join(dir, "scenarios.csv")

	j, err := NewCSV(analysesPath, scenariosPath)
	require.NoError(t, err)

	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordAnalysis(context.Background(), sampleRecord("A1", created)))
	require.NoError(t, j.Close())

	analyses := readCSV(t, analysesPath)
	require.Len(t, analyses, 2)
	row := analyses[1]
	assert.Equal(t, "A1", row[0])
	assert.Equal(t, "2026-10-16T09:00:00Z", row[1])
	assert.Equal(t, "export", row[3])
	assert.Equal(t, "100000.000000", row[4])
	assert.Equal(t, "90", row[8])
	assert.Equal(t, "Sell forward", row[13])

	scenarios := readCSV(t, scenariosPath)
	require.Len(t, scenarios, 4)
	assert.Equal(t, []string{"A1", "1", "decrease", "0.550000", "1312.410000", "131241000.000000", "-4059000.000000"}, scenarios[1])
	assert.Equal(t, "stable", scenarios[3][2])
}

func TestCSVJournalCanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "a.csv"), filepath.Join(dir, "s.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = j.RecordAnalysis(ctx, sampleRecord("A1", time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewCSV(filepath.Join(dir, "missing", "a.csv"), filepath.Join(dir, "s.csv"))
	assert.Error(t, err)
}

func TestCSVJournalAppendsAcrossRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	analysesPath := filepath.Join(dir, "analyses.csv")
	scenariosPath := filepath.Join(dir, "scenarios.csv")
	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	for _, id := range []string{"A1", "A2"} {
		j, err := NewCSV(analysesPath, scenariosPath)
		require.NoError(t, err)
		require.NoError(t, j.RecordAnalysis(context.Background(), sampleRecord(id, created)))
		require.NoError(t, j.Close())
	}

	analyses := readCSV(t, analysesPath)
	require.Len(t, analyses, 3)
	assert.Equal(t, analysisHeader, analyses[0])
	assert.Equal(t, "A1", analyses[1][0])
	assert.Equal(t, "A2", analyses[2][0])

	assert.Len(t, readCSV(t, scenariosPath), 7)
}
