package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(company string, n int) []jobs.Job {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	out := make([]jobs.Job, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, jobs.Job{
			Company:   company,
			Title:     "Engineer",
			Location:  "Pune",
			URL:       "https://careers.test/jobs/1",
			JobID:     "1",
			Source:    company,
			ScrapedAt: now,
		})
	}
	return out
}

func TestWriterCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, []string{"csv"})
	require.NoError(t, err)

	require.NoError(t, w.Append(sample("Acme", 2)))
	require.NoError(t, w.Append(sample("Beta", 1)))
	require.Equal(t, 3, w.Count())

	paths := w.Paths()
	require.Len(t, paths, 1)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, Header, rows[0])
	require.Equal(t, "Acme", rows[1][0])
	require.Equal(t, "2026-08-24 12:00:00", rows[1][5])
	require.Equal(t, "Beta", rows[3][0])
}

func TestWriterXLSX(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, []string{"csv", "xlsx"})
	require.NoError(t, err)

	require.NoError(t, w.Append(sample("Acme", 1)))

	paths := w.Paths()
	require.Len(t, paths, 2)

	f, err := excelize.OpenFile(paths[1])
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Jobs")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "company", rows[0][0])
	require.Equal(t, "Acme", rows[1][0])
}

func TestWriterAppendEmpty(t *testing.T) {
	w, err := NewWriter(t.TempDir(), []string{"csv"})
	require.NoError(t, err)
	require.NoError(t, w.Append(nil))
	require.Equal(t, 0, w.Count())
}

func TestWriterRemoveFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir, []string{"csv", "xlsx"})
	require.NoError(t, err)
	require.NoError(t, w.Append(sample("Acme", 1)))

	w.RemoveFiles()
	for _, p := range w.Paths() {
		_, err := os.Stat(p)
		require.True(t, os.IsNotExist(err), "expected %s to be gone", p)
	}
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}
