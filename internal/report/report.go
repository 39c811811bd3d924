package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jobscout-dev/jobscout/internal/jobs"
)

// Header is the column layout shared by the CSV and XLSX reports.
var Header = []string{"company", "title", "location", "url", "job_id", "timestamp", "source"}

// Writer appends scraped postings to a timestamped CSV file and keeps
// an XLSX sibling in sync. Appends from concurrent company workers
// are serialized internally.
type Writer struct {
	mu        sync.Mutex
	outputDir string
	csvPath   string
	xlsxPath  string
	formats   map[string]bool
	rows      []jobs.Job
}

// NewWriter creates the output directory and the report files for one
// run. formats selects any of "csv" and "xlsx".
func NewWriter(outputDir string, formats []string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output folder: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	w := &Writer{
		outputDir: outputDir,
		csvPath:   filepath.Join(outputDir, "all_jobs_"+stamp+".csv"),
		xlsxPath:  filepath.Join(outputDir, "all_jobs_"+stamp+".xlsx"),
		formats:   map[string]bool{},
	}
	for _, f := range formats {
		w.formats[f] = true
	}

	if w.formats["csv"] {
		if err := w.writeCSVHeader(); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *Writer) writeCSVHeader() error {
	f, err := os.Create(w.csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Append records one company's postings. The CSV grows in place; the
// XLSX is regenerated from all rows so far, mirroring how the reports
// stay consistent mid-run.
func (w *Writer) Append(list []jobs.Job) error {
	if len(list) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.rows = append(w.rows, list...)

	if w.formats["csv"] {
		if err := w.appendCSV(list); err != nil {
			return err
		}
	}
	if w.formats["xlsx"] {
		if err := w.writeXLSX(); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) appendCSV(list []jobs.Job) error {
	f, err := os.OpenFile(w.csvPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, j := range list {
		if err := cw.Write(row(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(j jobs.Job) []string {
	return []string{
		j.Company,
		j.Title,
		j.Location,
		j.URL,
		j.JobID,
		j.ScrapedAt.Format("2006-01-02 15:04:05"),
		j.Source,
	}
}

// Count returns how many rows have been written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.rows)
}

// Paths returns the report file paths for the formats in use.
func (w *Writer) Paths() []string {
	var out []string
	if w.formats["csv"] {
		out = append(out, w.csvPath)
	}
	if w.formats["xlsx"] {
		out = append(out, w.xlsxPath)
	}
	return out
}

// RemoveFiles deletes the run's report files. Used on interrupt when
// partial reports are not wanted.
func (w *Writer) RemoveFiles() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range []string{w.csvPath, w.xlsxPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Error cleaning up %s: %v\n", p, err)
		}
	}
	removeIfEmpty(w.outputDir)
}

func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
