package cmd

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrapeRejectsCorruptConfig(t *testing.T) {
	root := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", root)

	cfgDir := filepath.Join(root, "jobscout", "configs")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "Default.yaml"), []byte("output: [unclosed"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "jobscout", "current_config"), []byte("Default"), 0644))

	rootCmd.SetArgs([]string{"scrape", "--company-workers", "4"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestScrapeRunWritesReports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `
			<div class="job-card">
				<h3 class="job-title">Engineer</h3>
				<span class="job-location">Pune</span>
				<a href="/careers/11/engineer">View</a>
			</div>`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	roster := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(roster, []byte(
		"companies:\n  - name: Acme\n    base_url: "+srv.URL+"/jobs\n    max_pages: 1\n"), 0644))

	out := filepath.Join(dir, "out")
	rootCmd.SetArgs([]string{"scrape", "--ignore-config",
		"--companies-file", roster,
		"--output", out,
		"--formats", "csv",
		"--store", filepath.Join(dir, "jobs.db"),
		"--max-pages", "1",
	})
	require.NoError(t, rootCmd.Execute())

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err := os.Open(filepath.Join(out, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Acme", rows[1][0])
	require.Equal(t, "Engineer", rows[1][1])
	require.Equal(t, "Pune", rows[1][2])
}
