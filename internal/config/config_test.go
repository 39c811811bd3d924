package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMergedIgnoreConfigUsesDefaults(t *testing.T) {
	cfg, used, err := LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	require.Equal(t, "(ignored config)", used)
	require.Equal(t, "output", cfg.Output)
	require.Equal(t, 2, cfg.CompanyWorkers)
	require.Equal(t, 2, cfg.MaxPages)
	require.Equal(t, []string{"csv", "xlsx"}, cfg.Formats)
	require.Equal(t, 30, cfg.RequestTimeoutSecs)
}

func TestLoadMergedFlagsWin(t *testing.T) {
	cfg, _, err := LoadMerged(Options{
		IgnoreConfig:     true,
		Output:           "elsewhere",
		MaxPages:         5,
		Formats:          []string{"csv"},
		DefaultCompanies: "Amazon",
		NoStore:          true,
	})
	require.NoError(t, err)
	require.Equal(t, "elsewhere", cfg.Output)
	require.Equal(t, 5, cfg.MaxPages)
	require.Equal(t, []string{"csv"}, cfg.Formats)
	require.Equal(t, "Amazon", cfg.DefaultCompanies)
	require.True(t, cfg.NoStore)
}

func TestLoadMergedEnvOverlay(t *testing.T) {
	t.Setenv("JOBSCOUT_OUTPUT", "from-env")
	t.Setenv("JOBSCOUT_USER_AGENT", "env-agent")

	cfg, _, err := LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Output)
	require.Equal(t, "env-agent", cfg.UserAgent)

	// flags still beat the environment
	cfg, _, err = LoadMerged(Options{IgnoreConfig: true, Output: "from-flag"})
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.Output)
}

func TestSaveAndLoadYAMLRoundTrip(t *testing.T) {
	path := t.TempDir() + "/test.yaml"

	in := DefaultConfig()
	in.Output = "reports"
	in.MaxPages = 7
	require.NoError(t, SaveYAML(in, path))

	out, err := loadYAML(path)
	require.NoError(t, err)
	require.Equal(t, "reports", out.Output)
	require.Equal(t, 7, out.MaxPages)
}
