package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDotenvMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, LoadDotenv())
}

func TestLoadDotenvAppliesValues(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("JOBSCOUT_DOTENV_CHECK=loaded\n"), 0644))
	defer os.Unsetenv("JOBSCOUT_DOTENV_CHECK")

	require.NoError(t, LoadDotenv())
	require.Equal(t, "loaded", os.Getenv("JOBSCOUT_DOTENV_CHECK"))
}

func TestLoadDotenvReportsBrokenFile(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("not a parseable line\n"), 0644))
	require.Error(t, LoadDotenv())
}
