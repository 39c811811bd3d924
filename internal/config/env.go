package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads a .env file from the working directory if there is
// one. Missing files are fine, broken ones are reported.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// applyEnv overlays JOBSCOUT_* environment variables on top of the
// file config. Flags still win over these.
func applyEnv(c *Config) {
	if v := os.Getenv("JOBSCOUT_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("JOBSCOUT_COOKIE"); v != "" {
		c.Cookie = v
	}
	if v := os.Getenv("JOBSCOUT_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("JOBSCOUT_STORE"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("JOBSCOUT_COMPANIES"); v != "" {
		c.CompaniesFile = v
	}
}
