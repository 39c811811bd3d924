package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output         string   `yaml:"output"`
	CompanyWorkers int      `yaml:"company_workers"`
	MaxPages       int      `yaml:"max_pages"`
	KeepPartial    bool     `yaml:"keep_partial"`
	Debug          bool     `yaml:"debug"`
	Formats        []string `yaml:"formats"`

	CompaniesFile    string `yaml:"companies_file"`
	DefaultCompanies string `yaml:"default_companies"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`

	RequestTimeoutSecs int     `yaml:"request_timeout_secs"`
	RatePerHost        float64 `yaml:"rate_per_host"`

	StorePath string `yaml:"store_path"`
	NoStore   bool   `yaml:"no_store"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	CompanyWorkers   int
	MaxPages         int
	KeepPartial      bool
	Formats          []string
	CompaniesFile    string
	DefaultCompanies string
	Cookie           string
	CookieFile       string
	UserAgent        string
	StorePath        string
	NoStore          bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:             "output",
		CompanyWorkers:     2,
		MaxPages:           2,
		KeepPartial:        false,
		Debug:              false,
		Formats:            []string{"csv", "xlsx"},
		CompaniesFile:      "",
		DefaultCompanies:   "",
		Cookie:             "",
		CookieFile:         "",
		UserAgent:          "",
		RequestTimeoutSecs: 30,
		RatePerHost:        2,
		StorePath:          "",
		NoStore:            false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadMerged resolves the effective config: defaults, then the active
// profile file, then JOBSCOUT_* environment variables, then CLI flags.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		applyEnv(cfg)
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		applyEnv(cfg)
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `jobscout config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	applyEnv(cfg)
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.CompanyWorkers != 0 {
		c.CompanyWorkers = o.CompanyWorkers
	}
	if o.MaxPages != 0 {
		c.MaxPages = o.MaxPages
	}
	if o.KeepPartial {
		c.KeepPartial = true
	}
	if o.Debug {
		c.Debug = true
	}
	if len(o.Formats) > 0 {
		c.Formats = o.Formats
	}
	if o.CompaniesFile != "" {
		c.CompaniesFile = o.CompaniesFile
	}
	if o.DefaultCompanies != "" {
		c.DefaultCompanies = o.DefaultCompanies
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.StorePath != "" {
		c.StorePath = o.StorePath
	}
	if o.NoStore {
		c.NoStore = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "output"
	}
	if c.CompanyWorkers == 0 {
		c.CompanyWorkers = 2
	}
	if c.MaxPages == 0 {
		c.MaxPages = 2
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"csv", "xlsx"}
	}
	if c.RequestTimeoutSecs == 0 {
		c.RequestTimeoutSecs = 30
	}
	if c.RatePerHost == 0 {
		c.RatePerHost = 2
	}
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -company_workers: %d\n", c.CompanyWorkers)
	fmt.Printf(" -max_pages: %d\n", c.MaxPages)
	if len(c.Formats) > 0 {
		fmt.Printf(" -formats: %s\n", strings.Join(c.Formats, ", "))
	}
	if c.KeepPartial {
		fmt.Printf(" -keep_partial: %t\n", c.KeepPartial)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.CompaniesFile != "" {
		fmt.Printf(" -companies_file: %s\n", c.CompaniesFile)
	}
	if c.DefaultCompanies != "" {
		fmt.Printf(" -default_companies: %s\n", c.DefaultCompanies)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	fmt.Printf(" -request_timeout_secs: %d\n", c.RequestTimeoutSecs)
	fmt.Printf(" -rate_per_host: %.1f\n", c.RatePerHost)
	if c.StorePath != "" {
		fmt.Printf(" -store_path: %s\n", c.StorePath)
	}
	if c.NoStore {
		fmt.Printf(" -no_store: %t\n", c.NoStore)
	}
}
