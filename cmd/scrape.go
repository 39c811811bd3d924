package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jobscout-dev/jobscout/internal/config"
	"github.com/jobscout-dev/jobscout/internal/extract"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/report"
	"github.com/jobscout-dev/jobscout/internal/store"
	"github.com/jobscout-dev/jobscout/internal/ui"
	"github.com/jobscout-dev/jobscout/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagCompany       string
	flagCompaniesFile string

	// runtime
	flagOutput         string
	flagMaxPages       int
	flagCompanyWorkers int
	flagFormats        string
	flagKeepPartial    bool
	flagDryRun         bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string

	// store
	flagStorePath string
	flagNoStore   bool
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape job postings and produce CSV/XLSX reports. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runScrape,
	}

	// selection
	scrapeCmd.Flags().StringVar(&flagCompany, "company", "", "scrape specific companies (e.g. \"Amazon,Google\"); empty scrapes the whole roster")
	scrapeCmd.Flags().StringVar(&flagCompaniesFile, "companies-file", "", "path to a YAML roster replacing the built-in company list")

	// runtime
	scrapeCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for report files")
	scrapeCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "pages to scrape per company")
	scrapeCmd.Flags().IntVar(&flagCompanyWorkers, "company-workers", 2, "parallel company scrapes")
	scrapeCmd.Flags().StringVar(&flagFormats, "formats", "", "report formats (e.g. \"csv,xlsx\")")
	scrapeCmd.Flags().BoolVar(&flagKeepPartial, "keep-partial", false, "keep partial report files on interrupt")
	scrapeCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be scraped, don’t scrape")

	// headers/auth
	scrapeCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	scrapeCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	scrapeCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	// store
	scrapeCmd.Flags().StringVar(&flagStorePath, "store", "", "path to the seen-jobs database")
	scrapeCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "skip the seen-jobs database entirely")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Output:           flagOutput,
		MaxPages:         flagMaxPages,
		KeepPartial:      flagKeepPartial,
		Formats:          splitList(flagFormats),
		CompaniesFile:    flagCompaniesFile,
		DefaultCompanies: flagCompany,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		StorePath:        flagStorePath,
		NoStore:          flagNoStore,
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("company-workers") {
		cfg.CompanyWorkers = flagCompanyWorkers
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	roster, err := config.LoadRoster(cfg.CompaniesFile)
	if err != nil {
		return err
	}

	selected, err := roster.Select(cfg.DefaultCompanies)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no companies selected")
	}

	fmt.Printf("Scraping %d companies.\n\n", len(selected))

	if flagDryRun {
		fmt.Printf("Dry-run: %d companies selected.\n\n", len(selected))
		for i, c := range selected {
			u, err := c.ResolvedURL()
			if err != nil {
				return err
			}
			name := c.Extractor
			if name == "" {
				name = "heuristic"
			}
			fmt.Printf("%3d) %s  [%s]\n    %s\n", i+1, c.Name, name, u)
		}
		return nil
	}

	client, err := fetch.NewClient(fetch.ClientOptions{
		Timeout:     time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		UserAgent:   cfg.UserAgent,
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		RatePerHost: cfg.RatePerHost,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(cfg.Output, cfg.Formats)
	if err != nil {
		return err
	}

	var seen *store.Store
	if !cfg.NoStore {
		seen, err = store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer seen.Close()
		logSvc.Debugf("seen-jobs store: %s\n", seen.Path())
	}

	util.SetupInterruptHandler(func() {
		if !cfg.KeepPartial {
			writer.RemoveFiles()
		}
	})

	ctx := context.Background()
	pm := ui.NewProgressManager()
	defer pm.Close()

	stats := &ui.Stats{}
	start := time.Now()

	sem := make(chan struct{}, max(1, cfg.CompanyWorkers))
	var wg sync.WaitGroup

	for _, c := range selected {
		c := c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			target, err := c.ResolvedURL()
			if err != nil {
				logSvc.Errorf("%s: %v", c.Name, err)
				stats.Failed.Add(1)
				return
			}

			maxPages := c.MaxPages
			if maxPages <= 0 {
				maxPages = cfg.MaxPages
			}

			handle := pm.Register(c.Name)
			ex := extract.New(c.Extractor, client, logSvc)

			found, err := ex.Extract(ctx, extract.Target{
				Company:  c.Name,
				URL:      target,
				MaxPages: maxPages,
				Progress: handle,
			})
			if err != nil {
				logSvc.Errorf("%s failed: %v", c.Name, err)
				stats.Failed.Add(1)
				handle.MarkDone()
				return
			}

			if err := writer.Append(found); err != nil {
				logSvc.Errorf("%s: writing report: %v", c.Name, err)
				stats.Failed.Add(1)
				handle.MarkDone()
				return
			}

			if seen != nil {
				fresh, err := seen.MarkSeen(ctx, found)
				if err != nil {
					logSvc.Errorf("%s: updating store: %v", c.Name, err)
				} else {
					stats.NewJobs.Add(int64(fresh))
				}
			}

			handle.MarkDone()
			stats.TotalCompanies.Add(1)
			stats.TotalJobs.Add(int64(len(found)))
		}()
	}
	wg.Wait()
	pm.Close()

	fmt.Println()
	fmt.Println("Scrape Summary:")
	fmt.Printf("Companies: %d\n", stats.TotalCompanies.Load())
	fmt.Printf("Jobs:      %d\n", stats.TotalJobs.Load())
	if seen != nil {
		fmt.Printf("New:       %d\n", stats.NewJobs.Load())
		if counts, err := seen.CountByCompany(ctx); err == nil {
			total := 0
			for _, n := range counts {
				total += n
			}
			fmt.Printf("Tracked:   %d postings across %d companies\n", total, len(counts))
		}
	}
	if failed := stats.Failed.Load(); failed > 0 {
		fmt.Printf("Failed:    %d\n", failed)
	}
	fmt.Printf("Time:      %s\n", time.Since(start).Round(time.Second))

	for _, p := range writer.Paths() {
		fmt.Printf("Report:    %s\n", p)
	}
	fmt.Println("\nAll done.")

	return nil
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})

	out := []string{}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}

	return out
}
