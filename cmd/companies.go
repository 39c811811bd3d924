package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jobscout-dev/jobscout/internal/config"
	"github.com/jobscout-dev/jobscout/internal/extract"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the companies in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadMerged(config.Options{
			IgnoreConfig:  flagIgnoreConfig,
			Debug:         flagDebug,
			CompaniesFile: flagCompaniesFile,
		})
		if err != nil {
			return err
		}

		roster, err := config.LoadRoster(cfg.CompaniesFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tEXTRACTOR\tPAGES\tURL")

		for _, c := range roster.Companies {
			name := c.Extractor
			if name == "" {
				name = "heuristic"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.Name, name, c.MaxPages, c.BaseURL)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

var companiesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one company's roster entry and resolved URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadMerged(config.Options{
			IgnoreConfig:  flagIgnoreConfig,
			Debug:         flagDebug,
			CompaniesFile: flagCompaniesFile,
		})
		if err != nil {
			return err
		}

		roster, err := config.LoadRoster(cfg.CompaniesFile)
		if err != nil {
			return err
		}

		c, ok := roster.Find(args[0])
		if !ok {
			return fmt.Errorf("unknown company %q (have: %s)", args[0], strings.Join(roster.Names(), ", "))
		}

		resolved, err := c.ResolvedURL()
		if err != nil {
			return err
		}

		name := c.Extractor
		if name == "" {
			name = "heuristic"
		}

		fmt.Printf("Name:      %s\n", c.Name)
		fmt.Printf("Extractor: %s\n", name)
		fmt.Printf("Pages:     %d\n", c.MaxPages)
		fmt.Printf("URL:       %s\n", resolved)
		fmt.Printf("\nRegistered extractors: %s\n", strings.Join(extract.Known(), ", "))
		return nil
	},
}

func init() {
	companiesCmd.PersistentFlags().StringVar(&flagCompaniesFile, "companies-file", "", "path to a YAML roster replacing the built-in company list")
	companiesCmd.AddCommand(companiesShowCmd)
	rootCmd.AddCommand(companiesCmd)
}
