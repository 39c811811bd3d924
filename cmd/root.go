package cmd

import (
	"fmt"
	"os"

	"github.com/jobscout-dev/jobscout/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job postings scraper with CSV and XLSX reports",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.LoadDotenv(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
