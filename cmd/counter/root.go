package main

import (
	"os"

	"github.com/spf13/cobra"

	"storecounter/internal/app"
	"storecounter/internal/config"
	"storecounter/internal/logger"
)

// RootCommand creates the counter CLI with its sub-commands.
func RootCommand(cfg *config.Config) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "counter",
		Short:         "Count store visitors in images and videos and build reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "Path to the history database")
	rootCmd.PersistentFlags().StringVar(&cfg.ResultDirectory, "results", cfg.ResultDirectory, "Directory for annotated images")
	rootCmd.PersistentFlags().StringVar(&cfg.ReportDirectory, "reports", cfg.ReportDirectory, "Directory for generated reports")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stdout")

	open := func(withDetector bool) (*app.App, error) {
		log := logger.NewNop()
		if verbose {
			log = logger.NewWriter(os.Stderr)
		}
		return app.New(cfg, log, withDetector)
	}

	rootCmd.AddCommand(
		processCommand(cfg, open),
		reportCommand(open),
		historyCommand(open),
	)

	return rootCmd
}

// opener builds the application services for one command run.
type opener func(withDetector bool) (*app.App, error)
