package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/secframe/internal/app"
)

var (
	flagDict    string
	flagDB      string
	flagWorkers int
)

var rootCmd = &cobra.Command{
	Use:          "secframe",
	Short:        "secframe — securitization discourse coder",
	Long:         "Deterministic keyword coding of Spanish-language posts against a securitization taxonomy, with period reports, event windows, and high-intensity export.",
	SilenceUsage: true,
}

// dataDir returns the per-project data directory (.secframe under cwd).
func dataDir() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(dir, ".secframe")
}

// newApp builds a fully wired App from the root flags.
func newApp() (*app.App, error) {
	dbPath := flagDB
	if dbPath == "" {
		dbPath = filepath.Join(dataDir(), "secframe.db")
	}
	a, err := app.New(app.Config{
		DBPath:  dbPath,
		DictDir: flagDict,
		Workers: flagWorkers,
	})
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return a, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDict, "dict", "", "custom taxonomy directory (default: embedded Spanish set)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "run store path (default: .secframe/secframe.db)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "scoring goroutines (default: one per CPU)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(dictCmd)
	rootCmd.AddCommand(watchCmd)
}
