package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/addislabs/cropsight/internal/config"
	"github.com/addislabs/cropsight/internal/dataset"
	"github.com/addislabs/cropsight/internal/source"
)

var (
	// Global flags
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "cropsight",
	Short: "Cropsight CLI: profile trade datasets and answer questions about them",
	Long:  `Cropsight ingests spreadsheet-shaped import batches, infers a type for every field, builds summary statistics and aggregates, and answers plain-text analytical questions about the dataset.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cropsight/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{}
		return
	}
	cfg = c
}

func activeConfig() *cfgpkg.Global {
	if cfg == nil {
		cfg = &cfgpkg.Global{}
	}
	return cfg
}

// loadProfile reads every batch file and profiles the combined dataset.
func loadProfile(paths []string) (*dataset.DatasetProfile, error) {
	batches, err := source.LoadBatches(paths)
	if err != nil {
		return nil, err
	}
	return dataset.Profile(batches, activeConfig().ProfilerOptions()), nil
}
