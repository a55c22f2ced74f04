package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timing-report/pkg/config"
	"github.com/timing-report/pkg/telemetry"
	"github.com/timing-report/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "timing-report",
	Short: "Compare profiler timing summaries",
	Long: `timing-report parses hierarchical profiler timing summaries and compares
a region's child regions between a baseline run and an optimized run.

It ranks children by baseline mean time, computes each child's share of the
parent region, and annotates children whose baseline/optimized delta clears
a threshold. Results print as a table and can be written as CSV, JSON, and
an SVG bar chart.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		telemetryShutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
			telemetryShutdown = nil
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(context.Background()); err != nil {
				logger.Warn("Failed to shut down telemetry: %v", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	binName := BinName()
	rootCmd.Example = `  # Compare the default region between two runs
  ` + binName + ` compare -b baseline.summary -o optimized.summary

  # Compare a specific region and write all artifacts
  ` + binName + ` compare -b baseline.summary -o optimized.summary -r dyn_run --csv --json --svg

  # Rank a single run's children without a comparison
  ` + binName + ` compare -b baseline.summary -r phys_run

  # List previously saved runs
  ` + binName + ` history -r dyn_run`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
