package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"

	configPath string
	outputDir  string
	verbose    bool

	// cfg is loaded once by the root pre-run hook
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flapsim",
	Short: "Aerodynamic sweeps of high-lift devices",
	Long: `flapsim evaluates ten high-lift devices over a range of angles of
attack, picks the best lift-to-drag operating point of each and writes
the results as CSV, LaTeX tables, plots and geometry snapshots.

Outputs are written under the configured output directory:
  data/    per-device sweeps and optimal_configurations.csv
  tables/  LaTeX tables converted from data/
  images/  lift_to_drag_comparison.png and device snapshots`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configPath, outputDir)
		if err != nil {
			return err
		}
		cfg = loaded

		if verbose {
			sweep.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.json", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides configuration)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log sweep progress")
}

// loadConfig reads and validates the configuration, applying the output
// directory flag when set.
func loadConfig(path, outDir string) (*config.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if outDir != "" {
		c.Output.Dir = outDir
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Printf("Loaded configuration from %s (model: %s)", path, c.Sweep.ForceModel)
	return c, nil
}
