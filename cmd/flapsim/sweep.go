package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/unklstewy/flapsim/internal/db"
	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/report"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

var (
	persist   bool
	modelName string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every device over the configured angle range",
	Long: `Run the force model for every high-lift device over the configured
angle range and write:

  data/<device>_results.csv            one sweep per device
  data/optimal_configurations.csv      best lift-to-drag point per device
  images/lift_to_drag_comparison.png   L/D against angle of attack

With --persist (or database.enabled in the configuration) the runs are
also stored in PostgreSQL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelName != "" {
			cfg.Sweep.ForceModel = modelName
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		_, err := runSweep(cmd.Context(), cfg, persist || cfg.Database.Enabled)
		return err
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&persist, "persist", false, "Store the runs in PostgreSQL")
	sweepCmd.Flags().StringVar(&modelName, "model", "", "Force model for devices without an override (baseline, slat-flap)")
	rootCmd.AddCommand(sweepCmd)
}

// sweepOutput lists what a sweep produced.
type sweepOutput struct {
	Results []sweep.Result
	Best    []sweep.Best
	Files   []string
	RunIDs  []int64
}

func runSweep(ctx context.Context, cfg *config.Config, persist bool) (*sweepOutput, error) {
	sel, err := cfg.Selector()
	if err != nil {
		return nil, err
	}
	angles, err := cfg.Sweep.Angles()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := sweep.RunAll(ctx, sel, flap.All(), cfg.Sweep.Reynolds, angles)
	if err != nil {
		return nil, fmt.Errorf("failed to run sweep: %w", err)
	}
	best, err := sweep.Summarize(results)
	if err != nil {
		return nil, err
	}
	log.Printf("Swept %d devices over %d angles in %v", len(results), len(angles), time.Since(start).Round(time.Millisecond))

	out := &sweepOutput{Results: results, Best: best}

	files, err := report.SaveResults(cfg.Output.DataDir(), results)
	if err != nil {
		return nil, err
	}
	out.Files = append(out.Files, files...)

	bestFile, err := report.SaveBest(cfg.Output.DataDir(), best)
	if err != nil {
		return nil, err
	}
	out.Files = append(out.Files, bestFile)

	plotFile := filepath.Join(cfg.Output.ImagesDir(), report.PlotFileName)
	if err := report.PlotLiftToDrag(results, plotFile, cfg.Output.PlotWidth, cfg.Output.PlotHeight); err != nil {
		return nil, err
	}
	out.Files = append(out.Files, plotFile)

	for _, b := range best {
		log.Printf("  %-20s best at %5.1f° (L/D %.2f)", b.Variant, b.OptimalAngle, b.MaxLiftToDrag)
	}
	log.Printf("Wrote %d files under %s", len(out.Files), cfg.Output.Dir)

	if persist {
		ids, err := persistSweep(ctx, cfg.Database, results, best)
		if err != nil {
			return nil, err
		}
		out.RunIDs = ids
	}
	return out, nil
}

func persistSweep(ctx context.Context, dbCfg config.DatabaseConfig, results []sweep.Result, best []sweep.Best) ([]int64, error) {
	database, err := db.ConnectWithRetry(ctx, dbCfg, 3, time.Second)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	if err := database.InitSchema(ctx); err != nil {
		return nil, err
	}

	repo := db.NewSweepRepository(database)
	var ids []int64
	err = db.WithRetry(ctx, func() error {
		var saveErr error
		ids, saveErr = repo.SaveAll(ctx, results, best, time.Now())
		return saveErr
	}, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to store sweeps: %w", err)
	}
	log.Printf("Stored %d runs in %s", len(ids), database.Target())
	return ids, nil
}
