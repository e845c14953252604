// Package report persists sweep results as tabular and visual artifacts:
// per-device CSV tables, the optimal configuration table, typeset LaTeX
// tables and a lift-to-drag comparison plot.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

// File names of the summary artifacts.
const (
	BestFileName = "optimal_configurations.csv"
	PlotFileName = "lift_to_drag_comparison.png"
)

// ResultHeader is the column order of per-device tables.
var ResultHeader = []string{"angle", "lift", "drag", "lift_to_drag"}

// BestHeader is the column order of the optimal configuration table.
var BestHeader = []string{
	"flap_type", "optimal_index", "optimal_angle",
	"max_lift_drag_ratio", "lift_coefficient", "drag_coefficient",
}

// ResultFileName returns the CSV name for a device, e.g.
// "double-slotted_flap_results.csv".
func ResultFileName(v flap.Variant) string {
	return v.FileStem() + "_results.csv"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteCSV writes one row per angle.
func WriteCSV(w io.Writer, r sweep.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range r.Samples {
		row := []string{formatFloat(s.Angle), formatFloat(s.Lift), formatFloat(s.Drag), formatFloat(s.LiftToDrag)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBestCSV writes the optimal configuration of every device.
func WriteBestCSV(w io.Writer, best []sweep.Best) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BestHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, b := range best {
		row := []string{
			b.Variant.String(),
			strconv.Itoa(b.OptimalIndex),
			formatFloat(b.OptimalAngle),
			formatFloat(b.MaxLiftToDrag),
			formatFloat(b.LiftCoefficient),
			formatFloat(b.DragCoefficient),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveResults writes one CSV per result into dir and returns the paths.
func SaveResults(dir string, results []sweep.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	paths := make([]string, 0, len(results))
	for _, r := range results {
		path := filepath.Join(dir, ResultFileName(r.Variant))
		if err := writeFile(path, func(w io.Writer) error { return WriteCSV(w, r) }); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveBest writes the optimal configuration table into dir.
func SaveBest(dir string, best []sweep.Best) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(dir, BestFileName)
	return path, writeFile(path, func(w io.Writer) error { return WriteBestCSV(w, best) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
