package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/unklstewy/flapsim/pkg/sweep"
)

// Metric selects the curve drawn against angle of attack.
type Metric int

const (
	LiftToDrag Metric = iota
	Lift
	Drag
)

func (m Metric) label() string {
	switch m {
	case Lift:
		return "Lift Coefficient"
	case Drag:
		return "Drag Coefficient"
	default:
		return "Lift-to-Drag Ratio"
	}
}

func (m Metric) value(s sweep.Sample) float64 {
	switch m {
	case Lift:
		return s.Lift
	case Drag:
		return s.Drag
	default:
		return s.LiftToDrag
	}
}

// NewPlot builds a line plot of metric against angle of attack with one
// line per device.
func NewPlot(results []sweep.Result, metric Metric) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Aerodynamic Efficiency vs Angle of Attack"
	if metric != LiftToDrag {
		p.Title.Text = metric.label() + " vs Angle of Attack"
	}
	p.X.Label.Text = "Angle of Attack (degrees)"
	p.Y.Label.Text = metric.label()
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	lines := make([]interface{}, 0, 2*len(results))
	for _, r := range results {
		pts := make(plotter.XYs, len(r.Samples))
		for i, s := range r.Samples {
			pts[i].X = s.Angle
			pts[i].Y = metric.value(s)
		}
		lines = append(lines, r.Variant.String(), pts)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, fmt.Errorf("failed to add lines: %w", err)
	}
	return p, nil
}

// SavePlot renders the metric plot to path; the format follows the file
// extension (png, svg, pdf).
func SavePlot(results []sweep.Result, metric Metric, path string, widthIn, heightIn float64) error {
	p, err := NewPlot(results, metric)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// PlotLiftToDrag saves the lift-to-drag comparison of all results.
func PlotLiftToDrag(results []sweep.Result, path string, widthIn, heightIn float64) error {
	return SavePlot(results, LiftToDrag, path, widthIn, heightIn)
}
