// Package sweep drives the force model across a range of angles of attack
// and summarizes the resulting coefficient curves.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/unklstewy/flapsim/pkg/aero"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

// Default sweep range: -5° to 20° (exclusive) in 0.5° steps.
const (
	DefaultStart    = -5.0
	DefaultStop     = 20.0
	DefaultStep     = 0.5
	DefaultReynolds = 1e6
)

// MaxSamples bounds the number of angles a single sweep may contain.
const MaxSamples = 1_000_000

// Sample is one row of a sweep.
type Sample struct {
	Angle      float64 `json:"angle"`
	Lift       float64 `json:"lift"`
	Drag       float64 `json:"drag"`
	LiftToDrag float64 `json:"lift_to_drag"`
}

// Result is the full coefficient curve of one device.
type Result struct {
	Variant  flap.Variant `json:"variant"`
	Model    string       `json:"model"`
	Reynolds float64      `json:"reynolds"`
	Samples  []Sample     `json:"samples"`
}

// Angles returns the half-open range [start, stop) in increments of step.
// Each value is computed as start + i·step so rounding does not accumulate.
func Angles(start, stop, step float64) ([]float64, error) {
	if err := airfoil.Finite("start angle", start); err != nil {
		return nil, err
	}
	if err := airfoil.Finite("stop angle", stop); err != nil {
		return nil, err
	}
	if err := airfoil.Positive("angle step", step); err != nil {
		return nil, err
	}
	if stop <= start {
		return nil, &airfoil.DomainError{Field: "stop angle", Value: stop, Reason: "must be greater than start angle"}
	}

	count := math.Ceil((stop - start) / step)
	if count > MaxSamples {
		return nil, &airfoil.DomainError{
			Field:  "angle step",
			Value:  step,
			Reason: fmt.Sprintf("yields %.0f samples, more than %d", count, MaxSamples),
		}
	}
	angles := make([]float64, int(count))
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles, nil
}

// DefaultAngles returns the -5°..20° sweep.
func DefaultAngles() []float64 {
	angles, _ := Angles(DefaultStart, DefaultStop, DefaultStep)
	return angles
}

// Run evaluates m at every angle for one device.
func Run(m aero.Model, v flap.Variant, reynolds float64, angles []float64) (Result, error) {
	res := Result{
		Variant:  v,
		Model:    m.Name(),
		Reynolds: reynolds,
		Samples:  make([]Sample, 0, len(angles)),
	}

	for _, angle := range angles {
		c, err := m.Coefficients(angle, v, reynolds)
		if err != nil {
			return Result{}, fmt.Errorf("%s at %.2f°: %w", v, angle, err)
		}
		ld, err := c.LiftToDrag()
		if err != nil {
			return Result{}, fmt.Errorf("%s at %.2f°: %w", v, angle, err)
		}
		res.Samples = append(res.Samples, Sample{
			Angle:      angle,
			Lift:       c.Lift,
			Drag:       c.Drag,
			LiftToDrag: ld,
		})
	}

	Logger().Debug("sweep complete",
		"variant", v.Slug(), "model", m.Name(), "reynolds", reynolds, "samples", len(res.Samples))
	return res, nil
}

// RunAll sweeps every variant concurrently, one goroutine per device, and
// returns the results in the order of variants. The first error wins.
func RunAll(ctx context.Context, sel *aero.Selector, variants []flap.Variant, reynolds float64, angles []float64) ([]Result, error) {
	results := make([]Result, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(i int, v flap.Variant) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = Run(sel.For(v), v, reynolds, angles)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	Logger().Info("sweeps complete", "variants", len(variants), "angles", len(angles))
	return results, nil
}

// Angles returns the angle column of the result.
func (r Result) Angles() []float64 {
	return r.column(func(s Sample) float64 { return s.Angle })
}

// Lift returns the lift coefficient column.
func (r Result) Lift() []float64 {
	return r.column(func(s Sample) float64 { return s.Lift })
}

// Drag returns the drag coefficient column.
func (r Result) Drag() []float64 {
	return r.column(func(s Sample) float64 { return s.Drag })
}

// LiftToDrag returns the lift-to-drag column.
func (r Result) LiftToDrag() []float64 {
	return r.column(func(s Sample) float64 { return s.LiftToDrag })
}

func (r Result) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = f(s)
	}
	return out
}
