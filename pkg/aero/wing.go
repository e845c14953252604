package aero

import "github.com/unklstewy/flapsim/pkg/airfoil"

// Wing holds the fixed planform constants of the force model.
type Wing struct {
	// Span in meters
	Span float64

	// Chord in meters
	Chord float64

	// ThicknessRatio is maximum thickness over chord
	ThicknessRatio float64
}

// DefaultWing returns the 10 m span, 2 m chord, 12% thick wing.
func DefaultWing() Wing {
	return Wing{
		Span:           10.0,
		Chord:          2.0,
		ThicknessRatio: 0.12,
	}
}

// AspectRatio returns span over chord.
func (w Wing) AspectRatio() float64 {
	return w.Span / w.Chord
}

// Validate checks the planform dimensions are positive.
func (w Wing) Validate() error {
	if err := airfoil.Positive("wing span", w.Span); err != nil {
		return err
	}
	if err := airfoil.Positive("wing chord", w.Chord); err != nil {
		return err
	}
	return airfoil.Positive("thickness ratio", w.ThicknessRatio)
}
