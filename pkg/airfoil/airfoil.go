// Package airfoil generates the baseline symmetric section used by every
// high-lift device and provides the rotation primitive the devices are built
// from.
//
// Coordinates follow screen conventions: x grows toward the trailing edge and
// y grows downward, so the upper surface sits at centerY minus the half
// thickness.
package airfoil

import (
	"math"
)

// Constants for section generation
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// SampleCount is the number of chordwise stations per surface.
	SampleCount = 50

	// DefaultChord and DefaultThickness describe the render-space section
	// (pixels) used by the visualizers.
	DefaultChord     = 200.0
	DefaultThickness = 30.0
)

// NACA 4-digit symmetric thickness coefficients.
const (
	a0 = 0.2969
	a1 = 0.1260
	a2 = 0.3516
	a3 = 0.2843
	a4 = 0.1015
)

// Spec is the chord and thickness of a section. Every derived flap dimension
// is a fraction of these two values.
type Spec struct {
	// Chord is the leading-to-trailing-edge length
	Chord float64

	// Thickness scales the thickness distribution
	Thickness float64
}

// NewSpec validates chord and thickness and returns the section spec.
func NewSpec(chord, thickness float64) (Spec, error) {
	s := Spec{Chord: chord, Thickness: thickness}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// DefaultSpec returns the 200x30 render-space section.
func DefaultSpec() Spec {
	return Spec{Chord: DefaultChord, Thickness: DefaultThickness}
}

// Validate reports a DomainError for non-positive or non-finite dimensions.
func (s Spec) Validate() error {
	if err := positive("chord", s.Chord); err != nil {
		return err
	}
	return positive("thickness", s.Thickness)
}

// Scale returns a sub-element spec whose chord and thickness are fractions
// of s.
func (s Spec) Scale(chordFraction, thicknessFraction float64) Spec {
	return Spec{
		Chord:     s.Chord * chordFraction,
		Thickness: s.Thickness * thicknessFraction,
	}
}

// HalfThickness evaluates the thickness distribution at chordwise position x
// (0 <= x <= Chord).
func (s Spec) HalfThickness(x float64) float64 {
	xc := x / s.Chord
	return s.Thickness * (a0*math.Sqrt(xc) -
		a1*xc -
		a2*xc*xc +
		a3*xc*xc*xc -
		a4*xc*xc*xc*xc)
}

// Stations returns SampleCount chordwise positions spaced evenly over
// [0, Chord]. The last station is exactly Chord.
func (s Spec) Stations() []float64 {
	xs := make([]float64, SampleCount)
	step := s.Chord / float64(SampleCount-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	xs[SampleCount-1] = s.Chord
	return xs
}

// BaseProfile builds the closed outline of the section centred on center:
// the upper surface from leading to trailing edge followed by the lower
// surface from trailing back to leading edge.
func BaseProfile(s Spec, center Point) Profile {
	xs := s.Stations()
	left := center.X - s.Chord/2

	points := make(Profile, 0, 2*len(xs))
	for _, x := range xs {
		points = append(points, Point{X: left + x, Y: center.Y - s.HalfThickness(x)})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		points = append(points, Point{X: left + xs[i], Y: center.Y + s.HalfThickness(xs[i])})
	}
	return points
}

// RotateAbout rotates every point by angle radians around pivot. The input
// is left untouched.
func RotateAbout(points Profile, pivot Point, angle float64) Profile {
	out := make(Profile, len(points))
	if angle == 0 {
		copy(out, points)
		return out
	}

	sin, cos := math.Sincos(angle)
	for i, p := range points {
		dx := p.X - pivot.X
		dy := p.Y - pivot.Y
		out[i] = Point{
			X: dx*cos - dy*sin + pivot.X,
			Y: dx*sin + dy*cos + pivot.Y,
		}
	}
	return out
}
