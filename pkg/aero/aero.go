// Package aero computes lift and drag coefficients for a wing fitted with
// one of the high-lift devices in package flap.
//
// Two models are provided and they are deliberately not reconciled:
//
//   - Baseline scales thin-airfoil lift by a per-device effectiveness factor
//     and adds induced drag plus a flat-plate friction estimate.
//   - SlatFlap is the richer slat-plus-flap model with a zero-angle lift
//     offset, a quadratic drag polar and low-Reynolds and stall corrections.
//
// Callers pick a model explicitly, either directly or through a Selector
// built from configuration.
package aero

import (
	"fmt"
	"math"

	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

// Model names accepted by NewModel.
const (
	ModelBaseline = "baseline"
	ModelSlatFlap = "slat-flap"
)

// Coefficients is a dimensionless lift/drag pair.
type Coefficients struct {
	Lift float64
	Drag float64
}

// LiftToDrag returns Lift/Drag. It fails with a DomainError when drag is not
// positive, since the ratio is undefined there.
func (c Coefficients) LiftToDrag() (float64, error) {
	if err := airfoil.Positive("drag coefficient", c.Drag); err != nil {
		return 0, err
	}
	return c.Lift / c.Drag, nil
}

// Model computes force coefficients for an angle of attack in degrees, a
// device type and a Reynolds number.
type Model interface {
	Name() string
	Coefficients(angleDeg float64, v flap.Variant, reynolds float64) (Coefficients, error)
}

// Models returns the names of all available models.
func Models() []string {
	return []string{ModelBaseline, ModelSlatFlap}
}

// NewModel returns the named model evaluated over wing.
func NewModel(name string, wing Wing) (Model, error) {
	switch name {
	case ModelBaseline:
		if err := wing.Validate(); err != nil {
			return nil, err
		}
		return &Baseline{Wing: wing}, nil
	case ModelSlatFlap:
		return DefaultSlatFlap(), nil
	default:
		return nil, fmt.Errorf("unknown force model %q (want one of %v)", name, Models())
	}
}

// validateInputs rejects inputs that would otherwise surface as NaN or Inf.
func validateInputs(angleDeg float64, v flap.Variant, reynolds float64) error {
	if !v.Valid() {
		return &flap.UnknownVariantError{Identifier: v.String()}
	}
	if err := airfoil.Finite("angle of attack", angleDeg); err != nil {
		return err
	}
	return airfoil.Positive("reynolds number", reynolds)
}

func radians(deg float64) float64 {
	return deg * airfoil.DegreesToRadians
}

// finite guards a computed result so callers never receive NaN or Inf.
func finite(c Coefficients) (Coefficients, error) {
	if math.IsNaN(c.Lift) || math.IsInf(c.Lift, 0) {
		return Coefficients{}, &airfoil.DomainError{Field: "lift coefficient", Value: c.Lift, Reason: "result is not finite"}
	}
	if math.IsNaN(c.Drag) || math.IsInf(c.Drag, 0) {
		return Coefficients{}, &airfoil.DomainError{Field: "drag coefficient", Value: c.Drag, Reason: "result is not finite"}
	}
	return c, nil
}
