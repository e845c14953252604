package aero

import (
	"math"

	"github.com/unklstewy/flapsim/pkg/flap"
)

// SlotDragFactor is applied to parasitic drag of slotted devices.
const SlotDragFactor = 1.1

// Baseline is the effectiveness-table model.
//
//	cl   = 2π·α·e
//	cd_i = cl² / (π·AR·e)
//	cd_p = 0.074/Re^0.2 · (1 + 2·t/c)   (×1.1 for slotted devices)
//
// Induced drag divides by the effectiveness factor, which lowers it for
// stronger devices. That is the established behaviour of this model and is
// kept as-is.
type Baseline struct {
	Wing Wing
}

// NewBaseline returns the baseline model over the default wing.
func NewBaseline() *Baseline {
	return &Baseline{Wing: DefaultWing()}
}

// Name implements Model.
func (b *Baseline) Name() string {
	return ModelBaseline
}

// ParasiticDrag returns the turbulent flat-plate skin friction estimate
// corrected for thickness. reynolds must already be validated.
func (b *Baseline) ParasiticDrag(reynolds float64) float64 {
	cf := 0.074 / math.Pow(reynolds, 0.2)
	return cf * (1 + 2*b.Wing.ThicknessRatio)
}

// Coefficients implements Model.
func (b *Baseline) Coefficients(angleDeg float64, v flap.Variant, reynolds float64) (Coefficients, error) {
	if err := validateInputs(angleDeg, v, reynolds); err != nil {
		return Coefficients{}, err
	}
	e, err := Effectiveness(v)
	if err != nil {
		return Coefficients{}, err
	}

	alpha := radians(angleDeg)
	cl := 2 * math.Pi * alpha * e

	cdInduced := cl * cl / (math.Pi * b.Wing.AspectRatio() * e)

	cdParasitic := b.ParasiticDrag(reynolds)
	if v.IsSlotted() {
		cdParasitic *= SlotDragFactor
	}

	return finite(Coefficients{Lift: cl, Drag: cdParasitic + cdInduced})
}
