package aero

import (
	"math"

	"github.com/unklstewy/flapsim/pkg/flap"
)

// SlatFlap is the combined slat and flap model. It carries its own
// effectiveness and does not consult the effectiveness table, so it gives
// the same answer for every device it is applied to.
type SlatFlap struct {
	// Effectiveness scales the lift slope (default 1.4)
	Effectiveness float64

	// CL0 is the lift coefficient at zero angle of attack (default 0.22)
	CL0 float64

	// CD0 and K define the drag polar cd = CD0 + K·α² (defaults 0.012, 0.095)
	CD0 float64
	K   float64

	// LowReynolds is the threshold below which drag is multiplied by
	// LowReynoldsDragFactor (defaults 1e6, 1.3)
	LowReynolds           float64
	LowReynoldsDragFactor float64

	// StallAngle in degrees; beyond it lift is multiplied by StallLiftFactor
	// and drag by StallDragFactor (defaults 14, 1.15, 0.85)
	StallAngle      float64
	StallLiftFactor float64
	StallDragFactor float64
}

// DefaultSlatFlap returns the model with its reference constants.
func DefaultSlatFlap() *SlatFlap {
	return &SlatFlap{
		Effectiveness:         1.4,
		CL0:                   0.22,
		CD0:                   0.012,
		K:                     0.095,
		LowReynolds:           1e6,
		LowReynoldsDragFactor: 1.3,
		StallAngle:            14,
		StallLiftFactor:       1.15,
		StallDragFactor:       0.85,
	}
}

// Name implements Model.
func (s *SlatFlap) Name() string {
	return ModelSlatFlap
}

// Coefficients implements Model.
func (s *SlatFlap) Coefficients(angleDeg float64, v flap.Variant, reynolds float64) (Coefficients, error) {
	if err := validateInputs(angleDeg, v, reynolds); err != nil {
		return Coefficients{}, err
	}

	alpha := radians(angleDeg)
	cl := 2.5*math.Pi*alpha*s.Effectiveness + s.CL0
	cd := s.CD0 + s.K*alpha*alpha

	if reynolds < s.LowReynolds {
		cd *= s.LowReynoldsDragFactor
	}

	if math.Abs(angleDeg) > s.StallAngle {
		cl *= s.StallLiftFactor
		cd *= s.StallDragFactor
	}

	return finite(Coefficients{Lift: cl, Drag: cd})
}
