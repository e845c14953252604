package sweep

import (
	"fmt"

	"github.com/unklstewy/flapsim/pkg/flap"
)

// Best is the optimal operating point of one device: the sample with the
// highest lift-to-drag ratio.
type Best struct {
	Variant         flap.Variant `json:"variant"`
	OptimalIndex    int          `json:"optimal_index"`
	OptimalAngle    float64      `json:"optimal_angle"`
	MaxLiftToDrag   float64      `json:"max_lift_drag_ratio"`
	LiftCoefficient float64      `json:"lift_coefficient"`
	DragCoefficient float64      `json:"drag_coefficient"`
}

// BestOf returns the maximum lift-to-drag sample of r. Ties keep the first
// occurrence.
func BestOf(r Result) (Best, error) {
	if len(r.Samples) == 0 {
		return Best{}, fmt.Errorf("no samples for %s", r.Variant)
	}

	idx := 0
	for i, s := range r.Samples {
		if s.LiftToDrag > r.Samples[idx].LiftToDrag {
			idx = i
		}
	}

	s := r.Samples[idx]
	return Best{
		Variant:         r.Variant,
		OptimalIndex:    idx,
		OptimalAngle:    s.Angle,
		MaxLiftToDrag:   s.LiftToDrag,
		LiftCoefficient: s.Lift,
		DragCoefficient: s.Drag,
	}, nil
}

// Summarize returns one Best per result, in order.
func Summarize(results []Result) ([]Best, error) {
	best := make([]Best, 0, len(results))
	for _, r := range results {
		b, err := BestOf(r)
		if err != nil {
			return nil, err
		}
		best = append(best, b)
	}
	return best, nil
}
