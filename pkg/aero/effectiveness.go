package aero

import "github.com/unklstewy/flapsim/pkg/flap"

// Effectiveness returns the lift multiplier of a device relative to the
// clean wing. Values above 1 mean the device adds more lift than a split
// flap. Every variant must be listed here; there is no fallback value.
func Effectiveness(v flap.Variant) (float64, error) {
	switch v {
	case flap.Plain:
		return 0.9, nil
	case flap.Split:
		return 1.0, nil
	case flap.Slotted:
		return 1.3, nil
	case flap.Fowler:
		return 1.6, nil
	case flap.DoubleSlotted:
		return 1.8, nil
	case flap.TripleSlotted:
		return 2.0, nil
	case flap.Krueger:
		return 1.2, nil
	case flap.LeadingEdgeSlat:
		return 1.4, nil
	case flap.ZapFlap:
		return 1.5, nil
	case flap.Gouge:
		return 1.4, nil
	default:
		return 0, &flap.UnknownVariantError{Identifier: v.String()}
	}
}
