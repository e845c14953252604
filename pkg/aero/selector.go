package aero

import (
	"fmt"

	"github.com/unklstewy/flapsim/pkg/flap"
)

// Selector routes each device to a model: the default one unless the device
// has an explicit override. It is read-only after construction and safe for
// concurrent use.
type Selector struct {
	def       Model
	overrides map[flap.Variant]Model
}

// NewSelector builds a selector from model names. overrides may be nil.
func NewSelector(defaultModel string, overrides map[flap.Variant]string, wing Wing) (*Selector, error) {
	def, err := NewModel(defaultModel, wing)
	if err != nil {
		return nil, err
	}

	sel := &Selector{def: def, overrides: make(map[flap.Variant]Model, len(overrides))}
	for v, name := range overrides {
		if !v.Valid() {
			return nil, &flap.UnknownVariantError{Identifier: v.String()}
		}
		m, err := NewModel(name, wing)
		if err != nil {
			return nil, fmt.Errorf("override for %s: %w", v.Slug(), err)
		}
		sel.overrides[v] = m
	}
	return sel, nil
}

// Uniform returns a selector that sends every device to m.
func Uniform(m Model) *Selector {
	return &Selector{def: m, overrides: map[flap.Variant]Model{}}
}

// For returns the model used for v.
func (s *Selector) For(v flap.Variant) Model {
	if m, ok := s.overrides[v]; ok {
		return m
	}
	return s.def
}

// Coefficients evaluates the model selected for v.
func (s *Selector) Coefficients(angleDeg float64, v flap.Variant, reynolds float64) (Coefficients, error) {
	return s.For(v).Coefficients(angleDeg, v, reynolds)
}
