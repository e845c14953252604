// Package flap models the ten high-lift devices: a closed enumeration of
// device types and, for each, a geometry strategy that stitches the base
// section with its deployed sub-elements.
package flap

import (
	"errors"
	"fmt"
	"strings"
)

// Variant identifies a high-lift device type. The zero value is not a valid
// variant.
type Variant int

const (
	Plain Variant = iota + 1
	Split
	Slotted
	Fowler
	DoubleSlotted
	TripleSlotted
	Krueger
	LeadingEdgeSlat
	ZapFlap
	Gouge
)

var variantNames = map[Variant]string{
	Plain:           "Plain Flap",
	Split:           "Split Flap",
	Slotted:         "Slotted Flap",
	Fowler:          "Fowler Flap",
	DoubleSlotted:   "Double-Slotted Flap",
	TripleSlotted:   "Triple-Slotted Flap",
	Krueger:         "Krueger Flap",
	LeadingEdgeSlat: "Leading-Edge Slat",
	ZapFlap:         "Zap Flap",
	Gouge:           "Gouge Flap",
}

var variantSlugs = map[Variant]string{
	Plain:           "plain",
	Split:           "split",
	Slotted:         "slotted",
	Fowler:          "fowler",
	DoubleSlotted:   "double-slotted",
	TripleSlotted:   "triple-slotted",
	Krueger:         "krueger",
	LeadingEdgeSlat: "leading-edge-slat",
	ZapFlap:         "zap",
	Gouge:           "gouge",
}

// All returns every variant in display order.
func All() []Variant {
	return []Variant{
		Plain, Split, Slotted, Fowler, DoubleSlotted,
		TripleSlotted, Krueger, LeadingEdgeSlat, ZapFlap, Gouge,
	}
}

// Valid reports whether v is a member of the enumeration.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]
	return ok
}

// String returns the display name, e.g. "Double-Slotted Flap".
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Slug returns the short identifier used in configuration and on the
// command line, e.g. "double-slotted".
func (v Variant) Slug() string {
	return variantSlugs[v]
}

// FileStem returns the lowercase, underscore-separated display name used to
// name exported artifacts, e.g. "double-slotted_flap".
func (v Variant) FileStem() string {
	return strings.ReplaceAll(strings.ToLower(v.String()), " ", "_")
}

// IsSlotted reports whether the device opens one or more slots through the
// trailing edge, which adds parasitic drag.
func (v Variant) IsSlotted() bool {
	switch v {
	case Slotted, DoubleSlotted, TripleSlotted:
		return true
	}
	return false
}

// IsLeadingEdge reports whether the device deploys from the leading edge.
func (v Variant) IsLeadingEdge() bool {
	return v == Krueger || v == LeadingEdgeSlat
}

// Parse resolves a display name, slug or file stem (case-insensitive) to a
// Variant.
func Parse(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, v := range All() {
		if key == strings.ToLower(v.String()) || key == v.Slug() || key == v.FileStem() {
			return v, nil
		}
	}
	return 0, &UnknownVariantError{Identifier: s}
}

// MarshalText implements encoding.TextMarshaler using the slug.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, &UnknownVariantError{Identifier: v.String()}
	}
	return []byte(v.Slug()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnknownVariantError reports a device identifier outside the enumeration.
type UnknownVariantError struct {
	Identifier string
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown flap variant %q", e.Identifier)
}

// IsUnknownVariant checks if an error is an UnknownVariantError and returns it.
func IsUnknownVariant(err error) (*UnknownVariantError, bool) {
	var uv *UnknownVariantError
	if errors.As(err, &uv) {
		return uv, true
	}
	return nil, false
}

func unknown(v Variant) error {
	return &UnknownVariantError{Identifier: v.String()}
}
