package flap

import (
	"math"

	"github.com/unklstewy/flapsim/pkg/airfoil"
)

// Device produces the deployed outline of one high-lift device. Derived
// dimensions are fixed when the device is built; Geometry recomputes the
// outline on every call because the deployment angle changes every frame.
type Device interface {
	// Variant returns the device type.
	Variant() Variant

	// Spec returns the parent section the device was derived from.
	Spec() airfoil.Spec

	// Geometry returns the closed outline with the section centred on center
	// and the device deflected by deployment radians (0 = retracted).
	// Angles outside [-π/2, π/2] are accepted but give self-overlapping
	// outlines.
	Geometry(center airfoil.Point, deployment float64) airfoil.Profile

	// Hinges returns the pivot of every deflecting part for the given
	// centre and deployment, in the order the parts are stitched.
	Hinges(center airfoil.Point, deployment float64) []airfoil.Point
}

// New builds the geometry strategy for v derived from spec.
func New(v Variant, spec airfoil.Spec) (Device, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch v {
	case Plain:
		return newPlainFlap(spec), nil
	case Split:
		return newSplitFlap(spec), nil
	case Slotted:
		return newSlottedFlap(spec), nil
	case Fowler:
		return newFowlerFlap(spec), nil
	case DoubleSlotted:
		return newDoubleSlottedFlap(spec), nil
	case TripleSlotted:
		return newTripleSlottedFlap(spec), nil
	case Krueger:
		return newKruegerFlap(spec), nil
	case LeadingEdgeSlat:
		return newLeadingEdgeSlat(spec), nil
	case ZapFlap:
		return newZapFlap(spec), nil
	case Gouge:
		return newGougeFlap(spec), nil
	default:
		return nil, unknown(v)
	}
}

// NewAll builds one device per variant, in All() order.
func NewAll(spec airfoil.Spec) ([]Device, error) {
	devices := make([]Device, 0, len(All()))
	for _, v := range All() {
		d, err := New(v, spec)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// Geometry is a convenience wrapper building a device and evaluating it once.
func Geometry(v Variant, spec airfoil.Spec, center airfoil.Point, deployment float64) (airfoil.Profile, error) {
	d, err := New(v, spec)
	if err != nil {
		return nil, err
	}
	return d.Geometry(center, deployment), nil
}

// element is a scaled copy of the base section placed at an anchor and
// rotated about a pivot.
func element(spec airfoil.Spec, anchor, pivot airfoil.Point, angle float64) airfoil.Profile {
	return airfoil.RotateAbout(airfoil.BaseProfile(spec, anchor), pivot, angle)
}

// base holds the parent section shared by every device.
type base struct {
	variant Variant
	spec    airfoil.Spec
}

func (b base) Variant() Variant { return b.variant }

func (b base) Spec() airfoil.Spec { return b.spec }

func (b base) profile(c airfoil.Point) airfoil.Profile {
	return airfoil.BaseProfile(b.spec, c)
}

// plainFlap hinges the trailing 20 outline points about 70% chord.
type plainFlap struct {
	base
	hingeStation float64
	flapPoints   int
}

func newPlainFlap(spec airfoil.Spec) *plainFlap {
	return &plainFlap{
		base:         base{variant: Plain, spec: spec},
		hingeStation: 0.7,
		flapPoints:   20,
	}
}

func (f *plainFlap) hinge(c airfoil.Point) airfoil.Point {
	return airfoil.Pt(c.X+f.spec.Chord*(f.hingeStation-0.5), c.Y)
}

func (f *plainFlap) Hinges(c airfoil.Point, _ float64) []airfoil.Point {
	return []airfoil.Point{f.hinge(c)}
}

func (f *plainFlap) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	outline := f.profile(c)
	flap := airfoil.RotateAbout(outline.Tail(f.flapPoints), f.hinge(c), deployment)
	return airfoil.Concat(outline.DropTail(f.flapPoints), flap)
}

// splitFlap deflects only the aft part of the lower surface.
type splitFlap struct {
	base
	hingeStation float64
	flapPoints   int
}

func newSplitFlap(spec airfoil.Spec) *splitFlap {
	return &splitFlap{
		base:         base{variant: Split, spec: spec},
		hingeStation: 0.7,
		flapPoints:   15,
	}
}

func (f *splitFlap) hinge(c airfoil.Point) airfoil.Point {
	return airfoil.Pt(c.X+f.spec.Chord*(f.hingeStation-0.5), c.Y)
}

func (f *splitFlap) Hinges(c airfoil.Point, _ float64) []airfoil.Point {
	return []airfoil.Point{f.hinge(c)}
}

func (f *splitFlap) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	outline := f.profile(c)
	lower := outline[len(outline)/2:]
	flap := airfoil.RotateAbout(lower.Tail(f.flapPoints), f.hinge(c), deployment)
	return airfoil.Concat(outline.DropTail(f.flapPoints), flap)
}

// slot is one trailing-edge element of a slotted family device. Its pivot is
// the element's own centre, offset aft of the section centre and below the
// chord line by the slot gap.
type slot struct {
	spec   airfoil.Spec
	offset float64 // aft of section centre, absolute units
	gap    float64 // below chord line, absolute units
	factor float64 // multiplier on the deployment angle
}

func (s slot) pivot(c airfoil.Point) airfoil.Point {
	return airfoil.Pt(c.X+s.offset, c.Y+s.gap)
}

// slottedFamily covers the single, double and triple slotted flaps and the
// Fowler flap: each replaces dropped trailing points with one or more
// separately hinged elements.
type slottedFamily struct {
	base
	slots []slot
	drop  int
}

func newSlottedFlap(spec airfoil.Spec) *slottedFamily {
	return &slottedFamily{
		base: base{variant: Slotted, spec: spec},
		slots: []slot{
			{spec: spec.Scale(0.3, 0.8), offset: spec.Chord * 0.2, gap: spec.Thickness * 0.1, factor: 1.0},
		},
		drop: 10,
	}
}

// newFowlerFlap translates the flap aft by an extension of 20% chord and
// keeps the full base outline.
func newFowlerFlap(spec airfoil.Spec) *slottedFamily {
	extension := spec.Chord * 0.2
	return &slottedFamily{
		base: base{variant: Fowler, spec: spec},
		slots: []slot{
			{spec: spec.Scale(0.3, 0.8), offset: spec.Chord*0.2 + extension, gap: spec.Thickness * 0.15, factor: 1.0},
		},
	}
}

// The forward element of a double-slotted flap deflects less.
func newDoubleSlottedFlap(spec airfoil.Spec) *slottedFamily {
	return &slottedFamily{
		base: base{variant: DoubleSlotted, spec: spec},
		slots: []slot{
			{spec: spec.Scale(0.25, 0.8), offset: spec.Chord * 0.2, gap: spec.Thickness * 0.1, factor: 0.7},
			{spec: spec.Scale(0.20, 0.7), offset: spec.Chord * 0.4, gap: spec.Thickness * 0.15, factor: 1.0},
		},
		drop: 10,
	}
}

func newTripleSlottedFlap(spec airfoil.Spec) *slottedFamily {
	chords := []float64{0.25, 0.20, 0.15}
	gaps := []float64{0.1, 0.12, 0.15}

	slots := make([]slot, len(chords))
	for i := range slots {
		slots[i] = slot{
			spec:   spec.Scale(chords[i], 0.8-float64(i)*0.1),
			offset: spec.Chord * (0.2 + float64(i)*0.2),
			gap:    spec.Thickness * gaps[i],
			factor: 0.6 + float64(i)*0.2,
		}
	}
	return &slottedFamily{
		base:  base{variant: TripleSlotted, spec: spec},
		slots: slots,
		drop:  10,
	}
}

func (f *slottedFamily) Hinges(c airfoil.Point, _ float64) []airfoil.Point {
	hinges := make([]airfoil.Point, len(f.slots))
	for i, s := range f.slots {
		hinges[i] = s.pivot(c)
	}
	return hinges
}

func (f *slottedFamily) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	parts := make([]airfoil.Profile, 0, len(f.slots)+1)
	parts = append(parts, f.profile(c).DropTail(f.drop))
	for _, s := range f.slots {
		p := s.pivot(c)
		parts = append(parts, element(s.spec, p, p, deployment*s.factor))
	}
	return airfoil.Concat(parts...)
}

// kruegerFlap swings a panel out from the lower leading edge. The panel
// centre travels along an arc about the hinge and the panel is turned the
// opposite way so it deploys upward into the flow.
type kruegerFlap struct {
	base
	flap   airfoil.Spec
	radius float64
	hingeX float64 // from section centre
	hingeY float64 // below chord line
	factor float64
}

func newKruegerFlap(spec airfoil.Spec) *kruegerFlap {
	return &kruegerFlap{
		base:   base{variant: Krueger, spec: spec},
		flap:   spec.Scale(0.15, 0.6),
		radius: spec.Chord * 0.1,
		hingeX: -spec.Chord * 0.45,
		hingeY: spec.Thickness * 0.3,
		factor: 1.5,
	}
}

func (f *kruegerFlap) hinge(c airfoil.Point) airfoil.Point {
	return airfoil.Pt(c.X+f.hingeX, c.Y+f.hingeY)
}

func (f *kruegerFlap) Hinges(c airfoil.Point, _ float64) []airfoil.Point {
	return []airfoil.Point{f.hinge(c)}
}

func (f *kruegerFlap) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	theta := deployment * f.factor
	h := f.hinge(c)
	anchor := airfoil.Pt(
		h.X-f.radius*math.Sin(theta),
		h.Y-f.radius*(1-math.Cos(theta)),
	)
	return airfoil.Concat(element(f.flap, anchor, h, -theta), f.profile(c))
}

// leadingEdgeSlat sits just ahead of and above the leading edge and pitches
// about its own mid-chord against the flap deflection.
type leadingEdgeSlat struct {
	base
	slat    airfoil.Spec
	gap     float64
	overlap float64
	factor  float64
}

func newLeadingEdgeSlat(spec airfoil.Spec) *leadingEdgeSlat {
	return &leadingEdgeSlat{
		base:    base{variant: LeadingEdgeSlat, spec: spec},
		slat:    spec.Scale(0.15, 0.6),
		gap:     spec.Thickness * 0.08,
		overlap: spec.Chord * 0.01,
		factor:  -0.3,
	}
}

func (f *leadingEdgeSlat) anchor(c airfoil.Point) airfoil.Point {
	return airfoil.Pt(c.X-f.spec.Chord*0.5-f.overlap, c.Y-f.gap)
}

func (f *leadingEdgeSlat) pivot(c airfoil.Point) airfoil.Point {
	a := f.anchor(c)
	return airfoil.Pt(a.X+f.slat.Chord/2, a.Y)
}

func (f *leadingEdgeSlat) Hinges(c airfoil.Point, _ float64) []airfoil.Point {
	return []airfoil.Point{f.pivot(c)}
}

func (f *leadingEdgeSlat) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	slat := element(f.slat, f.anchor(c), f.pivot(c), deployment*f.factor)
	return airfoil.Concat(slat, f.profile(c))
}

// zapFlap slides its flap back and down along an arc of radius 25% chord
// while over-rotating it.
type zapFlap struct {
	base
	flap      airfoil.Spec
	extension float64
	gap       float64
	factor    float64
	drop      int
}

func newZapFlap(spec airfoil.Spec) *zapFlap {
	return &zapFlap{
		base:      base{variant: ZapFlap, spec: spec},
		flap:      spec.Scale(0.3, 0.8),
		extension: spec.Chord * 0.25,
		gap:       spec.Thickness * 0.12,
		factor:    1.2,
		drop:      15,
	}
}

func (f *zapFlap) deploy(c airfoil.Point, deployment float64) airfoil.Point {
	return airfoil.Pt(
		c.X+f.spec.Chord*0.2+f.extension*math.Cos(deployment),
		c.Y+f.gap+f.extension*math.Sin(deployment),
	)
}

func (f *zapFlap) Hinges(c airfoil.Point, deployment float64) []airfoil.Point {
	return []airfoil.Point{f.deploy(c, deployment)}
}

func (f *zapFlap) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	d := f.deploy(c, deployment)
	return airfoil.Concat(f.profile(c).DropTail(f.drop), element(f.flap, d, d, deployment*f.factor))
}

// gougeFlap is a Fowler-like flap whose slot gap opens with deflection.
type gougeFlap struct {
	base
	flap      airfoil.Spec
	extension float64
	gap       float64
	factor    float64
	drop      int
}

func newGougeFlap(spec airfoil.Spec) *gougeFlap {
	return &gougeFlap{
		base:      base{variant: Gouge, spec: spec},
		flap:      spec.Scale(0.35, 0.85),
		extension: spec.Chord * 0.2,
		gap:       spec.Thickness * 0.1,
		factor:    1.1,
		drop:      12,
	}
}

func (f *gougeFlap) deploy(c airfoil.Point, deployment float64) airfoil.Point {
	return airfoil.Pt(
		c.X+f.spec.Chord*0.15+f.extension,
		c.Y+f.gap*(1+math.Sin(deployment)),
	)
}

func (f *gougeFlap) Hinges(c airfoil.Point, deployment float64) []airfoil.Point {
	return []airfoil.Point{f.deploy(c, deployment)}
}

func (f *gougeFlap) Geometry(c airfoil.Point, deployment float64) airfoil.Profile {
	d := f.deploy(c, deployment)
	return airfoil.Concat(f.profile(c).DropTail(f.drop), element(f.flap, d, d, deployment*f.factor))
}
