package airfoil

import (
	"math"
	"testing"
)

// TestBaseProfileShape checks point count, closure and surface ordering.
func TestBaseProfileShape(t *testing.T) {
	tests := []struct {
		name   string
		spec   Spec
		center Point
	}{
		{name: "Render section", spec: DefaultSpec(), center: Pt(600, 400)},
		{name: "Wing section", spec: Spec{Chord: 2.0, Thickness: 0.24}, center: Pt(0, 0)},
		{name: "Offset sub-element", spec: DefaultSpec().Scale(0.3, 0.8), center: Pt(-50, 12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := BaseProfile(tt.spec, tt.center)

			if len(profile) != 2*SampleCount {
				t.Fatalf("len = %d, want %d", len(profile), 2*SampleCount)
			}

			first, last := profile[0], profile[len(profile)-1]
			leadingX := tt.center.X - tt.spec.Chord/2
			if first.X != leadingX || last.X != leadingX {
				t.Errorf("leading edge x = %v/%v, want %v", first.X, last.X, leadingX)
			}
			// sqrt(0) and every power of 0 vanish, so closure is exact.
			if first.Y != tt.center.Y || last.Y != tt.center.Y {
				t.Errorf("leading edge y = %v/%v, want %v", first.Y, last.Y, tt.center.Y)
			}

			trailing := profile[SampleCount-1]
			if math.Abs(trailing.X-(tt.center.X+tt.spec.Chord/2)) > 1e-9 {
				t.Errorf("trailing edge x = %v, want %v", trailing.X, tt.center.X+tt.spec.Chord/2)
			}
			if math.Abs(trailing.Y-tt.center.Y) > 0.01*tt.spec.Thickness {
				t.Errorf("trailing edge not closed: y = %v", trailing.Y)
			}

			for i := 1; i < SampleCount-1; i++ {
				upper := profile[i]
				lower := profile[2*SampleCount-1-i]
				if upper.X != lower.X {
					t.Fatalf("station %d: upper x %v != lower x %v", i, upper.X, lower.X)
				}
				if upper.Y >= tt.center.Y || lower.Y <= tt.center.Y {
					t.Fatalf("station %d: upper y %v / lower y %v not on opposite sides", i, upper.Y, lower.Y)
				}
			}
		})
	}
}

// TestBaseProfileDoesNotMutateCenter verifies the centre is passed by value.
func TestBaseProfileDoesNotMutateCenter(t *testing.T) {
	center := Pt(100, 200)
	_ = BaseProfile(DefaultSpec(), center)
	if center != Pt(100, 200) {
		t.Errorf("center changed to %+v", center)
	}
}

// TestHalfThicknessMaximum checks the distribution peaks near 30% chord.
func TestHalfThicknessMaximum(t *testing.T) {
	s := Spec{Chord: 1, Thickness: 1}
	peak := s.HalfThickness(0.3)
	if math.Abs(peak-0.1) > 0.001 {
		t.Errorf("HalfThickness(0.3) = %.4f, want ~0.1", peak)
	}
	if s.HalfThickness(0.1) >= peak || s.HalfThickness(0.6) >= peak {
		t.Error("expected the thickness peak near 30% chord")
	}
}

// TestRotateAboutIdentity verifies a zero rotation is the identity.
func TestRotateAboutIdentity(t *testing.T) {
	points := BaseProfile(DefaultSpec(), Pt(600, 400))
	pivots := []Point{Pt(0, 0), Pt(640, 400), Pt(-1e3, 7.5)}

	for _, pivot := range pivots {
		rotated := RotateAbout(points, pivot, 0)
		if len(rotated) != len(points) {
			t.Fatalf("len = %d, want %d", len(rotated), len(points))
		}
		for i := range points {
			if rotated[i] != points[i] {
				t.Fatalf("pivot %+v point %d: got %+v, want %+v", pivot, i, rotated[i], points[i])
			}
		}
	}
}

// TestRotateAboutRoundTrip verifies rotating by -θ undoes a rotation by θ.
func TestRotateAboutRoundTrip(t *testing.T) {
	points := BaseProfile(DefaultSpec(), Pt(600, 400))
	angles := []float64{0.1, -0.35, math.Pi / 2, -math.Pi / 2, 2.5, 10}
	pivots := []Point{Pt(0, 0), Pt(640, 400), Pt(455, 409)}

	for _, angle := range angles {
		for _, pivot := range pivots {
			back := RotateAbout(RotateAbout(points, pivot, angle), pivot, -angle)
			for i := range points {
				if points[i].Distance(back[i]) > 1e-9 {
					t.Fatalf("angle %v pivot %+v point %d: got %+v, want %+v",
						angle, pivot, i, back[i], points[i])
				}
			}
		}
	}
}

// TestRotateAboutPivot checks rotation is about the pivot, not the origin.
func TestRotateAboutPivot(t *testing.T) {
	pivot := Pt(10, 10)
	got := RotateAbout(Profile{Pt(11, 10), pivot}, pivot, math.Pi/2)

	if got[0].Distance(Pt(10, 11)) > 1e-12 {
		t.Errorf("rotated point = %+v, want (10, 11)", got[0])
	}
	if got[1] != pivot {
		t.Errorf("pivot moved to %+v", got[1])
	}
}

// TestRotateAboutDoesNotMutateInput ensures the input slice is untouched.
func TestRotateAboutDoesNotMutateInput(t *testing.T) {
	in := Profile{Pt(1, 2), Pt(3, 4)}
	_ = RotateAbout(in, Pt(0, 0), 1)
	if in[0] != Pt(1, 2) || in[1] != Pt(3, 4) {
		t.Errorf("input modified: %+v", in)
	}
}

// TestNewSpecValidation covers the DomainError paths.
func TestNewSpecValidation(t *testing.T) {
	tests := []struct {
		name      string
		chord     float64
		thickness float64
		wantField string
	}{
		{name: "Valid", chord: 200, thickness: 30},
		{name: "Zero chord", chord: 0, thickness: 30, wantField: "chord"},
		{name: "Negative thickness", chord: 200, thickness: -1, wantField: "thickness"},
		{name: "NaN chord", chord: math.NaN(), thickness: 30, wantField: "chord"},
		{name: "Infinite thickness", chord: 200, thickness: math.Inf(1), wantField: "thickness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewSpec(tt.chord, tt.thickness)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if spec.Chord != tt.chord || spec.Thickness != tt.thickness {
					t.Errorf("spec = %+v", spec)
				}
				return
			}

			de, ok := IsDomainError(err)
			if !ok {
				t.Fatalf("expected DomainError, got %v", err)
			}
			if de.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", de.Field, tt.wantField)
			}
		})
	}
}

// TestProfileHelpers exercises slicing and summary helpers.
func TestProfileHelpers(t *testing.T) {
	p := Profile{Pt(0, 0), Pt(4, 0), Pt(4, 2), Pt(0, 2)}

	if got := p.DropTail(1); len(got) != 3 {
		t.Errorf("DropTail(1) len = %d, want 3", len(got))
	}
	if got := p.DropTail(10); len(got) != 0 {
		t.Errorf("DropTail(10) len = %d, want 0", len(got))
	}
	if got := p.Tail(2); len(got) != 2 || got[0] != Pt(4, 2) {
		t.Errorf("Tail(2) = %+v", got)
	}
	if c := p.Centroid(); c != Pt(2, 1) {
		t.Errorf("Centroid = %+v, want (2, 1)", c)
	}
	lo, hi := p.Bounds()
	if lo != Pt(0, 0) || hi != Pt(4, 2) {
		t.Errorf("Bounds = %+v %+v", lo, hi)
	}
	if got := p.MaxSegment(); got != 4 {
		t.Errorf("MaxSegment = %v, want 4", got)
	}
	if got := Concat(p[:1], p[2:]); len(got) != 3 || got[1] != Pt(4, 2) {
		t.Errorf("Concat = %+v", got)
	}
	if (Profile{Pt(math.NaN(), 0)}).IsFinite() {
		t.Error("expected NaN profile to be reported as non-finite")
	}
}

func TestProfileContains(t *testing.T) {
	square := Profile{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	wing := BaseProfile(DefaultSpec(), Pt(600, 400))

	tests := []struct {
		name    string
		profile Profile
		q       Point
		want    bool
	}{
		{"square centre", square, Pt(5, 5), true},
		{"square outside", square, Pt(15, 5), false},
		{"wing mid-chord", wing, Pt(600, 400), true},
		{"wing above", wing, Pt(600, 380), false},
		{"wing upstream", wing, Pt(490, 400), false},
		{"empty", nil, Pt(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Contains(tt.q); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}
