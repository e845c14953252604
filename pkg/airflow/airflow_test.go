package airflow

import (
	"math"
	"testing"

	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

const tolerance = 1e-9

func newTestSession(t *testing.T, v flap.Variant) *Session {
	t.Helper()
	s, err := NewSession(DefaultConfig(), airfoil.DefaultSpec(), v)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, flap.Plain)

	if got := len(s.Particles()); got != 20*32 {
		t.Errorf("particle count = %d, want 640", got)
	}
	first := s.Particles()[0]
	if first.Pos != airfoil.Pt(-40, 100) {
		t.Errorf("first particle at %v, want (-40, 100)", first.Pos)
	}
	if math.Abs(first.Velocity.X-5) > tolerance || first.Velocity.Y != 0 {
		t.Errorf("initial velocity = %v, want (5, 0)", first.Velocity)
	}
	if first.Temperature != TemperatureMin || first.Pressure != AmbientPressure {
		t.Errorf("initial thermal state = %v/%v", first.Temperature, first.Pressure)
	}
	if s.Airspeed() != 180 {
		t.Errorf("airspeed = %v, want 180", s.Airspeed())
	}
	if s.Center() != airfoil.Pt(600, 400) {
		t.Errorf("center = %v, want (600, 400)", s.Center())
	}
}

func TestNewSessionRejectsBadInput(t *testing.T) {
	if _, err := NewSession(DefaultConfig(), airfoil.DefaultSpec(), flap.Variant(42)); err == nil {
		t.Error("expected error for unknown variant")
	}

	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := NewSession(cfg, airfoil.DefaultSpec(), flap.Plain); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestStepAdvancesPhase(t *testing.T) {
	s := newTestSession(t, flap.Fowler)

	for i := 0; i < 90; i++ {
		s.Step()
	}
	if s.Phase() != 90 || s.Frame() != 90 {
		t.Errorf("phase/frame = %v/%v, want 90/90", s.Phase(), s.Frame())
	}
	// Deployment is computed from the phase before it advances
	want := DeploymentAt(89, 20)
	if math.Abs(s.Deployment()-want) > tolerance {
		t.Errorf("deployment = %v, want %v", s.Deployment(), want)
	}

	for i := 0; i < 270; i++ {
		s.Step()
	}
	if s.Phase() != 0 {
		t.Errorf("phase should wrap to 0, got %v", s.Phase())
	}
}

func TestStepWrapsParticles(t *testing.T) {
	s := newTestSession(t, flap.Plain)

	// Column 31 starts at x = 1200 and leaves the window on the first frame
	idx := 31
	s.Step()
	p := s.Particles()[idx]
	if p.Pos.X != -40 {
		t.Errorf("wrapped particle x = %v, want -40", p.Pos.X)
	}
	if p.Pos.Y != 100 {
		t.Errorf("wrapped particle y = %v, want 100", p.Pos.Y)
	}
}

func TestStepThermalState(t *testing.T) {
	s := newTestSession(t, flap.Plain)
	s.Step()

	cols := 32
	tests := []struct {
		name      string
		row, col  int
		wantTemp  float64
		wantPress float64
	}{
		{"above the wing", 7, 16, UpperTemperature, UpperPressure},
		{"below the wing", 8, 16, LowerTemperature, LowerPressure},
		{"far above", 0, 16, TemperatureMin, AmbientPressure},
		{"far upstream", 7, 2, TemperatureMin, AmbientPressure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.Particles()[tt.row*cols+tt.col]
			if p.Temperature != tt.wantTemp || p.Pressure != tt.wantPress {
				t.Errorf("particle at %v: thermal = %v/%v, want %v/%v",
					p.Pos, p.Temperature, p.Pressure, tt.wantTemp, tt.wantPress)
			}
		})
	}
}

func TestDeflection(t *testing.T) {
	amplitude := 20 * airfoil.DegreesToRadians

	tests := []struct {
		name       string
		deployment float64
		dy         float64
		want       float64
	}{
		{"retracted", 0, 0, 0},
		{"full deployment at centre", amplitude, 0, 20 * math.Sin(amplitude)},
		{"decays with distance", amplitude, 100, 20 * math.Sin(amplitude) / math.E},
		{"symmetric", amplitude, -100, 20 * math.Sin(amplitude) / math.E},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Deflection(tt.deployment, tt.dy); math.Abs(got-tt.want) > tolerance {
				t.Errorf("Deflection(%v, %v) = %v, want %v", tt.deployment, tt.dy, got, tt.want)
			}
		})
	}

	if got := DeploymentAt(90, 20); math.Abs(got-amplitude) > tolerance {
		t.Errorf("DeploymentAt(90, 20) = %v, want %v", got, amplitude)
	}
	if got := DeploymentAt(270, 20); math.Abs(got+amplitude) > tolerance {
		t.Errorf("DeploymentAt(270, 20) = %v, want %v", got, -amplitude)
	}
}

func TestAirspeedControls(t *testing.T) {
	s := newTestSession(t, flap.Plain)

	s.IncreaseAirspeed()
	if s.Airspeed() != 190 {
		t.Errorf("airspeed = %v, want 190", s.Airspeed())
	}
	if math.Abs(s.PixelSpeed()-190.0/36) > tolerance {
		t.Errorf("pixel speed = %v, want %v", s.PixelSpeed(), 190.0/36)
	}

	for i := 0; i < 100; i++ {
		s.IncreaseAirspeed()
	}
	if s.Airspeed() != 500 {
		t.Errorf("airspeed should cap at 500, got %v", s.Airspeed())
	}

	for i := 0; i < 100; i++ {
		s.DecreaseAirspeed()
	}
	if s.Airspeed() != 0 {
		t.Errorf("airspeed should floor at 0, got %v", s.Airspeed())
	}
}

func TestSelectResets(t *testing.T) {
	s := newTestSession(t, flap.Plain)
	s.IncreaseAirspeed()
	for i := 0; i < 10; i++ {
		s.Step()
	}

	if err := s.Select(flap.Krueger); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if s.Variant() != flap.Krueger {
		t.Errorf("variant = %v, want Krueger", s.Variant())
	}
	if s.Airspeed() != 180 || s.Phase() != 0 || s.Frame() != 0 {
		t.Errorf("session not reset: airspeed=%v phase=%v frame=%v", s.Airspeed(), s.Phase(), s.Frame())
	}
	if s.Particles()[0].Pos != airfoil.Pt(-40, 100) {
		t.Errorf("particles not reset, first at %v", s.Particles()[0].Pos)
	}

	if err := s.Select(flap.Variant(0)); err == nil {
		t.Error("expected error selecting invalid variant")
	}
	if s.Variant() != flap.Krueger {
		t.Error("failed Select should keep the current device")
	}
}

func TestPause(t *testing.T) {
	s := newTestSession(t, flap.ZapFlap)
	s.Step()
	s.TogglePause()

	before := s.Particles()[0].Pos
	s.Step()
	if s.Frame() != 1 || s.Particles()[0].Pos != before {
		t.Error("paused session should not advance")
	}

	s.TogglePause()
	s.Step()
	if s.Frame() != 2 {
		t.Errorf("frame = %d after resume, want 2", s.Frame())
	}
}

func TestColor(t *testing.T) {
	cold := Color(TemperatureMin, AmbientPressure)
	if cold.R != 51 || cold.G != 0 || cold.B != 255 {
		t.Errorf("cold colour = %v, want {51 0 255}", cold)
	}

	hot := Color(TemperatureMax, LowerPressure)
	if hot.R != 255 || hot.G != 0 || hot.B != 0 {
		t.Errorf("hot colour = %v, want {255 0 0}", hot)
	}

	// Upper-surface air is colder than the range and clamps to blue
	if Color(UpperTemperature, UpperPressure).B <= Color(UpperTemperature, UpperPressure).R {
		t.Error("upper surface colour should be blue dominated")
	}

	mid := Color(25, 1)
	if mid.G <= mid.R || mid.G <= mid.B {
		t.Errorf("mid-range colour should be green dominated, got %v", mid)
	}

	if h := Hue(100); h != 0 {
		t.Errorf("Hue should clamp to 0 above range, got %v", h)
	}
}

func TestArrow(t *testing.T) {
	p := Particle{Pos: airfoil.Pt(0, 0), Velocity: airfoil.Pt(5, 0)}
	a := p.Arrow()

	if a.End != airfoil.Pt(20, 0) {
		t.Errorf("arrow end = %v, want (20, 0)", a.End)
	}

	headX := 20 - 10*math.Cos(math.Pi/6)
	if math.Abs(a.HeadLeft.X-headX) > tolerance || math.Abs(a.HeadLeft.Y-5) > tolerance {
		t.Errorf("left head = %v, want (%v, 5)", a.HeadLeft, headX)
	}
	if math.Abs(a.HeadRight.X-headX) > tolerance || math.Abs(a.HeadRight.Y+5) > tolerance {
		t.Errorf("right head = %v, want (%v, -5)", a.HeadRight, headX)
	}
}
