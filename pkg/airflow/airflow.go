// Package airflow runs the particle animation shown around a deploying
// high-lift device. A Session owns all mutable state; it is not safe for
// concurrent use and is meant to be stepped from a single UI loop.
package airflow

import (
	"fmt"
	"math"

	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

// Thermal state of undisturbed and deflected air.
const (
	TemperatureMin = 15.0 // °C, freestream
	TemperatureMax = 35.0 // °C, lower surface

	UpperTemperature = TemperatureMin - 5
	UpperPressure    = 0.8
	LowerTemperature = TemperatureMax
	LowerPressure    = 1.2
	AmbientPressure  = 1.0
)

// KnotsPerPixel converts airspeed to particle speed in pixels per frame.
const KnotsPerPixel = 36.0

// Config sizes the simulated window and the animation.
type Config struct {
	Width  float64
	Height float64

	// Spacing is the particle grid pitch in pixels
	Spacing float64

	// InfluenceRadius is the distance from the wing centroid within which
	// particles are deflected
	InfluenceRadius float64

	AirspeedKts  float64
	AirspeedMin  float64
	AirspeedMax  float64
	AirspeedStep float64

	// AmplitudeDeg is the peak deployment; deployment follows
	// AmplitudeDeg·sin(phase)
	AmplitudeDeg float64
}

// DefaultConfig returns the 1200×800 window with 180 kt airflow.
func DefaultConfig() Config {
	return Config{
		Width:           1200,
		Height:          800,
		Spacing:         40,
		InfluenceRadius: 150,
		AirspeedKts:     180,
		AirspeedMin:     0,
		AirspeedMax:     500,
		AirspeedStep:    10,
		AmplitudeDeg:    20,
	}
}

// Validate checks the window and speed bounds.
func (c Config) Validate() error {
	if err := airfoil.Positive("width", c.Width); err != nil {
		return err
	}
	if err := airfoil.Positive("height", c.Height); err != nil {
		return err
	}
	if err := airfoil.Positive("spacing", c.Spacing); err != nil {
		return err
	}
	if err := airfoil.Positive("influence radius", c.InfluenceRadius); err != nil {
		return err
	}
	if c.AirspeedMin > c.AirspeedMax {
		return fmt.Errorf("airspeed min %.0f exceeds max %.0f", c.AirspeedMin, c.AirspeedMax)
	}
	return airfoil.Finite("amplitude", c.AmplitudeDeg)
}

// Particle is one tracer of the flow field.
type Particle struct {
	Pos         airfoil.Point
	Velocity    airfoil.Point
	Temperature float64
	Pressure    float64
}

// Session is the state of one animation: selected device, airspeed, phase
// and particles.
type Session struct {
	cfg    Config
	spec   airfoil.Spec
	device flap.Device

	airspeed   float64
	phase      float64 // degrees, [0, 360)
	deployment float64 // radians
	frame      int
	paused     bool

	particles []Particle
	geometry  airfoil.Profile
}

// NewSession starts an animation of v.
func NewSession(cfg Config, spec airfoil.Spec, v flap.Variant) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, spec: spec}
	if err := s.Select(v); err != nil {
		return nil, err
	}
	return s, nil
}

// Select switches to v and resets the animation.
func (s *Session) Select(v flap.Variant) error {
	d, err := flap.New(v, s.spec)
	if err != nil {
		return err
	}
	s.device = d
	s.Reset()
	return nil
}

// Reset restores the initial airspeed, phase and particle grid.
func (s *Session) Reset() {
	s.airspeed = clamp(s.cfg.AirspeedKts, s.cfg.AirspeedMin, s.cfg.AirspeedMax)
	s.phase = 0
	s.deployment = 0
	s.frame = 0
	s.particles = s.newParticles()
	s.geometry = s.device.Geometry(s.Center(), 0)
}

func (s *Session) newParticles() []Particle {
	sp := s.cfg.Spacing
	rows := int(s.cfg.Height / sp)
	cols := int(s.cfg.Width/sp) + 2

	particles := make([]Particle, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			particles = append(particles, s.freshParticle(airfoil.Pt(float64(j)*sp-sp, float64(i)*sp+100)))
		}
	}
	return particles
}

func (s *Session) freshParticle(pos airfoil.Point) Particle {
	return Particle{
		Pos:         pos,
		Velocity:    airfoil.Pt(s.PixelSpeed(), 0),
		Temperature: TemperatureMin,
		Pressure:    AmbientPressure,
	}
}

// Step advances one frame: computes the deployment for the current phase,
// rebuilds the geometry, moves the particles and advances the phase by 1°.
// A paused session returns the current geometry unchanged.
func (s *Session) Step() airfoil.Profile {
	if s.paused {
		return s.geometry
	}

	s.deployment = DeploymentAt(s.phase, s.cfg.AmplitudeDeg)
	s.geometry = s.device.Geometry(s.Center(), s.deployment)
	s.advect(s.geometry.Centroid())

	s.phase = math.Mod(s.phase+1, 360)
	s.frame++
	return s.geometry
}

// advect moves every particle and applies the wing's influence.
func (s *Session) advect(center airfoil.Point) {
	speed := s.PixelSpeed()
	for i := range s.particles {
		p := &s.particles[i]
		p.Pos = p.Pos.Add(p.Velocity)

		if p.Pos.X > s.cfg.Width {
			*p = s.freshParticle(airfoil.Pt(-s.cfg.Spacing, p.Pos.Y))
		}

		if p.Pos.Distance(center) >= s.cfg.InfluenceRadius {
			continue
		}

		dy := p.Pos.Y - center.Y
		heading := Deflection(s.deployment, dy) * airfoil.DegreesToRadians
		sin, cos := math.Sincos(heading)
		p.Velocity = airfoil.Pt(speed*cos, speed*sin)

		// Screen y grows downward, so negative dy is above the wing
		if dy < 0 {
			p.Temperature, p.Pressure = UpperTemperature, UpperPressure
		} else {
			p.Temperature, p.Pressure = LowerTemperature, LowerPressure
		}
	}
}

// DeploymentAt returns the deployment angle in radians at phase degrees.
func DeploymentAt(phaseDeg, amplitudeDeg float64) float64 {
	return amplitudeDeg * math.Sin(phaseDeg*airfoil.DegreesToRadians) * airfoil.DegreesToRadians
}

// Deflection returns the flow heading in degrees for a particle dy pixels
// below the wing centroid. It decays with vertical distance.
func Deflection(deployment, dy float64) float64 {
	return 20 * math.Sin(deployment) * math.Exp(-math.Abs(dy)/100)
}

// IncreaseAirspeed raises the airspeed one step, up to the maximum.
func (s *Session) IncreaseAirspeed() {
	s.airspeed = math.Min(s.airspeed+s.cfg.AirspeedStep, s.cfg.AirspeedMax)
}

// DecreaseAirspeed lowers the airspeed one step, down to the minimum.
func (s *Session) DecreaseAirspeed() {
	s.airspeed = math.Max(s.airspeed-s.cfg.AirspeedStep, s.cfg.AirspeedMin)
}

// TogglePause freezes or resumes the animation.
func (s *Session) TogglePause() {
	s.paused = !s.paused
}

func (s *Session) Paused() bool {
	return s.paused
}

func (s *Session) Airspeed() float64 {
	return s.airspeed
}

func (s *Session) Phase() float64 {
	return s.phase
}

func (s *Session) Deployment() float64 {
	return s.deployment
}

func (s *Session) Frame() int {
	return s.frame
}

func (s *Session) Variant() flap.Variant {
	return s.device.Variant()
}

func (s *Session) Config() Config {
	return s.cfg
}

// PixelSpeed is the particle speed in pixels per frame.
func (s *Session) PixelSpeed() float64 {
	return s.airspeed / KnotsPerPixel
}

// Center is where the wing is drawn: the middle of the window.
func (s *Session) Center() airfoil.Point {
	return airfoil.Pt(math.Floor(s.cfg.Width/2), math.Floor(s.cfg.Height/2))
}

// Geometry returns the profile computed by the last Step or Reset.
func (s *Session) Geometry() airfoil.Profile {
	return s.geometry
}

// Particles returns the live particle slice. Callers must not modify it.
func (s *Session) Particles() []Particle {
	return s.particles
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
