package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/unklstewy/flapsim/pkg/aero"
	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Wing     WingConfig     `json:"wing"`
	Airfoil  AirfoilConfig  `json:"airfoil"`
	Sweep    SweepConfig    `json:"sweep"`
	Output   OutputConfig   `json:"output"`
	Viewer   ViewerConfig   `json:"viewer"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	// Enabled determines if sweep results are persisted
	Enabled bool `json:"enabled"`

	// Driver is the database/sql driver name; empty means postgres
	Driver string `json:"driver"`

	// Host is the database server hostname
	Host string `json:"host"`

	// Port is the database server port
	Port int `json:"port"`

	// Database is the database name
	Database string `json:"database"`

	// Username for database authentication
	Username string `json:"username"`

	// Password for database authentication (should be loaded from environment)
	Password string `json:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// WingConfig is the planform used by the force models.
type WingConfig struct {
	// Span in meters
	Span float64 `json:"span"`

	// Chord in meters
	Chord float64 `json:"chord"`

	// ThicknessRatio is maximum thickness over chord (0.12 = 12%)
	ThicknessRatio float64 `json:"thickness_ratio"`
}

// AirfoilConfig is the drawn section in pixels.
type AirfoilConfig struct {
	Chord     float64 `json:"chord"`
	Thickness float64 `json:"thickness"`
}

// SweepConfig controls the angle-of-attack sweep and model selection.
type SweepConfig struct {
	// StartDeg is the first angle of attack
	StartDeg float64 `json:"start_deg"`

	// StopDeg is the exclusive upper bound
	StopDeg float64 `json:"stop_deg"`

	// StepDeg is the angle increment
	StepDeg float64 `json:"step_deg"`

	// Reynolds is the freestream Reynolds number
	Reynolds float64 `json:"reynolds"`

	// ForceModel is the default model: "baseline" or "slat-flap"
	ForceModel string `json:"force_model"`

	// ModelOverrides maps a device slug (e.g. "krueger") to a model name
	ModelOverrides map[flap.Variant]string `json:"model_overrides,omitempty"`
}

// OutputConfig controls where artifacts are written and their sizes.
type OutputConfig struct {
	// Dir is the root output directory; data/, tables/ and images/ live below it
	Dir string `json:"dir"`

	// PlotWidth and PlotHeight are in inches
	PlotWidth  float64 `json:"plot_width"`
	PlotHeight float64 `json:"plot_height"`

	// RenderWidth and RenderHeight are in pixels
	RenderWidth  int `json:"render_width"`
	RenderHeight int `json:"render_height"`
}

// ViewerConfig contains interactive viewer settings.
type ViewerConfig struct {
	// FPS is the animation frame rate
	FPS int `json:"fps"`

	// AirspeedKts is the initial and reset airspeed
	AirspeedKts float64 `json:"airspeed_kts"`

	AirspeedMin  float64 `json:"airspeed_min"`
	AirspeedMax  float64 `json:"airspeed_max"`
	AirspeedStep float64 `json:"airspeed_step"`

	// AmplitudeDeg is the peak deployment angle of the animation
	AmplitudeDeg float64 `json:"amplitude_deg"`

	// Width and Height are the simulated window size in pixels
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted sections keep sensible values
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	wing := aero.DefaultWing()
	spec := airfoil.DefaultSpec()

	return &Config{
		Database: DatabaseConfig{
			Enabled:      false,
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			Database:     "flapsim",
			Username:     "flapsim",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Wing: WingConfig{
			Span:           wing.Span,
			Chord:          wing.Chord,
			ThicknessRatio: wing.ThicknessRatio,
		},
		Airfoil: AirfoilConfig{
			Chord:     spec.Chord,
			Thickness: spec.Thickness,
		},
		Sweep: SweepConfig{
			StartDeg:   sweep.DefaultStart,
			StopDeg:    sweep.DefaultStop,
			StepDeg:    sweep.DefaultStep,
			Reynolds:   sweep.DefaultReynolds,
			ForceModel: aero.ModelBaseline,
		},
		Output: OutputConfig{
			Dir:          "output",
			PlotWidth:    10,
			PlotHeight:   6,
			RenderWidth:  1200,
			RenderHeight: 800,
		},
		Viewer: ViewerConfig{
			FPS:          60,
			AirspeedKts:  180,
			AirspeedMin:  0,
			AirspeedMax:  500,
			AirspeedStep: 10,
			AmplitudeDeg: 20,
			Width:        1200,
			Height:       800,
		},
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := c.Wing.Wing(); err != nil {
		return fmt.Errorf("wing: %w", err)
	}
	if _, err := c.Airfoil.Spec(); err != nil {
		return fmt.Errorf("airfoil: %w", err)
	}
	if _, err := c.Sweep.Angles(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if err := airfoil.Positive("reynolds", c.Sweep.Reynolds); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if _, err := c.Selector(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output: dir is required")
	}
	if c.Output.RenderWidth <= 0 || c.Output.RenderHeight <= 0 {
		return fmt.Errorf("output: render size must be positive, got %dx%d", c.Output.RenderWidth, c.Output.RenderHeight)
	}
	if c.Output.PlotWidth <= 0 || c.Output.PlotHeight <= 0 {
		return fmt.Errorf("output: plot size must be positive")
	}
	if c.Viewer.FPS <= 0 {
		return fmt.Errorf("viewer: fps must be positive, got %d", c.Viewer.FPS)
	}
	if c.Viewer.AirspeedMin > c.Viewer.AirspeedMax {
		return fmt.Errorf("viewer: airspeed_min %.0f exceeds airspeed_max %.0f", c.Viewer.AirspeedMin, c.Viewer.AirspeedMax)
	}
	if err := c.Viewer.Airflow().Validate(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// Wing converts the section to the force-model planform.
func (w WingConfig) Wing() (aero.Wing, error) {
	wing := aero.Wing{Span: w.Span, Chord: w.Chord, ThicknessRatio: w.ThicknessRatio}
	return wing, wing.Validate()
}

// Spec converts the section to a validated airfoil spec.
func (a AirfoilConfig) Spec() (airfoil.Spec, error) {
	return airfoil.NewSpec(a.Chord, a.Thickness)
}

// Angles expands the configured range.
func (s SweepConfig) Angles() ([]float64, error) {
	return sweep.Angles(s.StartDeg, s.StopDeg, s.StepDeg)
}

// Selector builds the model selector from the sweep and wing sections.
func (c *Config) Selector() (*aero.Selector, error) {
	wing, err := c.Wing.Wing()
	if err != nil {
		return nil, err
	}
	return aero.NewSelector(c.Sweep.ForceModel, c.Sweep.ModelOverrides, wing)
}

// Airflow converts the viewer section to an animation config.
func (v ViewerConfig) Airflow() airflow.Config {
	cfg := airflow.DefaultConfig()
	cfg.Width = v.Width
	cfg.Height = v.Height
	cfg.AirspeedKts = v.AirspeedKts
	cfg.AirspeedMin = v.AirspeedMin
	cfg.AirspeedMax = v.AirspeedMax
	cfg.AirspeedStep = v.AirspeedStep
	cfg.AmplitudeDeg = v.AmplitudeDeg
	return cfg
}

// ConnectionString returns the lib/pq DSN for the database section.
func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode,
	)
}

// DataDir, TablesDir and ImagesDir are the artifact subdirectories.
func (o OutputConfig) DataDir() string {
	return filepath.Join(o.Dir, "data")
}

func (o OutputConfig) TablesDir() string {
	return filepath.Join(o.Dir, "tables")
}

func (o OutputConfig) ImagesDir() string {
	return filepath.Join(o.Dir, "images")
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// This allows sensitive data like passwords to be kept out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if dbPassword := os.Getenv("FLAPSIM_DB_PASSWORD"); dbPassword != "" {
		c.Database.Password = dbPassword
	}
	if dbHost := os.Getenv("FLAPSIM_DB_HOST"); dbHost != "" {
		c.Database.Host = dbHost
	}
	if dbPort := os.Getenv("FLAPSIM_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			c.Database.Port = port
		}
	}
	if outDir := os.Getenv("FLAPSIM_OUTPUT_DIR"); outDir != "" {
		c.Output.Dir = outDir
	}
	if model := os.Getenv("FLAPSIM_FORCE_MODEL"); model != "" {
		c.Sweep.ForceModel = model
	}
}
