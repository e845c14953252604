// Package render rasterizes device geometry and the airflow field to images
// with gogpu/gg.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

// Palette holds the colours of a frame.
type Palette struct {
	Background gg.RGBA
	Wing       gg.RGBA
	Hinge      gg.RGBA
}

// DefaultPalette is a light wing on a dark blue-grey background.
var DefaultPalette = Palette{
	Background: gg.RGB(20.0/255, 20.0/255, 30.0/255),
	Wing:       gg.RGB(200.0/255, 200.0/255, 200.0/255),
	Hinge:      gg.RGB(1, 0.6, 0.1),
}

// ArrowLineWidth is the stroke width of flow arrows.
const ArrowLineWidth = 2.0

// Profile fills p as a closed polygon.
func Profile(dc *gg.Context, p airfoil.Profile, col gg.RGBA) error {
	if len(p) < 3 {
		return fmt.Errorf("profile needs at least 3 points, got %d", len(p))
	}

	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.MoveTo(p[0].X, p[0].Y)
	for _, pt := range p[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.ClosePath()
	return dc.Fill()
}

// Hinges marks pivot points with small discs.
func Hinges(dc *gg.Context, pts []airfoil.Point, col gg.RGBA) error {
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	for _, h := range pts {
		dc.DrawCircle(h.X, h.Y, 3)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// Arrow strokes the shaft and fills the head of one flow arrow.
func Arrow(dc *gg.Context, a airflow.Arrow, col color.RGBA) error {
	dc.SetColor(col)
	dc.SetLineWidth(ArrowLineWidth)
	dc.DrawLine(a.Start.X, a.Start.Y, a.End.X, a.End.Y)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.MoveTo(a.HeadLeft.X, a.HeadLeft.Y)
	dc.LineTo(a.End.X, a.End.Y)
	dc.LineTo(a.HeadRight.X, a.HeadRight.Y)
	dc.ClosePath()
	return dc.Fill()
}

// Airflow draws every particle of the session as a coloured arrow.
func Airflow(dc *gg.Context, particles []airflow.Particle) error {
	for _, p := range particles {
		if err := Arrow(dc, p.Arrow(), p.Color()); err != nil {
			return err
		}
	}
	return nil
}

// Frame draws the session's current state: background, wing, then flow.
// The session's window is scaled to the context size.
func Frame(dc *gg.Context, s *airflow.Session, pal Palette) error {
	cfg := s.Config()
	dc.ClearWithColor(pal.Background)

	dc.Push()
	defer dc.Pop()
	dc.Scale(float64(dc.Width())/cfg.Width, float64(dc.Height())/cfg.Height)

	if err := Profile(dc, s.Geometry(), pal.Wing); err != nil {
		return fmt.Errorf("failed to draw wing: %w", err)
	}
	if err := Airflow(dc, s.Particles()); err != nil {
		return fmt.Errorf("failed to draw airflow: %w", err)
	}
	return nil
}

// Snapshot renders the session to a width×height image.
func Snapshot(s *airflow.Session, width, height int) (image.Image, error) {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if err := Frame(dc, s, DefaultPalette); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SaveSnapshot renders the session to a PNG file.
func SaveSnapshot(s *airflow.Session, width, height int, path string) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if err := Frame(dc, s, DefaultPalette); err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Device draws one device, centred, with its hinge points.
func Device(dc *gg.Context, d flap.Device, deployment float64, pal Palette) error {
	center := airfoil.Pt(float64(dc.Width()/2), float64(dc.Height()/2))

	dc.ClearWithColor(pal.Background)
	if err := Profile(dc, d.Geometry(center, deployment), pal.Wing); err != nil {
		return fmt.Errorf("failed to draw %s: %w", d.Variant(), err)
	}
	return Hinges(dc, d.Hinges(center, deployment), pal.Hinge)
}

// SaveVariantSnapshots writes <stem>.png for every device at the given
// deployment in radians and returns the paths in variant order.
func SaveVariantSnapshots(dir string, spec airfoil.Spec, deployment float64, width, height int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	devices, err := flap.NewAll(spec)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(devices))
	for _, d := range devices {
		path := filepath.Join(dir, d.Variant().FileStem()+".png")
		if err := saveDevice(d, deployment, width, height, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveDevice(d flap.Device, deployment float64, width, height int, path string) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if err := Device(dc, d, deployment, DefaultPalette); err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
