package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/flap"
)

// Terminal cells are roughly twice as tall as they are wide
const aspectRatio = 0.5

// PreviewView is a custom tview primitive that animates the selected
// device's deployment.
type PreviewView struct {
	*tview.Box
	app *App
}

// NewPreviewView creates the geometry preview
func NewPreviewView(app *App) *PreviewView {
	pv := &PreviewView{
		Box: tview.NewBox(),
		app: app,
	}
	pv.SetBorder(true).SetTitle(" Geometry ")
	return pv
}

// Draw renders the device outline and hinges using tcell
func (pv *PreviewView) Draw(screen tcell.Screen) {
	pv.Box.DrawForSubclass(screen, pv)
	x, y, width, height := pv.GetInnerRect()
	if width < 4 || height < 2 {
		return
	}

	v, deployment := pv.app.deployment()
	d, err := flap.New(v, pv.app.spec)
	if err != nil {
		return
	}
	center := airfoil.Pt(0, 0)
	profile := d.Geometry(center, deployment)
	hinges := d.Hinges(center, deployment)

	proj := newProjection(profile, width, height)

	wingStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	hingeStyle := tcell.StyleDefault.Foreground(tcell.ColorOrange)
	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for i := range profile {
		a := proj.apply(profile[i])
		b := proj.apply(profile[(i+1)%len(profile)])
		// Segments between separate elements are skipped
		if profile[i].Distance(profile[(i+1)%len(profile)]) > pv.app.spec.Chord/4 {
			continue
		}
		drawLine(screen, x+a.X, y+a.Y, x+b.X, y+b.Y, '█', wingStyle)
	}
	for _, h := range hinges {
		p := proj.apply(h)
		screen.SetContent(x+p.X, y+p.Y, '●', nil, hingeStyle)
	}

	label := v.String() + "  " + formatDeg(deployment)
	for i, ch := range label {
		if i >= width {
			break
		}
		screen.SetContent(x+i, y, ch, nil, labelStyle)
	}
}

// cellPoint is a position in terminal cells
type cellPoint struct {
	X, Y int
}

// projection maps profile coordinates to cells, fitting the outline into
// the rect with aspect correction.
type projection struct {
	lo    airfoil.Point
	scale float64
	offX  float64
	offY  float64
}

func newProjection(profile airfoil.Profile, width, height int) projection {
	lo, hi := profile.Bounds()
	spanX := math.Max(hi.X-lo.X, 1)
	spanY := math.Max(hi.Y-lo.Y, 1)

	// One cell in x covers aspectRatio as much as one cell in y
	scale := math.Min(float64(width-2)/spanX, float64(height-2)/(spanY*aspectRatio))
	return projection{
		lo:    lo,
		scale: scale,
		offX:  (float64(width) - spanX*scale) / 2,
		offY:  (float64(height) - spanY*scale*aspectRatio) / 2,
	}
}

func (p projection) apply(pt airfoil.Point) cellPoint {
	return cellPoint{
		X: int(math.Round(p.offX + (pt.X-p.lo.X)*p.scale)),
		Y: int(math.Round(p.offY + (pt.Y-p.lo.Y)*p.scale*aspectRatio)),
	}
}

// drawLine draws a line using Bresenham's algorithm
func drawLine(screen tcell.Screen, x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		screen.SetContent(x0, y0, ch, nil, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func formatDeg(rad float64) string {
	return fmt.Sprintf("%+.1f°", rad*airfoil.RadiansToDegrees)
}
