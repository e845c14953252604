package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
)

// Minimum field size in terminal cells
const (
	minFieldCols = 60
	minFieldRows = 20
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellWing
	cellFlow
)

type cell struct {
	kind  cellKind
	glyph rune
	color color.RGBA
}

// rasterize samples the session's window onto a cols×rows character grid.
// Wing cells win over particles. A cell is wing if it holds a vertex of the
// outline or its centre lies inside, so thin sections stay visible.
func rasterize(s *airflow.Session, cols, rows int) [][]cell {
	cfg := s.Config()
	sx := cfg.Width / float64(cols)
	sy := cfg.Height / float64(rows)

	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}

	for _, p := range s.Particles() {
		c := int(math.Floor(p.Pos.X / sx))
		r := int(math.Floor(p.Pos.Y / sy))
		if c < 0 || c >= cols || r < 0 || r >= rows {
			continue
		}
		grid[r][c] = cell{kind: cellFlow, glyph: headingGlyph(p.Velocity), color: p.Color()}
	}

	wing := s.Geometry()
	for _, pt := range wing {
		c := int(math.Floor(pt.X / sx))
		r := int(math.Floor(pt.Y / sy))
		if c >= 0 && c < cols && r >= 0 && r < rows {
			grid[r][c] = cell{kind: cellWing, glyph: '█'}
		}
	}

	lo, hi := wing.Bounds()
	for r := int(lo.Y / sy); r <= int(hi.Y/sy) && r < rows; r++ {
		for c := int(lo.X / sx); c <= int(hi.X/sx) && c < cols; c++ {
			if r < 0 || c < 0 {
				continue
			}
			center := airfoil.Pt((float64(c)+0.5)*sx, (float64(r)+0.5)*sy)
			if wing.Contains(center) {
				grid[r][c] = cell{kind: cellWing, glyph: '█'}
			}
		}
	}
	return grid
}

// headingGlyph picks an arrow for a screen-space velocity (y down).
func headingGlyph(v airfoil.Point) rune {
	deg := math.Atan2(v.Y, v.X) * airfoil.RadiansToDegrees
	switch {
	case v.X == 0 && v.Y == 0:
		return '·'
	case deg > 5:
		return '↘'
	case deg < -5:
		return '↗'
	default:
		return '→'
	}
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderField draws the grid inside a border.
func renderField(grid [][]cell) string {
	var b strings.Builder
	if len(grid) == 0 {
		return ""
	}
	cols := len(grid[0])

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	wingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	b.WriteString(borderStyle.Render("┌" + strings.Repeat("─", cols) + "┐"))
	b.WriteString("\n")
	for _, row := range grid {
		b.WriteString(borderStyle.Render("│"))
		for _, c := range row {
			switch c.kind {
			case cellWing:
				b.WriteString(wingStyle.Render(string(c.glyph)))
			case cellFlow:
				b.WriteString(lipgloss.NewStyle().Foreground(hexColor(c.color)).Render(string(c.glyph)))
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteString(borderStyle.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(borderStyle.Render("└" + strings.Repeat("─", cols) + "┘"))
	return b.String()
}
