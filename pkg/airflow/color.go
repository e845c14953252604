package airflow

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/unklstewy/flapsim/pkg/airfoil"
)

// Hue maps temperature to an HSV hue in turns: 0.7 (blue) at
// TemperatureMin down to 0 (red) at TemperatureMax. Out-of-range values are
// clamped.
func Hue(temperature float64) float64 {
	t := clamp(temperature, TemperatureMin, TemperatureMax)
	norm := (t - TemperatureMin) / (TemperatureMax - TemperatureMin)
	return (1 - norm) * 0.7
}

// Color returns the arrow colour of a particle with the given thermal state.
// Pressure above ambient saturates to full brightness.
func Color(temperature, pressure float64) color.RGBA {
	value := clamp(0.8+0.2*pressure, 0, 1)
	r, g, b := colorful.Hsv(Hue(temperature)*360, 1, value).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Color returns the particle's arrow colour.
func (p Particle) Color() color.RGBA {
	return Color(p.Temperature, p.Pressure)
}

// Arrow is a flow arrow: a shaft from Start to End and a head at End.
type Arrow struct {
	Start, End          airfoil.Point
	HeadLeft, HeadRight airfoil.Point
}

// ArrowHeadSize is the length of each head stroke in pixels.
const ArrowHeadSize = 10.0

// Arrow returns the particle's arrow, four frames of travel long.
func (p Particle) Arrow() Arrow {
	end := p.Pos.Add(airfoil.Pt(p.Velocity.X*4, p.Velocity.Y*4))
	angle := math.Atan2(end.Y-p.Pos.Y, end.X-p.Pos.X)

	head := func(offset float64) airfoil.Point {
		sin, cos := math.Sincos(angle + offset)
		return airfoil.Pt(end.X-ArrowHeadSize*cos, end.Y-ArrowHeadSize*sin)
	}

	return Arrow{
		Start:     p.Pos,
		End:       end,
		HeadLeft:  head(-math.Pi / 6),
		HeadRight: head(math.Pi / 6),
	}
}
