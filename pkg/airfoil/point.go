package airfoil

import "math"

// Point is an immutable 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Profile is an ordered outline of a closed polygon. Order matters: device
// generators slice trailing points off by index.
type Profile []Point

// Concat joins outlines in order into a new profile.
func Concat(parts ...Profile) Profile {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Profile, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// DropTail returns the profile without its last n points. It never returns
// fewer than zero points.
func (p Profile) DropTail(n int) Profile {
	if n >= len(p) {
		return Profile{}
	}
	return p[:len(p)-n]
}

// Tail returns the last n points of the profile.
func (p Profile) Tail(n int) Profile {
	if n >= len(p) {
		return p
	}
	return p[len(p)-n:]
}

// Centroid returns the arithmetic mean of the vertices.
func (p Profile) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return Point{X: sx / n, Y: sy / n}
}

// Bounds returns the axis-aligned bounding box as (min, max).
func (p Profile) Bounds() (Point, Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	lo, hi := p[0], p[0]
	for _, pt := range p[1:] {
		lo.X = math.Min(lo.X, pt.X)
		lo.Y = math.Min(lo.Y, pt.Y)
		hi.X = math.Max(hi.X, pt.X)
		hi.Y = math.Max(hi.Y, pt.Y)
	}
	return lo, hi
}

// MaxSegment returns the longest edge of the closed outline, including the
// closing edge from the last point back to the first.
func (p Profile) MaxSegment() float64 {
	if len(p) < 2 {
		return 0
	}
	longest := p[len(p)-1].Distance(p[0])
	for i := 1; i < len(p); i++ {
		longest = math.Max(longest, p[i-1].Distance(p[i]))
	}
	return longest
}

// IsFinite reports whether every vertex has finite coordinates.
func (p Profile) IsFinite() bool {
	for _, pt := range p {
		if !pt.IsFinite() {
			return false
		}
	}
	return true
}

// Contains reports whether q lies inside the closed outline using the
// even-odd rule.
func (p Profile) Contains(q Point) bool {
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[i], p[j]
		if (a.Y > q.Y) != (b.Y > q.Y) &&
			q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
