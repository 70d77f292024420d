// Package layout holds the viewport geometry shared by pointer input,
// visibility and the sinks.
package layout

import "math"

// Point is a position in viewport pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Unit returns p scaled to length 1, or the zero vector when p is zero.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Rect is an element bounding box in viewport pixels.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Grow expands the rect by m on every side.
func (r Rect) Grow(m float64) Rect {
	return Rect{Left: r.Left - m, Top: r.Top - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Intersects reports whether r and o overlap. Touching edges count, the way
// an intersection observer treats a zero-area boundary hit.
func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right() && o.Left <= r.Right() &&
		r.Top <= o.Bottom() && o.Top <= r.Bottom()
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }
