// Package geom provides the geometric primitives shared by the anchor
// resolver, the path synthesizer and the editor's hit testing.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in canvas logical units.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Size is a footprint width and height.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Point
	Size Size
}

func RectAt(p Point, s Size) Rect {
	return Rect{Min: p, Size: s}
}

func (r Rect) Max() Point {
	return Point{r.Min.X + r.Size.W, r.Min.Y + r.Size.H}
}

func (r Rect) Center() Point {
	return Point{r.Min.X + r.Size.W/2, r.Min.Y + r.Size.H/2}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	hi := r.Max()
	return p.X >= r.Min.X && p.X <= hi.X && p.Y >= r.Min.Y && p.Y <= hi.Y
}

// OnBoundary reports whether p lies exactly on one of r's four edges.
func (r Rect) OnBoundary(p Point) bool {
	if !r.Contains(p) {
		return false
	}
	hi := r.Max()
	return p.X == r.Min.X || p.X == hi.X || p.Y == r.Min.Y || p.Y == hi.Y
}

// Anchor returns the midpoint of the given side.
func (r Rect) Anchor(side Side) Point {
	c := r.Center()
	hi := r.Max()
	switch side {
	case Left:
		return Point{r.Min.X, c.Y}
	case Right:
		return Point{hi.X, c.Y}
	case Top:
		return Point{c.X, r.Min.Y}
	case Bottom:
		return Point{c.X, hi.Y}
	}
	return c
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	rmax, omax := r.Max(), o.Max()
	lo := Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)}
	hi := Point{math.Max(rmax.X, omax.X), math.Max(rmax.Y, omax.Y)}
	return Rect{Min: lo, Size: Size{hi.X - lo.X, hi.Y - lo.Y}}
}
