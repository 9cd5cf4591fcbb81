package geom

import "math"

// Side names one edge of a rectangular footprint.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Horizontal reports whether the side is the left or right edge.
func (s Side) Horizontal() bool {
	return s == Left || s == Right
}

// FacingSides picks the edge of each footprint that faces the other one,
// given the two footprint centers. When the horizontal offset strictly
// dominates, the left/right edges are used; otherwise top/bottom. A tie,
// including coincident centers, resolves to the vertical pair.
func FacingSides(from, to Point) (Side, Side) {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right, Left
		}
		return Left, Right
	}
	if dy > 0 {
		return Bottom, Top
	}
	return Top, Bottom
}

// ClosestOnSegment projects p onto the segment a-b and returns the projected
// point together with its distance from p. A zero-length segment yields a.
func ClosestOnSegment(a, b, p Point) (Point, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, Distance(a, p)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	q := Point{a.X + t*dx, a.Y + t*dy}
	return q, Distance(q, p)
}
