package routing

import (
	"math"

	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

// SynthesizePath returns the flat x,y vertex list to draw between source and
// target. Waypoints are inserted verbatim in stored order; for orthogonal
// routing they replace the automatic corners. Unknown styles draw straight.
func SynthesizePath(source, target geom.Point, style topology.RoutingStyle, waypoints []geom.Point) []float64 {
	if len(waypoints) > 0 {
		pts := make([]float64, 0, 4+2*len(waypoints))
		pts = append(pts, source.X, source.Y)
		for _, wp := range waypoints {
			pts = append(pts, wp.X, wp.Y)
		}
		return append(pts, target.X, target.Y)
	}

	if style == topology.Orthogonal {
		midY := source.Y + (target.Y-source.Y)/2
		return []float64{
			source.X, source.Y,
			source.X, midY,
			target.X, midY,
			target.X, target.Y,
		}
	}

	return []float64{source.X, source.Y, target.X, target.Y}
}

// Vertices converts a flat coordinate list to points. A trailing odd value is
// ignored.
func Vertices(flat []float64) []geom.Point {
	out := make([]geom.Point, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, geom.Point{X: flat[i], Y: flat[i+1]})
	}
	return out
}

// Bounds returns the bounding rectangle of a flat coordinate list.
func Bounds(flat []float64) (geom.Rect, bool) {
	if len(flat) < 2 {
		return geom.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range Vertices(flat) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return geom.Rect{Min: geom.Pt(minX, minY), Size: geom.Size{W: maxX - minX, H: maxY - minY}}, true
}

// Midpoint returns the point halfway along the path. A path of zero length
// yields its first vertex.
func Midpoint(flat []float64) (geom.Point, bool) {
	verts := Vertices(flat)
	if len(verts) == 0 {
		return geom.Point{}, false
	}
	total := 0.0
	for i := 0; i+1 < len(verts); i++ {
		total += geom.Distance(verts[i], verts[i+1])
	}
	if total == 0 {
		return verts[0], true
	}

	rest := total / 2
	for i := 0; i+1 < len(verts); i++ {
		a, b := verts[i], verts[i+1]
		l := geom.Distance(a, b)
		if rest <= l {
			t := rest / l
			return geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t), true
		}
		rest -= l
	}
	return verts[len(verts)-1], true
}

// NearestSegment finds the path segment closest to p. Segment i joins vertex
// i to vertex i+1. It returns -1 when the path has fewer than two vertices.
func NearestSegment(flat []float64, p geom.Point) (int, float64) {
	verts := Vertices(flat)
	best, bestDist := -1, math.Inf(1)
	for i := 0; i+1 < len(verts); i++ {
		if _, d := geom.ClosestOnSegment(verts[i], verts[i+1], p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
