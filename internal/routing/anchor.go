package routing

import (
	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

// Endpoints are the two anchor points of a connection.
type Endpoints struct {
	Source geom.Point
	Target geom.Point
}

// IsFinite reports whether both anchors are finite.
func (e Endpoints) IsFinite() bool {
	return e.Source.IsFinite() && e.Target.IsFinite()
}

// ResolveEndpoints computes the anchors of a connection between source and
// target, with each symbol placed at the given position. A port id that
// resolves on its symbol pins that endpoint; an empty or dangling id uses the
// automatic anchor for that endpoint only.
func ResolveEndpoints(source, target topology.Symbol, sourcePos, targetPos geom.Point, sourcePortID, targetPortID string) Endpoints {
	ep := AutoAnchors(source.BoundsAt(sourcePos), target.BoundsAt(targetPos))

	if p, ok := PortAnchor(source, sourcePos, sourcePortID); ok {
		ep.Source = p
	}
	if p, ok := PortAnchor(target, targetPos, targetPortID); ok {
		ep.Target = p
	}
	return ep
}

// PortAnchor returns pos plus the offset of the named port. It reports false
// when the id is empty, unknown on sym, or the result would not be finite.
func PortAnchor(sym topology.Symbol, pos geom.Point, portID string) (geom.Point, bool) {
	port, ok := sym.Port(portID)
	if !ok {
		return geom.Point{}, false
	}
	p := pos.Add(port.Offset)
	if !p.IsFinite() {
		return geom.Point{}, false
	}
	return p, true
}

// AutoAnchors places one anchor on each rectangle, on the edges that face
// each other.
func AutoAnchors(source, target geom.Rect) Endpoints {
	fromSide, toSide := geom.FacingSides(source.Center(), target.Center())
	return Endpoints{
		Source: source.Anchor(fromSide),
		Target: target.Anchor(toSide),
	}
}
