package routing

import (
	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

// RenderedConnection is the derived drawing geometry of one connection.
// Points is a flat x,y sequence and must be treated as read-only.
type RenderedConnection struct {
	ID        string
	Points    []float64
	Style     topology.RoutingStyle
	Waypoints []geom.Point
	Label     string
}

// SymbolLookup resolves symbols by id.
type SymbolLookup interface {
	Symbol(id string) (topology.Symbol, bool)
}

// SymbolMap is a SymbolLookup over a plain map.
type SymbolMap map[string]topology.Symbol

func (m SymbolMap) Symbol(id string) (topology.Symbol, bool) {
	s, ok := m[id]
	return s, ok
}

// MapSymbols indexes a symbol slice by id.
func MapSymbols(symbols []topology.Symbol) SymbolMap {
	m := make(SymbolMap, len(symbols))
	for _, s := range symbols {
		m[s.ID] = s
	}
	return m
}

// RenderConnection derives one connection's geometry from the current symbol
// positions. It reports false when either symbol is missing or an anchor or
// waypoint is not finite, in which case the connection is not drawn.
func RenderConnection(c topology.Connection, symbols SymbolLookup) (RenderedConnection, bool) {
	src, ok := symbols.Symbol(c.SourceID)
	if !ok {
		return RenderedConnection{}, false
	}
	dst, ok := symbols.Symbol(c.TargetID)
	if !ok {
		return RenderedConnection{}, false
	}

	ep := ResolveEndpoints(src, dst, src.Position, dst.Position, c.SourcePortID, c.TargetPortID)
	if !ep.IsFinite() {
		return RenderedConnection{}, false
	}

	var wps []geom.Point
	if len(c.Waypoints) > 0 {
		wps = append([]geom.Point(nil), c.Waypoints...)
	}
	for _, wp := range wps {
		if !wp.IsFinite() {
			return RenderedConnection{}, false
		}
	}
	style := c.EffectiveStyle()
	return RenderedConnection{
		ID:        c.ID,
		Points:    SynthesizePath(ep.Source, ep.Target, style, wps),
		Style:     style,
		Waypoints: wps,
		Label:     c.Label,
	}, true
}

// RenderConnections derives every drawable connection, in input order.
func RenderConnections(symbols SymbolLookup, conns []topology.Connection) []RenderedConnection {
	out := make([]RenderedConnection, 0, len(conns))
	for _, c := range conns {
		if rc, ok := RenderConnection(c, symbols); ok {
			out = append(out, rc)
		}
	}
	return out
}
