package topology

import (
	"strings"

	"topodraw/internal/geom"
)

// DeviceSize is the fixed footprint of a device symbol.
var DeviceSize = geom.Size{W: 60, H: 60}

// DefaultShapeSize is used for shapes created without an explicit size.
var DefaultShapeSize = geom.Size{W: 120, H: 60}

type Kind string

const (
	KindDevice Kind = "device"
	KindShape  Kind = "shape"
)

// Port is a named attachment point at a fixed offset from the symbol's
// top-left corner.
type Port struct {
	ID     string
	Offset geom.Point
}

// Symbol is any positioned rectangle on the canvas: a device or a free shape.
type Symbol struct {
	ID       string
	Kind     Kind
	Name     string
	Position geom.Point
	Size     geom.Size
	Ports    []Port
}

// NewDevice returns a device symbol with the standard footprint.
func NewDevice(id, name string, pos geom.Point, ports ...Port) Symbol {
	return Symbol{ID: id, Kind: KindDevice, Name: name, Position: pos, Size: DeviceSize, Ports: ports}
}

// NewShape returns a free shape. A zero size falls back to DefaultShapeSize.
func NewShape(id, name string, pos geom.Point, size geom.Size) Symbol {
	if size.W <= 0 || size.H <= 0 {
		size = DefaultShapeSize
	}
	return Symbol{ID: id, Kind: KindShape, Name: name, Position: pos, Size: size}
}

// Port looks up a port by id.
func (s Symbol) Port(id string) (Port, bool) {
	if id == "" {
		return Port{}, false
	}
	for _, p := range s.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Bounds returns the footprint at the symbol's stored position.
func (s Symbol) Bounds() geom.Rect {
	return s.BoundsAt(s.Position)
}

// BoundsAt returns the footprint placed at pos.
func (s Symbol) BoundsAt(pos geom.Point) geom.Rect {
	return geom.RectAt(pos, s.Size)
}

func (s Symbol) clone() Symbol {
	if s.Ports != nil {
		s.Ports = append([]Port(nil), s.Ports...)
	}
	return s
}

type RoutingStyle string

const (
	Straight   RoutingStyle = "straight"
	Orthogonal RoutingStyle = "orthogonal"
)

// ParseRoutingStyle maps free text onto a style. Anything unrecognised is
// straight.
func ParseRoutingStyle(s string) RoutingStyle {
	if RoutingStyle(strings.ToLower(strings.TrimSpace(s))) == Orthogonal {
		return Orthogonal
	}
	return Straight
}

// Toggle flips between the two styles.
func (r RoutingStyle) Toggle() RoutingStyle {
	if r == Orthogonal {
		return Straight
	}
	return Orthogonal
}

type Layer string

const (
	Layer2 Layer = "layer2"
	Layer3 Layer = "layer3"
)

// ParseLayer maps free text onto a layer; only "layer2" is distinguished.
func ParseLayer(s string) Layer {
	if Layer(strings.ToLower(strings.TrimSpace(s))) == Layer2 {
		return Layer2
	}
	return Layer3
}

// Connection links two symbols. The link is stored directed but drawn
// undirected.
type Connection struct {
	ID           string
	SourceID     string
	TargetID     string
	SourcePortID string
	TargetPortID string
	Style        RoutingStyle
	Waypoints    []geom.Point
	Layer        Layer
	Label        string
}

// EffectiveStyle returns the routing style with the straight default applied.
func (c Connection) EffectiveStyle() RoutingStyle {
	if c.Style == Orthogonal {
		return Orthogonal
	}
	return Straight
}

// EffectiveLayer returns layer2 only when explicitly tagged; every other
// connection, including those with no layer, belongs to layer3.
func (c Connection) EffectiveLayer() Layer {
	if c.Layer == Layer2 {
		return Layer2
	}
	return Layer3
}

// Touches reports whether the connection has symbolID at either end.
func (c Connection) Touches(symbolID string) bool {
	return c.SourceID == symbolID || c.TargetID == symbolID
}

func (c Connection) clone() Connection {
	c.Waypoints = cloneWaypoints(c.Waypoints)
	return c
}

func cloneWaypoints(wps []geom.Point) []geom.Point {
	if len(wps) == 0 {
		return nil
	}
	dup := make([]geom.Point, len(wps))
	copy(dup, wps)
	return dup
}
