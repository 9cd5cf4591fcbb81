// Package document reads and writes topodraw canvases as TOML.
//
// A document holds every symbol and connection plus the editor's pan offset:
//
//	version = 1
//
//	[view]
//	pan_x = 0.0
//	pan_y = 0.0
//
//	[[symbols]]
//	id = "r1"
//	kind = "device"
//	name = "core"
//	x = 0.0
//	y = 0.0
//
//	[[connections]]
//	id = "c1"
//	source = "r1"
//	target = "r2"
//	style = "orthogonal"
//
//	[[connections.waypoints]]
//	x = 30.0
//	y = 330.0
//
// Connections that reference missing symbols or ports are kept as written;
// the routing engine omits or falls back for them at render time.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

// FormatVersion is written into every saved document.
const FormatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrNonFinite          = errors.New("coordinate is not finite")
)

// View is the editor viewport saved alongside the canvas.
type View struct {
	PanX float64 `toml:"pan_x"`
	PanY float64 `toml:"pan_y"`
}

type fileFormat struct {
	Version     int                `toml:"version"`
	View        View               `toml:"view"`
	Symbols     []symbolRecord     `toml:"symbols"`
	Connections []connectionRecord `toml:"connections"`
}

type symbolRecord struct {
	ID     string       `toml:"id"`
	Kind   string       `toml:"kind"`
	Name   string       `toml:"name,omitempty"`
	X      float64      `toml:"x"`
	Y      float64      `toml:"y"`
	Width  float64      `toml:"width,omitempty"`
	Height float64      `toml:"height,omitempty"`
	Ports  []portRecord `toml:"ports,omitempty"`
}

type portRecord struct {
	ID string  `toml:"id"`
	X  float64 `toml:"x"`
	Y  float64 `toml:"y"`
}

type pointRecord struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

type connectionRecord struct {
	ID         string        `toml:"id"`
	Source     string        `toml:"source"`
	Target     string        `toml:"target"`
	SourcePort string        `toml:"source_port,omitempty"`
	TargetPort string        `toml:"target_port,omitempty"`
	Style      string        `toml:"style,omitempty"`
	Layer      string        `toml:"layer,omitempty"`
	Label      string        `toml:"label,omitempty"`
	Waypoints  []pointRecord `toml:"waypoints,omitempty"`
}

// Load reads a document into a fresh store.
func Load(path string) (*topology.Store, error) {
	store, _, err := LoadWithView(path)
	return store, err
}

// LoadWithView reads a document and the viewport saved with it.
func LoadWithView(path string) (*topology.Store, View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, View{}, fmt.Errorf("read document: %w", err)
	}
	store, view, err := Decode(data)
	if err != nil {
		return nil, View{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return store, view, nil
}

// Save writes the store to path, creating parent directories as needed.
func Save(path string, store *topology.Store) error {
	return SaveWithView(path, store, View{})
}

// SaveWithView writes the store and viewport to path.
func SaveWithView(path string, store *topology.Store, view View) error {
	data, err := Encode(store, view)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Decode parses TOML document bytes.
func Decode(data []byte) (*topology.Store, View, error) {
	var doc fileFormat
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, View{}, fmt.Errorf("parse document: %w", err)
	}
	if doc.Version > FormatVersion {
		return nil, View{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	store := topology.NewStore()
	for i, rec := range doc.Symbols {
		sym := rec.symbol()
		if err := checkSymbol(sym); err != nil {
			return nil, View{}, fmt.Errorf("symbol %d: %w", i, err)
		}
		if err := store.AddSymbol(sym); err != nil {
			return nil, View{}, fmt.Errorf("symbol %d: %w", i, err)
		}
	}
	for i, rec := range doc.Connections {
		c := rec.connection()
		for j, wp := range c.Waypoints {
			if !wp.IsFinite() {
				return nil, View{}, fmt.Errorf("connection %d: waypoint %d: %w", i, j, ErrNonFinite)
			}
		}
		if err := store.AddConnection(c); err != nil {
			return nil, View{}, fmt.Errorf("connection %d: %w", i, err)
		}
	}
	return store, doc.View, nil
}

func checkSymbol(sym topology.Symbol) error {
	if !sym.Position.IsFinite() || !geom.Pt(sym.Size.W, sym.Size.H).IsFinite() {
		return fmt.Errorf("position or size: %w", ErrNonFinite)
	}
	for _, p := range sym.Ports {
		if !p.Offset.IsFinite() {
			return fmt.Errorf("port %q: %w", p.ID, ErrNonFinite)
		}
	}
	return nil
}

// Encode renders the store as TOML document bytes.
func Encode(store *topology.Store, view View) ([]byte, error) {
	doc := fileFormat{Version: FormatVersion, View: view}
	for _, sym := range store.Symbols() {
		doc.Symbols = append(doc.Symbols, newSymbolRecord(sym))
	}
	for _, c := range store.Connections() {
		doc.Connections = append(doc.Connections, newConnectionRecord(c))
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

func newSymbolRecord(sym topology.Symbol) symbolRecord {
	rec := symbolRecord{
		ID:   sym.ID,
		Kind: string(sym.Kind),
		Name: sym.Name,
		X:    sym.Position.X,
		Y:    sym.Position.Y,
	}
	if sym.Kind == topology.KindShape {
		rec.Width, rec.Height = sym.Size.W, sym.Size.H
	}
	for _, p := range sym.Ports {
		rec.Ports = append(rec.Ports, portRecord{ID: p.ID, X: p.Offset.X, Y: p.Offset.Y})
	}
	return rec
}

func (r symbolRecord) symbol() topology.Symbol {
	pos := geom.Pt(r.X, r.Y)
	var sym topology.Symbol
	if strings.EqualFold(strings.TrimSpace(r.Kind), string(topology.KindShape)) {
		sym = topology.NewShape(r.ID, r.Name, pos, geom.Size{W: r.Width, H: r.Height})
	} else {
		sym = topology.NewDevice(r.ID, r.Name, pos)
	}
	for _, p := range r.Ports {
		sym.Ports = append(sym.Ports, topology.Port{ID: p.ID, Offset: geom.Pt(p.X, p.Y)})
	}
	return sym
}

func newConnectionRecord(c topology.Connection) connectionRecord {
	rec := connectionRecord{
		ID:         c.ID,
		Source:     c.SourceID,
		Target:     c.TargetID,
		SourcePort: c.SourcePortID,
		TargetPort: c.TargetPortID,
		Style:      string(c.Style),
		Layer:      string(c.Layer),
		Label:      c.Label,
	}
	for _, wp := range c.Waypoints {
		rec.Waypoints = append(rec.Waypoints, pointRecord{X: wp.X, Y: wp.Y})
	}
	return rec
}

// connection normalises a written style or layer but leaves an unset one
// unset rather than pinning it to the default.
func (r connectionRecord) connection() topology.Connection {
	c := topology.Connection{
		ID:           r.ID,
		SourceID:     r.Source,
		TargetID:     r.Target,
		SourcePortID: r.SourcePort,
		TargetPortID: r.TargetPort,
		Label:        r.Label,
	}
	if strings.TrimSpace(r.Style) != "" {
		c.Style = topology.ParseRoutingStyle(r.Style)
	}
	if strings.TrimSpace(r.Layer) != "" {
		c.Layer = topology.ParseLayer(r.Layer)
	}
	for _, wp := range r.Waypoints {
		c.Waypoints = append(c.Waypoints, geom.Pt(wp.X, wp.Y))
	}
	return c
}
