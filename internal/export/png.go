// Package export renders a canvas to image files.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/topology"
)

var (
	ErrEmpty    = errors.New("nothing to export")
	ErrTooLarge = errors.New("drawing too large to export")
)

// MaxDimension caps the width and height of an exported image in pixels.
const MaxDimension = 16384

// Source is what PNG draws from.
type Source interface {
	routing.SymbolLookup
	Symbols() []topology.Symbol
	Connections() []topology.Connection
}

// Options controls PNG output. Zero values select the defaults.
type Options struct {
	Scale      float64 // pixels per logical unit, default 1
	Padding    float64 // logical units around the drawing, default 20
	FontSize   float64 // points, default 12
	HideLayer2 bool
	HideLayer3 bool
	Arrows     bool // arrowhead at each connection's target
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Padding <= 0 {
		o.Padding = 20
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	return o
}

// PNG draws every symbol and visible connection and writes the image to path.
func PNG(path string, src Source, opts Options) error {
	dc, err := Render(src, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Render draws the canvas into a new context sized to fit it.
func Render(src Source, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()

	symbols := src.Symbols()
	conns := src.Connections()
	visible := routing.PartitionLayers(routing.RenderConnections(src, conns), conns).
		Visible(!opts.HideLayer2, !opts.HideLayer3)
	layers := make(map[string]topology.Layer, len(conns))
	for _, c := range conns {
		layers[c.ID] = c.EffectiveLayer()
	}

	bounds, ok := drawingBounds(symbols, visible)
	if !ok {
		return nil, ErrEmpty
	}
	origin := bounds.Min.Sub(geom.Pt(opts.Padding, opts.Padding))
	w := math.Ceil((bounds.Size.W + 2*opts.Padding) * opts.Scale)
	h := math.Ceil((bounds.Size.H + 2*opts.Padding) * opts.Scale)
	if !(w <= MaxDimension && h <= MaxDimension) {
		return nil, fmt.Errorf("%w: %.0fx%.0f pixels, limit %d", ErrTooLarge, w, h, MaxDimension)
	}

	dc := gg.NewContext(max(int(w), 1), max(int(h), 1))
	dc.SetColor(color.White)
	dc.Clear()

	face, err := monoFace(opts.FontSize * opts.Scale)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	px := func(p geom.Point) (float64, float64) {
		q := p.Sub(origin)
		return q.X * opts.Scale, q.Y * opts.Scale
	}

	// Connections first so symbols draw over their ends.
	for _, rc := range visible {
		drawConnection(dc, rc, layers[rc.ID] == topology.Layer2, opts.Arrows, opts.Scale, px)
	}
	for _, sym := range symbols {
		drawSymbol(dc, sym, opts.Scale, px)
	}
	return dc, nil
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawingBounds(symbols []topology.Symbol, rendered []routing.RenderedConnection) (geom.Rect, bool) {
	var (
		out geom.Rect
		has bool
	)
	add := func(r geom.Rect) {
		if !has {
			out, has = r, true
			return
		}
		out = out.Union(r)
	}
	for _, sym := range symbols {
		if b := sym.Bounds(); b.Min.IsFinite() {
			add(b)
		}
	}
	for _, rc := range rendered {
		if b, ok := routing.Bounds(rc.Points); ok {
			add(b)
		}
	}
	return out, has
}

func drawConnection(dc *gg.Context, rc routing.RenderedConnection, dashed, arrow bool, scale float64, px func(geom.Point) (float64, float64)) {
	pts := routing.Vertices(rc.Points)
	if len(pts) < 2 {
		return
	}

	dc.SetLineWidth(1.5 * scale)
	dc.SetColor(color.Black)
	if dashed {
		dc.SetDash(6*scale, 4*scale)
	}
	x, y := px(pts[0])
	dc.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = px(p)
		dc.LineTo(x, y)
	}
	dc.Stroke()
	dc.SetDash()

	for _, wp := range rc.Waypoints {
		x, y := px(wp)
		dc.DrawCircle(x, y, 2.5*scale)
		dc.Fill()
	}

	if mid, ok := routing.Midpoint(rc.Points); ok && rc.Label != "" {
		x, y := px(mid)
		dc.DrawStringAnchored(rc.Label, x, y-4*scale, 0.5, 0)
	}

	if arrow {
		fx, fy := px(pts[len(pts)-2])
		tx, ty := px(pts[len(pts)-1])
		drawArrow(dc, fx, fy, tx, ty, 8*scale)
	}
}

func drawArrow(dc *gg.Context, fx, fy, tx, ty, size float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const spread = 0.5
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+size*dy*spread, ty-size*dy-size*dx*spread)
	dc.LineTo(tx-size*dx-size*dy*spread, ty-size*dy+size*dx*spread)
	dc.ClosePath()
	dc.Fill()
}

func drawSymbol(dc *gg.Context, sym topology.Symbol, scale float64, px func(geom.Point) (float64, float64)) {
	x, y := px(sym.Position)
	w, h := sym.Size.W*scale, sym.Size.H*scale

	dc.SetLineWidth(1.5 * scale)
	switch sym.Kind {
	case topology.KindShape:
		dc.SetDash(3*scale, 3*scale)
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(color.Gray{Y: 90})
		dc.Stroke()
		dc.SetDash()
	default:
		dc.DrawRoundedRectangle(x, y, w, h, 6*scale)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	}

	dc.SetColor(color.Black)
	for _, p := range sym.Ports {
		if !p.Offset.IsFinite() {
			continue
		}
		cx, cy := px(sym.Position.Add(p.Offset))
		dc.DrawRectangle(cx-2*scale, cy-2*scale, 4*scale, 4*scale)
		dc.Fill()
	}

	label := sym.Name
	if label == "" {
		label = sym.ID
	}
	dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
}
