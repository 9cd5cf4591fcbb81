package editor

import (
	"math"
	"strings"

	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/session"
	"topodraw/internal/topology"
)

// Viewport maps canvas logical units onto terminal cells. Pan is counted in
// cells.
type Viewport struct {
	Cols, Rows   int
	PanX, PanY   int
	CellW, CellH float64
}

// Cell returns the screen cell containing p.
func (v Viewport) Cell(p geom.Point) (col, row int) {
	return int(math.Floor(p.X/v.CellW)) - v.PanX, int(math.Floor(p.Y/v.CellH)) - v.PanY
}

// Origin returns the logical top-left corner of a screen cell.
func (v Viewport) Origin(col, row int) geom.Point {
	return geom.Pt(float64(col+v.PanX)*v.CellW, float64(row+v.PanY)*v.CellH)
}

// Center returns the logical center of a screen cell.
func (v Viewport) Center(col, row int) geom.Point {
	return v.Origin(col, row).Add(geom.Pt(v.CellW/2, v.CellH/2))
}

// span returns the inclusive cell range covered by r.
func (v Viewport) span(r geom.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = v.Cell(r.Min)
	hi := r.Max()
	c1 = int(math.Ceil(hi.X/v.CellW)) - 1 - v.PanX
	r1 = int(math.Ceil(hi.Y/v.CellH)) - 1 - v.PanY
	return c0, r0, max(c0, c1), max(r0, r1)
}

// Scene is everything drawn in one frame.
type Scene struct {
	Symbols        []topology.Symbol
	Connections    []routing.RenderedConnection
	Layer2         map[string]bool
	Selected       map[string]bool
	ActiveWaypoint *session.WaypointDrag
	Preview        []geom.Point
}

type grid struct {
	cols, rows int
	cells      [][]rune
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: max(cols, 0), rows: max(rows, 0)}
	g.cells = make([][]rune, g.rows)
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", g.cols))
	}
	return g
}

func (g *grid) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row][col] = r
}

func (g *grid) text(col, row int, s string, maxLen int) {
	for i, r := range []rune(s) {
		if i >= maxLen {
			return
		}
		g.set(col+i, row, r)
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

type strokeSet struct {
	horizontal, vertical rune
}

var (
	solidStroke  = strokeSet{'─', '│'}
	dashedStroke = strokeSet{'┄', '┆'}
	shapeStroke  = strokeSet{'┈', '┊'}
)

// Rasterize draws sc into Rows lines of Cols runes: shapes first, then
// connections and their labels, then devices over their ends.
func Rasterize(v Viewport, sc Scene) []string {
	g := newGrid(v.Cols, v.Rows)

	for _, sym := range sc.Symbols {
		if sym.Kind == topology.KindShape {
			drawShape(g, v, sym, sc.Selected[sym.ID])
		}
	}
	for _, rc := range sc.Connections {
		stroke := solidStroke
		if sc.Layer2[rc.ID] {
			stroke = dashedStroke
		}
		drawPolyline(g, v, routing.Vertices(rc.Points), stroke)
	}
	for _, rc := range sc.Connections {
		drawLabel(g, v, rc)
	}
	if len(sc.Preview) > 1 {
		drawPolyline(g, v, sc.Preview, dashedStroke)
	}
	for _, sym := range sc.Symbols {
		if sym.Kind != topology.KindShape {
			drawDevice(g, v, sym, sc.Selected[sym.ID])
		}
	}
	for _, rc := range sc.Connections {
		for i, wp := range rc.Waypoints {
			col, row := v.Cell(wp)
			mark := '●'
			if aw := sc.ActiveWaypoint; aw != nil && aw.ConnectionID == rc.ID && aw.Index == i {
				mark = '◉'
			}
			g.set(col, row, mark)
		}
	}
	return g.lines()
}

// drawLabel centers a connection's label on the midpoint of its path.
func drawLabel(g *grid, v Viewport, rc routing.RenderedConnection) {
	if rc.Label == "" {
		return
	}
	mid, ok := routing.Midpoint(rc.Points)
	if !ok {
		return
	}
	col, row := v.Cell(mid)
	n := len([]rune(rc.Label))
	g.text(clampCell(col-n/2), clampCell(row), rc.Label, n)
}

func drawPolyline(g *grid, v Viewport, pts []geom.Point, stroke strokeSet) {
	if len(pts) < 2 {
		return
	}
	cells := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			return
		}
		col, row := v.Cell(p)
		col, row = clampCell(col), clampCell(row)
		if n := len(cells); n > 0 && cells[n-1] == [2]int{col, row} {
			continue
		}
		cells = append(cells, [2]int{col, row})
	}
	for i := 0; i+1 < len(cells); i++ {
		drawSegment(g, cells[i], cells[i+1], stroke)
	}
	for i := 1; i+1 < len(cells); i++ {
		if r, ok := corner(cells[i-1], cells[i], cells[i+1]); ok {
			g.set(cells[i][0], cells[i][1], r)
		}
	}
}

// drawSegment walks the cells between a and b with Bresenham's algorithm,
// choosing each glyph from the direction of the step into it.
func drawSegment(g *grid, a, b [2]int, stroke strokeSet) {
	cells := bresenham(a, b)
	for i, c := range cells {
		from, to := i-1, i
		if i == 0 {
			from, to = 0, min(1, len(cells)-1)
		}
		stepX := cells[to][0] != cells[from][0]
		stepY := cells[to][1] != cells[from][1]
		descending := (cells[to][0] > cells[from][0]) == (cells[to][1] > cells[from][1])
		g.set(c[0], c[1], glyph(stepX, stepY, descending, stroke))
	}
}

func bresenham(a, b [2]int) [][2]int {
	x0, y0, x1, y1 := a[0], a[1], b[0], b[1]
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	out := make([][2]int, 0, max(dx, -dy)+1)
	for {
		out = append(out, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func glyph(stepX, stepY, descending bool, stroke strokeSet) rune {
	switch {
	case stepX && stepY && descending:
		return '╲'
	case stepX && stepY:
		return '╱'
	case stepY:
		return stroke.vertical
	default:
		return stroke.horizontal
	}
}

func corner(prev, at, next [2]int) (rune, bool) {
	in := dir(at, prev)
	out := dir(at, next)
	if in == 0 || out == 0 {
		return 0, false
	}
	switch in | out {
	case right | down:
		return '┌', true
	case left | down:
		return '┐', true
	case right | up:
		return '└', true
	case left | up:
		return '┘', true
	}
	return 0, false
}

const (
	up = 1 << iota
	down
	left
	right
)

// dir reports the axis-aligned direction from a towards b, or 0 when the
// step is diagonal or empty.
func dir(a, b [2]int) int {
	switch {
	case a[0] == b[0] && b[1] < a[1]:
		return up
	case a[0] == b[0] && b[1] > a[1]:
		return down
	case a[1] == b[1] && b[0] < a[0]:
		return left
	case a[1] == b[1] && b[0] > a[0]:
		return right
	}
	return 0
}

func drawDevice(g *grid, v Viewport, sym topology.Symbol, selected bool) {
	c0, r0, c1, r1 := v.span(sym.Bounds())
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.set(col, row, ' ')
		}
	}
	drawBorder(g, c0, r0, c1, r1, solidStroke, selected)

	label := sym.Name
	if label == "" {
		label = sym.ID
	}
	inner := c1 - c0 - 1
	if inner <= 0 {
		return
	}
	runes := []rune(label)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	col := c0 + 1 + (inner-len(runes))/2
	g.text(col, r0+(r1-r0)/2, string(runes), inner)
}

func drawShape(g *grid, v Viewport, sym topology.Symbol, selected bool) {
	c0, r0, c1, r1 := v.span(sym.Bounds())
	drawBorder(g, c0, r0, c1, r1, shapeStroke, selected)
	if sym.Name != "" && c1-c0 > 2 {
		g.text(c0+1, r0, " "+sym.Name+" ", c1-c0-1)
	}
}

// drawBorder outlines a cell rectangle; selected symbols get a '#' border.
func drawBorder(g *grid, c0, r0, c1, r1 int, stroke strokeSet, selected bool) {
	h, vert := stroke.horizontal, stroke.vertical
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if selected {
		h, vert, tl, tr, bl, br = '#', '#', '#', '#', '#', '#'
	}
	for col := c0 + 1; col < c1; col++ {
		g.set(col, r0, h)
		g.set(col, r1, h)
	}
	for row := r0 + 1; row < r1; row++ {
		g.set(c0, row, vert)
		g.set(c1, row, vert)
	}
	g.set(c0, r0, tl)
	g.set(c1, r0, tr)
	g.set(c0, r1, bl)
	g.set(c1, r1, br)
}

// maxCell bounds how far off screen a line is walked. Lines are bent only
// far outside any terminal.
const maxCell = 1 << 14

func clampCell(c int) int {
	return max(-maxCell, min(c, maxCell))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
