package editor

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/topology"
)

func (m *Model) handleNavigation(msg tea.KeyMsg) bool {
	dx, dy := 0, 0
	switch {
	case key.Matches(msg, m.keys.Left):
		dx = -1
	case key.Matches(msg, m.keys.Right):
		dx = 1
	case key.Matches(msg, m.keys.Up):
		dy = -1
	case key.Matches(msg, m.keys.Down):
		dy = 1
	default:
		return false
	}
	speed := m.moveSpeed(msg)
	if m.zPanMode {
		m.panX += dx * speed
		m.panY += dy * speed
		return true
	}
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return true
}

func (m *Model) moveSpeed(msg tea.KeyMsg) int {
	if key.Matches(msg, m.keys.FastMove) {
		return 2
	}
	return 1
}

func (m *Model) ensureCursorInBounds() {
	m.cursorX = max(m.cursorX, 0)
	m.cursorY = max(m.cursorY, 0)
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for the status line.
	m.cursorY = min(m.cursorY, max(m.height-2, 0))
}

// cursorPoint is the logical center of the cursor cell.
func (m *Model) cursorPoint() geom.Point {
	return m.viewport().Center(m.cursorX, m.cursorY)
}

// symbolAt returns the topmost symbol under a screen cell. Devices sit above
// shapes, later symbols above earlier ones.
func (m *Model) symbolAt(col, row int) (topology.Symbol, bool) {
	v := m.viewport()
	syms := m.store.Symbols()
	var shape *topology.Symbol
	for i := len(syms) - 1; i >= 0; i-- {
		c0, r0, c1, r1 := v.span(syms[i].Bounds())
		if col < c0 || col > c1 || row < r0 || row > r1 {
			continue
		}
		if syms[i].Kind != topology.KindShape {
			return syms[i], true
		}
		if shape == nil {
			shape = &syms[i]
		}
	}
	if shape != nil {
		return *shape, true
	}
	return topology.Symbol{}, false
}

// waypointAt finds a visible waypoint handle drawn in a screen cell.
func (m *Model) waypointAt(col, row int) (string, int, bool) {
	v := m.viewport()
	_, visible := m.frame()
	for i := len(visible) - 1; i >= 0; i-- {
		rc := visible[i]
		for j := len(rc.Waypoints) - 1; j >= 0; j-- {
			c, r := v.Cell(rc.Waypoints[j])
			if c == col && r == row {
				return rc.ID, j, true
			}
		}
	}
	return "", -1, false
}

// connectionNear returns the visible connection whose path passes closest
// to p, if within one cell.
func (m *Model) connectionNear(p geom.Point) (routing.RenderedConnection, bool) {
	_, visible := m.frame()
	tolerance := math.Max(m.cfg.CellWidth, m.cfg.CellHeight)
	best, bestDist := -1, math.Inf(1)
	for i, rc := range visible {
		if seg, d := routing.NearestSegment(rc.Points, p); seg >= 0 && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > tolerance {
		return routing.RenderedConnection{}, false
	}
	return visible[best], true
}
