package editor

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/session"
)

// handleMouse turns terminal mouse events into engine gestures. Left press
// on a waypoint handle starts a waypoint drag, on a symbol a symbol drag;
// motion feeds the active session and release ends it. Right press on a
// handle asks to delete that waypoint.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode != ModeNormal || m.help {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pointerDown(msg.X, msg.Y, msg.Shift)
		case tea.MouseButtonRight:
			m.cursorX, m.cursorY = msg.X, msg.Y
			m.requestWaypointDelete(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.panY--
		case tea.MouseButtonWheelDown:
			m.panY++
		case tea.MouseButtonWheelLeft:
			m.panX--
		case tea.MouseButtonWheelRight:
			m.panX++
		}
	case tea.MouseActionMotion:
		m.pointerMove(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.pointerUp()
	}
	return nil
}

func (m *Model) pointerDown(col, row int, shift bool) {
	m.clearMessages()
	m.cursorX, m.cursorY = col, row
	m.ensureCursorInBounds()

	if connID, idx, ok := m.waypointAt(col, row); ok && !shift {
		before, _ := m.store.Connection(connID)
		if m.waypoints.Start(connID, idx) {
			m.gestureWaypoints = before.Waypoints
		}
		return
	}

	sym, ok := m.symbolAt(col, row)
	if !ok {
		if !shift {
			m.selection = nil
		}
		return
	}
	if shift {
		m.toggleSelection(sym.ID)
		return
	}
	if !slices.Contains(m.selection, sym.ID) {
		m.selection = nil
	}
	m.grab = m.viewport().Origin(col, row).Sub(sym.Position)
	m.drag.Start(sym.ID, m.selection)
}

func (m *Model) pointerMove(col, row int) {
	v := m.viewport()
	switch m.coord.Active() {
	case session.KindWaypoint:
		if d, ok := m.waypoints.Active(); ok {
			m.waypoints.Move(d.ConnectionID, d.Index, v.Center(col, row))
		}
	case session.KindDrag:
		m.drag.Move(v.Origin(col, row).Sub(m.grab))
	}
	m.cursorX, m.cursorY = col, row
	m.ensureCursorInBounds()
}

func (m *Model) pointerUp() {
	switch m.coord.Active() {
	case session.KindWaypoint:
		d, ok := m.waypoints.Active()
		m.waypoints.End()
		if ok {
			m.recordWaypoints(d.ConnectionID, m.gestureWaypoints)
		}
		m.gestureWaypoints = nil
	case session.KindDrag:
		if a, ok := m.finishDrag(); ok {
			m.history.Record(a)
		}
	}
}
