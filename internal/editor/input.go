package editor

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/geom"
	"topodraw/internal/session"
	"topodraw/internal/topology"
)

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	m.clearMessages()
	if m.handleNavigation(msg) {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cfg.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil
		}
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help = true
	case key.Matches(msg, m.keys.Escape):
		m.zPanMode = false
		m.connectFrom = ""
		m.connectWaypoints = nil
		m.selection = nil
	case key.Matches(msg, m.keys.PanMode):
		m.zPanMode = !m.zPanMode
	case key.Matches(msg, m.keys.AddDevice):
		m.addSymbol(topology.KindDevice)
	case key.Matches(msg, m.keys.AddShape):
		m.addSymbol(topology.KindShape)
	case key.Matches(msg, m.keys.Connect):
		m.connectAtCursor()
	case key.Matches(msg, m.keys.Select):
		if sym, ok := m.symbolAt(m.cursorX, m.cursorY); ok {
			m.toggleSelection(sym.ID)
		}
	case key.Matches(msg, m.keys.Move):
		m.startKeyboardMove()
	case key.Matches(msg, m.keys.ToggleStyle):
		m.toggleStyle()
	case key.Matches(msg, m.keys.ToggleLayer):
		m.toggleLayer()
	case key.Matches(msg, m.keys.ShowLayer2):
		m.showLayer2 = !m.showLayer2
	case key.Matches(msg, m.keys.ShowLayer3):
		m.showLayer3 = !m.showLayer3
	case key.Matches(msg, m.keys.InsertWaypoint):
		m.insertWaypointAtCursor()
	case key.Matches(msg, m.keys.DeleteWaypoint):
		m.requestWaypointDelete(m.cursorX, m.cursorY)
	case key.Matches(msg, m.keys.CopyRoute):
		m.copyRoute()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Redo):
		m.redo()
	case key.Matches(msg, m.keys.Save):
		if m.filename != "" {
			m.save(m.filename)
			return nil
		}
		return m.startFileInput(FileOpSave)
	case key.Matches(msg, m.keys.ExportPNG):
		return m.startFileInput(FileOpSavePNG)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.coord.EndActive()
	return tea.Quit
}

func (m *Model) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m.quit()
		case ConfirmDeleteWaypoint:
			m.deleteWaypoint(m.confirmConn, m.confirmIndex)
		}
	case key.Matches(msg, m.keys.Deny):
		m.mode = ModeNormal
	}
	return nil
}

// handleMoveKey drives a drag session from the keyboard, one cell per step.
// Enter and Esc both end the move where it stands; undo takes it back.
func (m *Model) handleMoveKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter || key.Matches(msg, m.keys.Escape) {
		m.mode = ModeNormal
		if a, ok := m.finishDrag(); ok {
			m.history.Record(a)
		}
		return nil
	}

	id, ok := m.drag.Active()
	if !ok {
		m.mode = ModeNormal
		return nil
	}
	sym, ok := m.store.Symbol(id)
	if !ok {
		m.mode = ModeNormal
		m.finishDrag()
		return nil
	}

	speed := float64(m.moveSpeed(msg))
	step := geom.Point{}
	switch {
	case key.Matches(msg, m.keys.Left):
		step.X = -m.cfg.CellWidth * speed
	case key.Matches(msg, m.keys.Right):
		step.X = m.cfg.CellWidth * speed
	case key.Matches(msg, m.keys.Up):
		step.Y = -m.cfg.CellHeight * speed
	case key.Matches(msg, m.keys.Down):
		step.Y = m.cfg.CellHeight * speed
	default:
		return nil
	}
	m.drag.Move(sym.Position.Add(step))
	return nil
}

func (m *Model) startKeyboardMove() {
	sym, ok := m.symbolAt(m.cursorX, m.cursorY)
	if !ok {
		m.setError("no symbol under cursor")
		return
	}
	if !slices.Contains(m.selection, sym.ID) {
		m.selection = nil
	}
	if m.drag.Start(sym.ID, m.selection) {
		m.mode = ModeMove
	}
}

// finishDrag ends the active drag and returns the undo record for it.
func (m *Model) finishDrag() (Action, bool) {
	id, ok := m.drag.Active()
	if !ok {
		return Action{}, false
	}
	before := make(map[string]geom.Point)
	for _, cand := range append([]string{id}, m.selection...) {
		if p, ok := m.drag.Origin(cand); ok {
			before[cand] = p
		}
	}
	if _, ok := m.drag.End(); !ok {
		return Action{}, false
	}

	after := make(map[string]geom.Point, len(before))
	changed := false
	for cand, p := range before {
		sym, ok := m.store.Symbol(cand)
		if !ok {
			delete(before, cand)
			continue
		}
		after[cand] = sym.Position
		changed = changed || sym.Position != p
	}
	if !changed {
		return Action{}, false
	}
	return Action{
		Type:    ActionMoveSymbols,
		Data:    PositionsData{Positions: after},
		Inverse: PositionsData{Positions: before},
	}, true
}

func (m *Model) toggleSelection(id string) {
	if i := slices.Index(m.selection, id); i >= 0 {
		m.selection = slices.Delete(m.selection, i, i+1)
		return
	}
	m.selection = append(m.selection, id)
}

func (m *Model) nextID(prefix string) string {
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s%d", prefix, n)
		_, symTaken := m.store.Symbol(id)
		_, connTaken := m.store.Connection(id)
		if !symTaken && !connTaken {
			return id
		}
	}
}

func (m *Model) addSymbol(kind topology.Kind) {
	pos := m.viewport().Origin(m.cursorX, m.cursorY)
	var sym topology.Symbol
	if kind == topology.KindShape {
		id := m.nextID("zone")
		sym = topology.NewShape(id, id, pos, geom.Size{})
	} else {
		id := m.nextID("dev")
		sym = topology.NewDevice(id, id, pos)
	}
	if err := m.store.AddSymbol(sym); err != nil {
		m.setError("%v", err)
		return
	}
	m.history.Record(Action{
		Type:    ActionAddSymbol,
		Data:    SymbolData{Symbol: sym, Present: true},
		Inverse: SymbolData{Symbol: sym},
	})
	m.setSuccess("added %s", sym.ID)
}

// connectAtCursor starts a connection on a symbol, adds a waypoint on empty
// space, and finishes on a second symbol.
func (m *Model) connectAtCursor() {
	sym, onSymbol := m.symbolAt(m.cursorX, m.cursorY)
	switch {
	case m.connectFrom == "" && onSymbol:
		m.connectFrom = sym.ID
		m.connectWaypoints = nil
	case m.connectFrom == "":
		m.setError("no symbol under cursor")
	case !onSymbol:
		m.connectWaypoints = append(m.connectWaypoints, m.cursorPoint())
	case sym.ID == m.connectFrom:
		m.setError("cannot connect %s to itself", sym.ID)
	default:
		c := topology.Connection{
			ID:        m.nextID("link"),
			SourceID:  m.connectFrom,
			TargetID:  sym.ID,
			Style:     m.cfg.DefaultStyle,
			Layer:     m.cfg.DefaultLayer,
			Waypoints: m.connectWaypoints,
		}
		m.connectFrom, m.connectWaypoints = "", nil
		if err := m.store.AddConnection(c); err != nil {
			m.setError("%v", err)
			return
		}
		m.history.Record(Action{
			Type:    ActionAddConnection,
			Data:    ConnectionData{Connection: c, Present: true},
			Inverse: ConnectionData{Connection: c},
		})
		m.setSuccess("connected %s → %s", c.SourceID, c.TargetID)
	}
}

func (m *Model) connectionAtCursor() (topology.Connection, bool) {
	rc, ok := m.connectionNear(m.cursorPoint())
	if !ok {
		m.setError("no connection under cursor")
		return topology.Connection{}, false
	}
	return m.store.Connection(rc.ID)
}

func (m *Model) toggleStyle() {
	c, ok := m.connectionAtCursor()
	if !ok {
		return
	}
	next := c.EffectiveStyle().Toggle()
	if m.store.SetStyle(c.ID, next) {
		m.history.Record(Action{
			Type:    ActionSetStyle,
			Data:    StyleData{ConnectionID: c.ID, Style: next},
			Inverse: StyleData{ConnectionID: c.ID, Style: c.Style},
		})
		m.setSuccess("%s is now %s", c.ID, next)
	}
}

func (m *Model) toggleLayer() {
	c, ok := m.connectionAtCursor()
	if !ok {
		return
	}
	next := topology.Layer2
	if c.EffectiveLayer() == topology.Layer2 {
		next = topology.Layer3
	}
	if m.store.SetLayer(c.ID, next) {
		m.history.Record(Action{
			Type:    ActionSetLayer,
			Data:    LayerData{ConnectionID: c.ID, Layer: next},
			Inverse: LayerData{ConnectionID: c.ID, Layer: c.Layer},
		})
		m.setSuccess("%s is now %s", c.ID, next)
	}
}

func (m *Model) insertWaypointAtCursor() {
	rc, ok := m.connectionNear(m.cursorPoint())
	if !ok {
		m.setError("no connection under cursor")
		return
	}
	before, _ := m.store.Connection(rc.ID)
	idx, ok := m.waypoints.InsertNearest(rc.ID, rc.Points, m.cursorPoint())
	if !ok {
		return
	}
	m.recordWaypoints(rc.ID, before.Waypoints)
	m.setSuccess("inserted waypoint %d on %s", idx, rc.ID)
}

func (m *Model) requestWaypointDelete(col, row int) {
	connID, idx, ok := m.waypointAt(col, row)
	if !ok {
		m.setError("no waypoint here")
		return
	}
	if !m.cfg.Confirmations {
		m.deleteWaypoint(connID, idx)
		return
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmDeleteWaypoint
	m.confirmConn, m.confirmIndex = connID, idx
}

func (m *Model) deleteWaypoint(connID string, index int) {
	before, ok := m.store.Connection(connID)
	if !ok {
		return
	}
	if m.waypoints.Delete(connID, index) {
		m.recordWaypoints(connID, before.Waypoints)
		m.setSuccess("deleted waypoint %d of %s", index, connID)
	}
}

// recordWaypoints records the change from before to the connection's
// current waypoints, if any.
func (m *Model) recordWaypoints(connID string, before []geom.Point) {
	after, ok := m.store.Connection(connID)
	if !ok || slices.Equal(after.Waypoints, before) {
		return
	}
	m.history.Record(Action{
		Type:    ActionEditWaypoints,
		Data:    WaypointsData{ConnectionID: connID, Waypoints: after.Waypoints},
		Inverse: WaypointsData{ConnectionID: connID, Waypoints: before},
	})
}

func (m *Model) undo() {
	if m.coord.Active() != session.KindNone {
		m.setError("finish the current gesture first")
		return
	}
	if !m.history.Undo(m.store) {
		m.setError("nothing to undo")
	}
}

func (m *Model) redo() {
	if m.coord.Active() != session.KindNone {
		m.setError("finish the current gesture first")
		return
	}
	if !m.history.Redo(m.store) {
		m.setError("nothing to redo")
	}
}
