package editor

import (
	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

type ActionType int

const (
	ActionAddSymbol ActionType = iota
	ActionAddConnection
	ActionMoveSymbols
	ActionEditWaypoints
	ActionSetStyle
	ActionSetLayer
)

// Action is one undoable edit. Data is the state after the edit and Inverse
// the state before it; both hold the same payload type.
type Action struct {
	Type    ActionType
	Data    any
	Inverse any
}

type SymbolData struct {
	Symbol  topology.Symbol
	Present bool
}

type ConnectionData struct {
	Connection topology.Connection
	Present    bool
}

type PositionsData struct {
	Positions map[string]geom.Point
}

type WaypointsData struct {
	ConnectionID string
	Waypoints    []geom.Point
}

type StyleData struct {
	ConnectionID string
	Style        topology.RoutingStyle
}

type LayerData struct {
	ConnectionID string
	Layer        topology.Layer
}

// History holds the undo and redo stacks for one canvas. Gestures are
// recorded only after they end, so undo never interleaves with a live
// session.
type History struct {
	undoStack []Action
	redoStack []Action
}

// Record pushes a completed edit and clears the redo stack.
func (h *History) Record(a Action) {
	h.undoStack = append(h.undoStack, a)
	h.redoStack = nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Undo restores the state before the most recent edit.
func (h *History) Undo(s *topology.Store) bool {
	if len(h.undoStack) == 0 {
		return false
	}
	last := len(h.undoStack) - 1
	a := h.undoStack[last]
	h.undoStack = h.undoStack[:last]

	apply(s, a.Type, a.Inverse)
	h.redoStack = append(h.redoStack, a)
	return true
}

// Redo re-applies the most recently undone edit.
func (h *History) Redo(s *topology.Store) bool {
	if len(h.redoStack) == 0 {
		return false
	}
	last := len(h.redoStack) - 1
	a := h.redoStack[last]
	h.redoStack = h.redoStack[:last]

	apply(s, a.Type, a.Data)
	h.undoStack = append(h.undoStack, a)
	return true
}

func apply(s *topology.Store, t ActionType, payload any) {
	switch t {
	case ActionAddSymbol:
		d := payload.(SymbolData)
		if d.Present {
			_ = s.AddSymbol(d.Symbol)
		} else {
			s.RemoveSymbol(d.Symbol.ID)
		}
	case ActionAddConnection:
		d := payload.(ConnectionData)
		if d.Present {
			_ = s.AddConnection(d.Connection)
		} else {
			s.RemoveConnection(d.Connection.ID)
		}
	case ActionMoveSymbols:
		d := payload.(PositionsData)
		for id, pos := range d.Positions {
			s.SetPosition(id, pos)
		}
	case ActionEditWaypoints:
		d := payload.(WaypointsData)
		s.SetWaypoints(d.ConnectionID, d.Waypoints)
	case ActionSetStyle:
		d := payload.(StyleData)
		s.SetStyle(d.ConnectionID, d.Style)
	case ActionSetLayer:
		d := payload.(LayerData)
		s.SetLayer(d.ConnectionID, d.Layer)
	}
}
