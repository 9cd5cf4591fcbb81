// Package editor is the terminal canvas editor for topodraw.
//
// The editor is a bubbletea program. It draws the canvas by rasterizing the
// routing engine's rendered connections into character cells, one cell per
// CellWidth x CellHeight logical units, and feeds mouse gestures into the
// engine's sessions:
//
//   - left-drag on a symbol moves it, and the rest of the selection with it,
//     through a session.DragSession;
//   - left-drag on a waypoint handle (●) moves that waypoint through a
//     session.WaypointSession;
//   - right-click on a handle deletes the waypoint, after confirmation when
//     confirmations are enabled.
//
// Keyboard commands cover creating symbols and connections, toggling routing
// style and layer, layer visibility, waypoint insertion, undo/redo, saving,
// PNG export and copying route geometry to the clipboard. Undo and redo are
// refused while a gesture is in progress.
package editor
