package editor

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"topodraw/internal/config"
	"topodraw/internal/document"
	"topodraw/internal/geom"
	"topodraw/internal/routing"
	"topodraw/internal/session"
	"topodraw/internal/topology"
)

func newTestEditor(t *testing.T, confirmations bool) *Model {
	t.Helper()
	s := topology.NewStore()
	_ = s.AddSymbol(topology.NewDevice("r1", "core", geom.Pt(0, 0)))
	_ = s.AddSymbol(topology.NewDevice("r2", "edge", geom.Pt(200, 0)))
	_ = s.AddSymbol(topology.NewDevice("sw1", "access", geom.Pt(100, 300)))
	_ = s.AddConnection(topology.Connection{ID: "c1", SourceID: "r1", TargetID: "r2",
		Waypoints: []geom.Point{{X: 105, Y: 125}}})

	cfg := config.Default()
	cfg.Confirmations = confirmations
	cfg.SaveDirectory = filepath.Join(t.TempDir(), "saves")
	m := New(Options{Config: cfg, Store: s})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func press(x, y int, shift bool) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Shift: shift, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease}
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pos(t *testing.T, m *Model, id string) geom.Point {
	t.Helper()
	sym, ok := m.Store().Symbol(id)
	if !ok {
		t.Fatalf("symbol %q missing", id)
	}
	return sym.Position
}

func TestEditor_MouseDragMovesSelection(t *testing.T) {
	m := newTestEditor(t, true)

	m.Update(press(2, 1, true))
	m.Update(press(22, 1, true))
	if !reflect.DeepEqual(m.selection, []string{"r1", "r2"}) {
		t.Fatalf("selection = %v", m.selection)
	}

	m.Update(press(2, 1, false))
	if m.coord.Active() != session.KindDrag {
		t.Fatalf("active session = %q, want drag", m.coord.Active())
	}
	m.Update(motion(5, 2))
	m.Update(motion(7, 3))

	if got := pos(t, m, "r1"); got != geom.Pt(50, 40) {
		t.Fatalf("r1 at %v, want (50,40)", got)
	}
	if got := pos(t, m, "r2"); got != geom.Pt(250, 40) {
		t.Fatalf("r2 at %v, want (250,40)", got)
	}
	if got := pos(t, m, "sw1"); got != geom.Pt(100, 300) {
		t.Fatalf("unselected sw1 moved to %v", got)
	}

	// Routes follow on the same frame.
	rc, _ := routing.RenderConnection(mustConn(t, m, "c1"), m.Store())
	if rc.Points[0] != 110 || rc.Points[1] != 70 {
		t.Fatalf("c1 source anchor = (%g,%g), want (110,70)", rc.Points[0], rc.Points[1])
	}

	m.Update(release(7, 3))
	if m.coord.Active() != session.KindNone {
		t.Fatal("release did not end the drag")
	}

	m.Update(keys("u"))
	if got := pos(t, m, "r2"); got != geom.Pt(200, 0) {
		t.Fatalf("undo left r2 at %v", got)
	}
	if got := pos(t, m, "r1"); got != geom.Pt(0, 0) {
		t.Fatalf("undo left r1 at %v", got)
	}
}

func TestEditor_ClickOutsideSelectionDragsAlone(t *testing.T) {
	m := newTestEditor(t, true)
	m.selection = []string{"r2", "sw1"}

	m.Update(press(2, 1, false))
	m.Update(motion(4, 1))
	m.Update(release(4, 1))

	if got := pos(t, m, "r1"); got != geom.Pt(20, 0) {
		t.Fatalf("r1 at %v", got)
	}
	if got := pos(t, m, "r2"); got != geom.Pt(200, 0) {
		t.Fatalf("r2 followed a drag it was not part of: %v", got)
	}
	if len(m.selection) != 0 {
		t.Fatalf("selection = %v, want cleared", m.selection)
	}
}

func TestEditor_MouseWaypointDrag(t *testing.T) {
	m := newTestEditor(t, true)

	// Waypoint (105,125) sits in cell (10,6).
	m.Update(press(10, 6, false))
	if d, ok := m.waypoints.Active(); !ok || d.ConnectionID != "c1" || d.Index != 0 {
		t.Fatalf("waypoint drag = %+v, %v", d, ok)
	}
	m.Update(motion(12, 8))
	m.Update(release(12, 8))

	want := []geom.Point{{X: 125, Y: 170}}
	if got := mustConn(t, m, "c1").Waypoints; !reflect.DeepEqual(got, want) {
		t.Fatalf("waypoints = %v, want %v", got, want)
	}
	if _, ok := m.waypoints.Active(); ok {
		t.Fatal("release did not end the waypoint drag")
	}

	m.Update(keys("u"))
	if got := mustConn(t, m, "c1").Waypoints; !reflect.DeepEqual(got, []geom.Point{{X: 105, Y: 125}}) {
		t.Fatalf("undo waypoints = %v", got)
	}
}

func TestEditor_RightClickDeletesWaypointAfterConfirm(t *testing.T) {
	m := newTestEditor(t, true)

	m.Update(tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.mode != ModeConfirm || m.confirmAction != ConfirmDeleteWaypoint {
		t.Fatalf("mode = %v, want delete confirmation", m.mode)
	}
	if len(mustConn(t, m, "c1").Waypoints) != 1 {
		t.Fatal("deleted before confirmation")
	}

	m.Update(keys("y"))
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after confirm", m.mode)
	}
	if wps := mustConn(t, m, "c1").Waypoints; len(wps) != 0 {
		t.Fatalf("waypoints = %v, want none", wps)
	}
}

func TestEditor_DeleteWithoutConfirmations(t *testing.T) {
	m := newTestEditor(t, false)
	m.cursorX, m.cursorY = 10, 6
	m.Update(keys("x"))
	if wps := mustConn(t, m, "c1").Waypoints; len(wps) != 0 {
		t.Fatalf("waypoints = %v, want none", wps)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v", m.mode)
	}
}

func TestEditor_KeyboardConnectWithWaypoint(t *testing.T) {
	m := newTestEditor(t, true)
	m.cfg.DefaultStyle = topology.Orthogonal

	m.cursorX, m.cursorY = 2, 1
	m.Update(keys("a"))
	m.cursorX, m.cursorY = 14, 18
	m.Update(keys("a"))
	m.cursorX, m.cursorY = 12, 16
	m.Update(keys("a"))

	c, ok := m.Store().Connection("link1")
	if !ok {
		t.Fatalf("no connection created: %s", m.errorMessage)
	}
	if c.SourceID != "r1" || c.TargetID != "sw1" || c.Style != topology.Orthogonal {
		t.Fatalf("connection = %+v", c)
	}
	if !reflect.DeepEqual(c.Waypoints, []geom.Point{{X: 145, Y: 370}}) {
		t.Fatalf("waypoints = %v", c.Waypoints)
	}
	if c.EffectiveLayer() != topology.Layer3 {
		t.Fatalf("layer = %q", c.Layer)
	}

	m.Update(keys("u"))
	if _, ok := m.Store().Connection("link1"); ok {
		t.Fatal("undo did not remove the connection")
	}
}

func TestEditor_ToggleStyleAndLayer(t *testing.T) {
	m := newTestEditor(t, true)
	// Cursor on the c1 segment from r1's right edge to the waypoint.
	m.cursorX, m.cursorY = 10, 5

	m.Update(keys("r"))
	if got := mustConn(t, m, "c1").Style; got != topology.Orthogonal {
		t.Fatalf("style = %q: %s", got, m.errorMessage)
	}
	m.Update(keys("t"))
	if got := mustConn(t, m, "c1").Layer; got != topology.Layer2 {
		t.Fatalf("layer = %q", got)
	}

	m.Update(keys("2"))
	_, visible := m.frame()
	if len(visible) != 0 {
		t.Fatalf("hidden layer2 still drawn: %+v", visible)
	}
	m.Update(keys("2"))

	m.Update(keys("u"))
	m.Update(keys("u"))
	c := mustConn(t, m, "c1")
	if c.Style != "" || c.Layer != "" {
		t.Fatalf("after undo style=%q layer=%q, want both unset", c.Style, c.Layer)
	}
}

func TestEditor_InsertWaypointAtCursor(t *testing.T) {
	m := newTestEditor(t, true)
	// Cell (17,3) centers on (175,70), near the waypoint->r2 segment.
	m.cursorX, m.cursorY = 17, 3
	m.Update(keys("w"))

	want := []geom.Point{{X: 105, Y: 125}, {X: 175, Y: 70}}
	if got := mustConn(t, m, "c1").Waypoints; !reflect.DeepEqual(got, want) {
		t.Fatalf("waypoints = %v, want %v (%s)", got, want, m.errorMessage)
	}
}

func TestEditor_UndoRefusedMidGesture(t *testing.T) {
	m := newTestEditor(t, true)
	m.Update(press(2, 1, false))
	m.Update(motion(3, 1))
	m.Update(keys("u"))

	if !strings.Contains(m.errorMessage, "gesture") {
		t.Fatalf("error = %q", m.errorMessage)
	}
	if got := pos(t, m, "r1"); got != geom.Pt(10, 0) {
		t.Fatalf("r1 at %v", got)
	}
}

func TestEditor_KeyboardMoveEscapeKeepsPositions(t *testing.T) {
	m := newTestEditor(t, true)
	m.selection = []string{"r1", "r2"}
	m.cursorX, m.cursorY = 2, 1

	m.Update(keys("m"))
	if m.mode != ModeMove {
		t.Fatalf("mode = %v", m.mode)
	}
	m.Update(keys("l"))
	m.Update(keys("L"))
	if got := pos(t, m, "r2"); got != geom.Pt(230, 0) {
		t.Fatalf("r2 at %v during move", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != ModeNormal || m.coord.Active() != session.KindNone {
		t.Fatalf("mode = %v, active = %q after esc", m.mode, m.coord.Active())
	}
	if got := pos(t, m, "r1"); got != geom.Pt(30, 0) {
		t.Fatalf("esc moved r1 to %v, want it kept at (30,0)", got)
	}
	if got := pos(t, m, "r2"); got != geom.Pt(230, 0) {
		t.Fatalf("esc moved r2 to %v, want it kept at (230,0)", got)
	}

	m.Update(keys("u"))
	if got := pos(t, m, "r2"); got != geom.Pt(200, 0) {
		t.Fatalf("undo left r2 at %v", got)
	}
	if got := pos(t, m, "r1"); got != geom.Pt(0, 0) {
		t.Fatalf("undo left r1 at %v", got)
	}
}

func TestEditor_SaveWritesDocument(t *testing.T) {
	m := newTestEditor(t, true)
	m.Update(keys("s"))
	if m.mode != ModeFileInput {
		t.Fatalf("mode = %v, want file prompt", m.mode)
	}
	m.input.SetValue("lab")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	path := filepath.Join(m.cfg.SaveDirectory, "lab.toml")
	if m.filename != path {
		t.Fatalf("filename = %q (%s)", m.filename, m.errorMessage)
	}
	loaded, err := document.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Connections(), m.Store().Connections()) {
		t.Fatal("saved connections differ")
	}
}

func TestEditor_ViewShowsCanvasAndStatus(t *testing.T) {
	m := newTestEditor(t, true)
	out := m.View()
	if !strings.Contains(out, "core") || !strings.Contains(out, "NORMAL") {
		t.Fatalf("view missing canvas or status:\n%s", out)
	}
	m.Update(keys("?"))
	if !strings.Contains(m.View(), "Connections") {
		t.Fatal("help view missing")
	}
}

func TestFormatRoute(t *testing.T) {
	rc := routing.RenderedConnection{ID: "c1", Style: topology.Straight, Points: []float64{60, 30, 200, 30.5}}
	if got := FormatRoute(rc); got != "c1 straight 60,30 200,30.5" {
		t.Fatalf("FormatRoute = %q", got)
	}
}

func mustConn(t *testing.T, m *Model, id string) topology.Connection {
	t.Helper()
	c, ok := m.Store().Connection(id)
	if !ok {
		t.Fatalf("connection %q missing", id)
	}
	return c
}

func TestEditor_ExportTooLargeReportsError(t *testing.T) {
	m := newTestEditor(t, true)
	m.Store().SetWaypoints("c1", []geom.Point{{X: 1e8, Y: 1e8}})

	m.exportPNG("far.png")
	if !strings.Contains(m.errorMessage, "too large") {
		t.Fatalf("error = %q, want a size error", m.errorMessage)
	}
}
