package session

import (
	"testing"

	"topodraw/internal/geom"
)

func TestCoordinator_TokensAndRelease(t *testing.T) {
	c := NewCoordinator()
	if c.Active() != KindNone {
		t.Fatalf("new coordinator active = %q", c.Active())
	}

	interrupted := 0
	first := c.acquire(KindDrag, func() { interrupted++ })
	second := c.acquire(KindWaypoint, nil)

	if interrupted != 1 {
		t.Fatalf("previous owner interrupted %d times, want 1", interrupted)
	}
	if c.holds(first) {
		t.Error("stale token still holds the slot")
	}
	if !c.holds(second) || c.Active() != KindWaypoint {
		t.Error("current token lost the slot")
	}

	c.release(first)
	if c.Active() != KindWaypoint {
		t.Error("stale release cleared the slot")
	}
	c.release(second)
	if c.Active() != KindNone || c.holds(second) {
		t.Error("release did not clear the slot")
	}
	if c.holds(0) {
		t.Error("zero token holds the slot")
	}
}

func TestCoordinator_DragInterruptsWaypointEdit(t *testing.T) {
	s := dragStore(t)
	_ = s.SetWaypoints("c1", []geom.Point{{X: 100, Y: 100}})
	coord := NewCoordinator()
	ws := NewWaypointSession(s, coord)
	ds := NewDragSession(s, coord)

	ws.Start("c1", 0)
	ds.Start("r1", nil)

	if _, ok := ws.Active(); ok {
		t.Fatal("waypoint drag survived a symbol drag starting")
	}
	if ws.Move("c1", 0, geom.Pt(1, 1)) {
		t.Fatal("interrupted waypoint session wrote")
	}
	if coord.Active() != KindDrag {
		t.Fatalf("active kind = %q, want drag", coord.Active())
	}

	ws.Start("c1", 0)
	if _, ok := ds.Active(); ok {
		t.Fatal("symbol drag survived a waypoint drag starting")
	}
	if _, ok := ds.Move(geom.Pt(5, 5)); ok {
		t.Fatal("interrupted drag session wrote")
	}
	if got := position(t, s, "r1"); got != geom.Pt(0, 0) {
		t.Fatalf("r1 at %v after interrupted drag", got)
	}
}

func TestCoordinator_EndActive(t *testing.T) {
	s := dragStore(t)
	coord := NewCoordinator()
	ds := NewDragSession(s, coord)
	ds.Start("r1", []string{"r1", "r2"})
	ds.Move(geom.Pt(15, 0))

	coord.EndActive()
	if coord.Active() != KindNone {
		t.Fatalf("active kind = %q after EndActive", coord.Active())
	}
	if _, ok := ds.Active(); ok {
		t.Fatal("drag still active after EndActive")
	}
	if got := position(t, s, "r2"); got != geom.Pt(215, 0) {
		t.Fatalf("r2 at %v, EndActive must not roll back", got)
	}

	// Nothing held: no-op.
	coord.EndActive()
}
