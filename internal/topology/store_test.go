package topology

import (
	"errors"
	"reflect"
	"testing"

	"topodraw/internal/geom"
)

func TestStore_AddAndCloneOnRead(t *testing.T) {
	s := NewStore()
	if err := s.AddSymbol(NewDevice("r1", "core", geom.Pt(0, 0), Port{ID: "eth0", Offset: geom.Pt(60, 10)})); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	if err := s.AddConnection(Connection{ID: "c1", SourceID: "r1", TargetID: "r2", Waypoints: []geom.Point{{X: 1, Y: 2}}}); err != nil {
		t.Fatalf("AddConnection: %v", err)
	}

	sym, _ := s.Symbol("r1")
	sym.Ports[0].ID = "mutated"
	again, _ := s.Symbol("r1")
	if again.Ports[0].ID != "eth0" {
		t.Fatalf("Symbol should clone ports; got %q", again.Ports[0].ID)
	}

	c, _ := s.Connection("c1")
	c.Waypoints[0] = geom.Pt(99, 99)
	again2, _ := s.Connection("c1")
	if again2.Waypoints[0] != geom.Pt(1, 2) {
		t.Fatalf("Connection should clone waypoints; got %v", again2.Waypoints[0])
	}
}

func TestStore_DuplicateAndEmptyIDs(t *testing.T) {
	s := NewStore()
	if err := s.AddSymbol(NewDevice("a", "", geom.Point{})); err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	if err := s.AddSymbol(NewDevice("a", "", geom.Point{})); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("AddSymbol duplicate err = %v, want ErrDuplicateID", err)
	}
	if err := s.AddConnection(Connection{}); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("AddConnection empty err = %v, want ErrEmptyID", err)
	}
}

func TestStore_RevisionBumpsOnMutation(t *testing.T) {
	s := NewStore()
	r0 := s.Revision()
	_ = s.AddSymbol(NewDevice("a", "", geom.Point{}))
	r1 := s.Revision()
	if r1 <= r0 {
		t.Fatalf("revision did not advance on AddSymbol: %d -> %d", r0, r1)
	}

	s.SetPosition("a", geom.Point{})
	if s.Revision() != r1 {
		t.Fatalf("no-op SetPosition should not bump revision")
	}

	s.SetPosition("a", geom.Pt(5, 5))
	if s.Revision() <= r1 {
		t.Fatalf("SetPosition did not bump revision")
	}
	if s.SetPosition("missing", geom.Pt(1, 1)) {
		t.Fatalf("SetPosition on missing symbol reported success")
	}
}

func TestStore_OrderPreservedAcrossRemoval(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		_ = s.AddSymbol(NewDevice(id, "", geom.Point{}))
	}
	s.RemoveSymbol("b")

	var ids []string
	for _, sym := range s.Symbols() {
		ids = append(ids, sym.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "c"}) {
		t.Fatalf("Symbols order = %v, want [a c]", ids)
	}
}

func TestStore_ConnectionsTouching(t *testing.T) {
	s := NewStore()
	_ = s.AddConnection(Connection{ID: "c2", SourceID: "a", TargetID: "b"})
	_ = s.AddConnection(Connection{ID: "c1", SourceID: "c", TargetID: "a"})
	_ = s.AddConnection(Connection{ID: "c3", SourceID: "c", TargetID: "d"})

	got := s.ConnectionsTouching("a")
	if !reflect.DeepEqual(got, []string{"c1", "c2"}) {
		t.Fatalf("ConnectionsTouching(a) = %v, want [c1 c2]", got)
	}
}

func TestConnection_Defaults(t *testing.T) {
	var c Connection
	if c.EffectiveLayer() != Layer3 {
		t.Errorf("unset layer = %q, want layer3", c.EffectiveLayer())
	}
	if c.EffectiveStyle() != Straight {
		t.Errorf("unset style = %q, want straight", c.EffectiveStyle())
	}
	c.Layer = "bogus"
	if c.EffectiveLayer() != Layer3 {
		t.Errorf("unknown layer = %q, want layer3", c.EffectiveLayer())
	}
	c.Layer = Layer2
	if c.EffectiveLayer() != Layer2 {
		t.Errorf("explicit layer2 = %q, want layer2", c.EffectiveLayer())
	}
}

func TestParseHelpers(t *testing.T) {
	if ParseRoutingStyle(" Orthogonal ") != Orthogonal {
		t.Error("ParseRoutingStyle should accept orthogonal case-insensitively")
	}
	if ParseRoutingStyle("curvy") != Straight {
		t.Error("unknown style should parse as straight")
	}
	if ParseLayer("LAYER2") != Layer2 || ParseLayer("") != Layer3 {
		t.Error("ParseLayer defaults wrong")
	}
	if Straight.Toggle() != Orthogonal || Orthogonal.Toggle() != Straight {
		t.Error("Toggle should flip styles")
	}
}

func TestSymbol_PortLookup(t *testing.T) {
	sym := NewDevice("r1", "", geom.Point{}, Port{ID: "p1", Offset: geom.Pt(0, 30)})
	if _, ok := sym.Port(""); ok {
		t.Error("empty port id should not resolve")
	}
	if _, ok := sym.Port("gone"); ok {
		t.Error("unknown port id should not resolve")
	}
	if p, ok := sym.Port("p1"); !ok || p.Offset != geom.Pt(0, 30) {
		t.Errorf("Port(p1) = %+v, %v", p, ok)
	}
	if NewShape("s", "", geom.Point{}, geom.Size{}).Size != DefaultShapeSize {
		t.Error("zero-size shape should get the default size")
	}
}
