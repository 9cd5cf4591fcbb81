package routing

import (
	"math"
	"testing"

	"topodraw/internal/geom"
	"topodraw/internal/topology"
)

func device(id string, x, y float64, ports ...topology.Port) topology.Symbol {
	return topology.NewDevice(id, id, geom.Pt(x, y), ports...)
}

func TestResolveEndpoints_HorizontalScenario(t *testing.T) {
	a := device("a", 0, 0)
	b := device("b", 200, 0)

	ep := ResolveEndpoints(a, b, a.Position, b.Position, "", "")
	if ep.Source != geom.Pt(60, 30) {
		t.Errorf("source = %v, want (60,30)", ep.Source)
	}
	if ep.Target != geom.Pt(200, 30) {
		t.Errorf("target = %v, want (200,30)", ep.Target)
	}
}

func TestResolveEndpoints_AnchorsOnBoundaryAndFacing(t *testing.T) {
	positions := []geom.Point{
		{X: 0, Y: 0}, {X: 300, Y: 10}, {X: -250, Y: 40}, {X: 20, Y: 280},
		{X: -15, Y: -300}, {X: 150, Y: 150}, {X: -150, Y: 150}, {X: 0, Y: 0},
	}
	a := device("a", 0, 0)

	for _, pos := range positions {
		b := device("b", pos.X, pos.Y)
		ep := ResolveEndpoints(a, b, a.Position, b.Position, "", "")

		ra, rb := a.Bounds(), b.Bounds()
		if !ra.OnBoundary(ep.Source) {
			t.Errorf("b at %v: source %v not on source boundary", pos, ep.Source)
		}
		if !rb.OnBoundary(ep.Target) {
			t.Errorf("b at %v: target %v not on target boundary", pos, ep.Target)
		}

		dx := rb.Center().X - ra.Center().X
		dy := rb.Center().Y - ra.Center().Y
		if math.Abs(dx) > math.Abs(dy) {
			if dx > 0 && (ep.Source.X != ra.Max().X || ep.Target.X != rb.Min.X) {
				t.Errorf("b at %v: expected right->left edges, got %v -> %v", pos, ep.Source, ep.Target)
			}
			if dx < 0 && (ep.Source.X != ra.Min.X || ep.Target.X != rb.Max().X) {
				t.Errorf("b at %v: expected left->right edges, got %v -> %v", pos, ep.Source, ep.Target)
			}
			continue
		}
		if dy > 0 && (ep.Source.Y != ra.Max().Y || ep.Target.Y != rb.Min.Y) {
			t.Errorf("b at %v: expected bottom->top edges, got %v -> %v", pos, ep.Source, ep.Target)
		}
		if dy <= 0 && (ep.Source.Y != ra.Min.Y || ep.Target.Y != rb.Max().Y) {
			t.Errorf("b at %v: expected top->bottom edges, got %v -> %v", pos, ep.Source, ep.Target)
		}
	}
}

func TestResolveEndpoints_DiagonalTieIsVertical(t *testing.T) {
	a := device("a", 0, 0)
	b := device("b", 100, 100)

	ep := ResolveEndpoints(a, b, a.Position, b.Position, "", "")
	if ep.Source != geom.Pt(30, 60) || ep.Target != geom.Pt(130, 100) {
		t.Errorf("tie resolved to %v -> %v, want (30,60) -> (130,100)", ep.Source, ep.Target)
	}
}

func TestResolveEndpoints_CoincidentSymbolsStayFinite(t *testing.T) {
	a := device("a", 10, 10)
	b := device("b", 10, 10)

	ep := ResolveEndpoints(a, b, a.Position, b.Position, "", "")
	if !ep.IsFinite() {
		t.Fatalf("coincident symbols produced non-finite endpoints %+v", ep)
	}
	if ep.Source != geom.Pt(40, 10) || ep.Target != geom.Pt(40, 70) {
		t.Errorf("coincident endpoints = %v -> %v, want (40,10) -> (40,70)", ep.Source, ep.Target)
	}
}

func TestResolveEndpoints_UsesPositionArguments(t *testing.T) {
	a := device("a", 0, 0)
	b := device("b", 200, 0)

	ep := ResolveEndpoints(a, b, geom.Pt(0, 400), b.Position, "", "")
	if ep.Source != geom.Pt(30, 400) || ep.Target != geom.Pt(230, 60) {
		t.Errorf("endpoints = %v -> %v, want (30,400) -> (230,60)", ep.Source, ep.Target)
	}
}

func TestResolveEndpoints_PortsAreAuthoritative(t *testing.T) {
	a := device("a", 0, 0, topology.Port{ID: "eth0", Offset: geom.Pt(0, 10)})
	b := device("b", 200, 0, topology.Port{ID: "eth1", Offset: geom.Pt(60, 50)})

	ep := ResolveEndpoints(a, b, a.Position, b.Position, "eth0", "eth1")
	if ep.Source != geom.Pt(0, 10) {
		t.Errorf("source = %v, want port anchor (0,10)", ep.Source)
	}
	if ep.Target != geom.Pt(260, 50) {
		t.Errorf("target = %v, want port anchor (260,50)", ep.Target)
	}
}

func TestResolveEndpoints_DanglingPortFallsBackPerEndpoint(t *testing.T) {
	a := device("a", 0, 0, topology.Port{ID: "eth0", Offset: geom.Pt(0, 10)})
	b := device("b", 200, 0)

	ep := ResolveEndpoints(a, b, a.Position, b.Position, "eth0", "removed")
	if ep.Source != geom.Pt(0, 10) {
		t.Errorf("valid source port ignored: %v", ep.Source)
	}
	if ep.Target != geom.Pt(200, 30) {
		t.Errorf("dangling target port should fall back to (200,30), got %v", ep.Target)
	}

	ep = ResolveEndpoints(a, b, a.Position, b.Position, "removed", "")
	if ep.Source != geom.Pt(60, 30) {
		t.Errorf("dangling source port should fall back to (60,30), got %v", ep.Source)
	}
}

func TestPortAnchor_RejectsNonFiniteOffset(t *testing.T) {
	a := device("a", 0, 0, topology.Port{ID: "bad", Offset: geom.Pt(math.NaN(), 0)})
	if _, ok := PortAnchor(a, a.Position, "bad"); ok {
		t.Fatal("PortAnchor accepted a NaN offset")
	}
	ep := ResolveEndpoints(a, device("b", 200, 0), a.Position, geom.Pt(200, 0), "bad", "")
	if !ep.IsFinite() {
		t.Fatalf("NaN port leaked into endpoints: %+v", ep)
	}
}

func TestAutoAnchors_ShapesOfDifferentSize(t *testing.T) {
	src := geom.RectAt(geom.Pt(0, 0), geom.Size{W: 120, H: 40})
	dst := geom.RectAt(geom.Pt(0, 300), geom.Size{W: 60, H: 60})

	ep := AutoAnchors(src, dst)
	if ep.Source != geom.Pt(60, 40) || ep.Target != geom.Pt(30, 300) {
		t.Errorf("AutoAnchors = %v -> %v, want (60,40) -> (30,300)", ep.Source, ep.Target)
	}
}
