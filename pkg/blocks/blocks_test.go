package blocks

import (
	"math/rand"
	"testing"

	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/graph"
)

func gridGraph(t *testing.T) *graph.Graph {
	t.Helper()
	// A 2x2 grid of 10-unit cells: 3 horizontal + 3 vertical lines.
	var lines []graph.Polyline
	for i := 0; i <= 2; i++ {
		y := float64(i * 10)
		lines = append(lines, graph.Polyline{Points: []geo.Vec{geo.V(0, y), geo.V(20, y)}})
		x := float64(i * 10)
		lines = append(lines, graph.Polyline{Points: []geo.Vec{geo.V(x, 0), geo.V(x, 20)}})
	}
	return graph.New(lines, 1, false)
}

func testParams() Params {
	return Params{
		MaxLength:      20,
		MinArea:        10,
		ShrinkSpacing:  1,
		ChanceNoDivide: 0,
	}
}

func TestFindPolygonsGridCells(t *testing.T) {
	g := gridGraph(t)
	polys := FindPolygons(g, testParams())
	if len(polys) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(polys))
	}
	for i, p := range polys {
		if !p.IsCounterClockwise() {
			t.Errorf("cell %d should be CCW", i)
		}
		if !approx(p.Area(), 100, 1) {
			t.Errorf("cell %d area %f, want 100", i, p.Area())
		}
	}
}

func TestFindPolygonsRespectsMinArea(t *testing.T) {
	g := gridGraph(t)
	params := testParams()
	params.MinArea = 200
	polys := FindPolygons(g, params)
	if len(polys) != 0 {
		t.Errorf("no cell reaches area 200, got %d polygons", len(polys))
	}
}

func TestFindPolygonsTriangle(t *testing.T) {
	lines := []graph.Polyline{
		{Points: []geo.Vec{geo.V(0, 0), geo.V(10, 0)}},
		{Points: []geo.Vec{geo.V(10, 0), geo.V(5, 8)}},
		{Points: []geo.Vec{geo.V(5, 8), geo.V(0, 0)}},
	}
	g := graph.New(lines, 1, false)
	polys := FindPolygons(g, testParams())
	if len(polys) != 1 {
		t.Fatalf("expected 1 face, got %d", len(polys))
	}
	if !approx(polys[0].Area(), 40, 0.5) {
		t.Errorf("triangle area %f, want 40", polys[0].Area())
	}
}

func TestSubdivideSmallEmitsWhole(t *testing.T) {
	p := geo.NewPolygon(geo.V(0, 0), geo.V(5, 0), geo.V(5, 3), geo.V(0, 3))
	lots := Subdivide(p, testParams(), rand.New(rand.NewSource(1)))
	if len(lots) != 1 {
		t.Fatalf("area 15 < 2*minArea should emit whole, got %d lots", len(lots))
	}
}

func TestSubdivideDiscardsTiny(t *testing.T) {
	p := geo.NewPolygon(geo.V(0, 0), geo.V(2, 0), geo.V(2, 2), geo.V(0, 2))
	lots := Subdivide(p, testParams(), rand.New(rand.NewSource(1)))
	if len(lots) != 0 {
		t.Errorf("area 4 < 0.5*minArea should be discarded, got %d lots", len(lots))
	}
}

func TestSubdivideDiscardsSlivers(t *testing.T) {
	p := geo.NewPolygon(geo.V(0, 0), geo.V(200, 0), geo.V(200, 0.5), geo.V(0, 0.5))
	lots := Subdivide(p, testParams(), rand.New(rand.NewSource(1)))
	if len(lots) != 0 {
		t.Errorf("sliver should be discarded, got %d lots", len(lots))
	}
}

func TestSubdivideSplitsLarge(t *testing.T) {
	p := geo.NewPolygon(geo.V(0, 0), geo.V(40, 0), geo.V(40, 30), geo.V(0, 30))
	lots := Subdivide(p, testParams(), rand.New(rand.NewSource(1)))
	if len(lots) < 2 {
		t.Fatalf("area 1200 should subdivide, got %d lots", len(lots))
	}
	total := 0.0
	for _, lot := range lots {
		if lot.Area() >= 2*testParams().MinArea+1e-6 && lot.ShapeIndex() >= sliverIndex {
			// Lots at or above 2*minArea only appear via chanceNoDivide,
			// which is zero here.
			t.Errorf("lot area %f should have been subdivided further", lot.Area())
		}
		total += lot.Area()
	}
	if total > p.Area()+1 {
		t.Errorf("lot areas %f exceed block area %f", total, p.Area())
	}
}

func TestSubdivideDeterministic(t *testing.T) {
	p := geo.NewPolygon(geo.V(0, 0), geo.V(40, 0), geo.V(40, 30), geo.V(0, 30))
	a := Subdivide(p, testParams(), rand.New(rand.NewSource(9)))
	b := Subdivide(p, testParams(), rand.New(rand.NewSource(9)))
	if len(a) != len(b) {
		t.Fatalf("lot counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Vertices) != len(b[i].Vertices) {
			t.Fatalf("lot %d vertex counts differ", i)
		}
	}
}

func TestShrinkSetback(t *testing.T) {
	lots := []geo.Polygon{
		geo.NewPolygon(geo.V(0, 0), geo.V(10, 0), geo.V(10, 10), geo.V(0, 10)),
	}
	shrunk := Shrink(lots, 1)
	if len(shrunk) != 1 {
		t.Fatalf("expected 1 shrunk lot, got %d", len(shrunk))
	}
	if !approx(shrunk[0].Area(), 64, 0.5) {
		t.Errorf("expected area 64, got %f", shrunk[0].Area())
	}
}

func TestShrinkDropsDegenerate(t *testing.T) {
	lots := []geo.Polygon{
		geo.NewPolygon(geo.V(0, 0), geo.V(1, 0), geo.V(1, 1), geo.V(0, 1)),
	}
	if got := Shrink(lots, 5); len(got) != 0 {
		t.Errorf("over-shrunk lot should be dropped, got %d", len(got))
	}
}

func approx(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}
