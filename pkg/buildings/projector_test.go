package buildings

import (
	"math"
	"math/rand"
	"testing"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

func squareLot() geo.Polygon {
	return geo.NewPolygon(geo.V(100, 100), geo.V(120, 100), geo.V(120, 120), geo.V(100, 120))
}

func TestOrthographicRoofIsTranslatedLot(t *testing.T) {
	view := ViewState{
		Zoom:         1.0,
		Camera:       geo.V(0, -1),
		Orthographic: true,
	}
	m := project(squareLot(), 40, view)
	for i, v := range m.LotScreen.Vertices {
		want := v.Add(geo.V(0, -40))
		got := m.Roof.Vertices[i]
		if math.Abs(got.X-want.X) > 0.01 || math.Abs(got.Y-want.Y) > 0.01 {
			t.Errorf("roof vertex %d (%f,%f), want (%f,%f)", i, got.X, got.Y, want.X, want.Y)
		}
	}
}

func TestPerspectiveRoofScalesFromCamera(t *testing.T) {
	view := ViewState{
		Zoom:   1.0,
		Camera: geo.V(0, 0),
	}
	m := project(squareLot(), 40, view)
	// d = 1000, factor = 40/960.
	factor := 1 + 40.0/960.0
	for i, v := range m.LotScreen.Vertices {
		got := m.Roof.Vertices[i]
		if math.Abs(got.X-v.X*factor) > 0.01 || math.Abs(got.Y-v.Y*factor) > 0.01 {
			t.Errorf("roof vertex %d (%f,%f), want scaled by %f", i, got.X, got.Y, factor)
		}
	}
}

func TestSideQuadsPerEdge(t *testing.T) {
	view := ViewState{Zoom: 1, Camera: geo.V(0, -1), Orthographic: true}
	m := project(squareLot(), 30, view)
	if len(m.Sides) != 4 {
		t.Fatalf("expected 4 side quads, got %d", len(m.Sides))
	}
	for i, q := range m.Sides {
		if len(q.Vertices) != 4 {
			t.Errorf("side %d has %d vertices, want 4", i, len(q.Vertices))
		}
	}
	// Each quad is [lot_i, lot_j, roof_j, roof_i].
	q := m.Sides[0]
	if q.Vertices[0] != m.LotScreen.Vertices[0] || q.Vertices[3] != m.Roof.Vertices[0] {
		t.Error("side quad vertex order mismatch")
	}
}

func TestModelsSortedByHeight(t *testing.T) {
	lots := []geo.Polygon{squareLot(), squareLot(), squareLot(), squareLot()}
	view := ViewState{Zoom: 1, Camera: geo.V(0, -1), Orthographic: true}
	models := GenerateModels(lots, view, HeightRange{Min: 20, Max: 40}, rand.New(rand.NewSource(5)))
	for i := 1; i < len(models); i++ {
		if models[i].Height < models[i-1].Height {
			t.Fatal("models should be sorted ascending by height")
		}
	}
	for _, m := range models {
		if m.Height < 20 || m.Height > 40 {
			t.Errorf("height %f outside [20,40]", m.Height)
		}
	}
}

func TestWorldToScreenAppliesZoomAndOrigin(t *testing.T) {
	view := ViewState{Origin: geo.V(100, 50), Zoom: 2}
	s := view.WorldToScreen(geo.V(110, 60))
	if s != geo.V(20, 20) {
		t.Errorf("got (%f,%f), want (20,20)", s.X, s.Y)
	}
}
