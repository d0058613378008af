package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/violet-summer/MapGenerator/pkg/buildings"
	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/mapgen"
)

func sampleModel() *mapgen.MapModel {
	return &mapgen.MapModel{
		Sea:       geo.NewPolygon(geo.V(0, 0), geo.V(100, 0), geo.V(100, 30), geo.V(0, 30)),
		MainRoads: [][]geo.Vec{{geo.V(0, 50), geo.V(200, 50)}},
		Lots: []geo.Polygon{
			geo.NewPolygon(geo.V(10, 60), geo.V(30, 60), geo.V(30, 80), geo.V(10, 80)),
		},
	}
}

func TestWriteSVGProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, sampleModel(), geo.NewRect(geo.V(0, 0), geo.V(200, 100)), DefaultStyle())
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	if !strings.Contains(out, "polygon") {
		t.Error("expected polygon elements")
	}
	if !strings.Contains(out, "polyline") {
		t.Error("expected polyline elements for roads")
	}
}

func TestWritePNGProducesImage(t *testing.T) {
	var buf bytes.Buffer
	err := WritePNG(&buf, sampleModel(), geo.NewRect(geo.V(0, 0), geo.V(200, 100)), 1, DefaultStyle())
	if err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(buf.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("output is not a PNG")
	}
}

func TestWriteSTLProducesSolid(t *testing.T) {
	m := sampleModel()
	m.Buildings = append(m.Buildings, buildings.Model{
		Lot:    geo.NewPolygon(geo.V(50, 60), geo.V(70, 60), geo.V(70, 80), geo.V(50, 80)),
		Height: 30,
	})
	var buf bytes.Buffer
	if err := WriteSTL(&buf, m, geo.NewRect(geo.V(0, 0), geo.V(200, 100))); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "solid city") || !strings.Contains(out, "endsolid city") {
		t.Fatal("output is not an ASCII STL solid")
	}
	if strings.Count(out, "facet normal") < 8 {
		t.Error("expected facets for the ground slab and the building")
	}
}
