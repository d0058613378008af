package spec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConstraints(t *testing.T) {
	s := Default()
	if s.Zoom < 0.3 || s.Zoom > 20 {
		t.Errorf("default zoom %f out of range", s.Zoom)
	}
	for _, p := range []struct {
		name string
		d    float64
		te   float64
		se   float64
	}{
		{"main", s.Streamlines.Main.Dstep, s.Streamlines.Main.Dtest, s.Streamlines.Main.Dsep},
		{"major", s.Streamlines.Major.Dstep, s.Streamlines.Major.Dtest, s.Streamlines.Major.Dsep},
		{"minor", s.Streamlines.Minor.Dstep, s.Streamlines.Minor.Dtest, s.Streamlines.Minor.Dsep},
	} {
		if !(p.d < p.te && p.te <= p.se) {
			t.Errorf("%s: dstep << dtest <= dsep violated: %f %f %f", p.name, p.d, p.te, p.se)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	doc := `{
		"zoom": 1.5,
		"seed": 7,
		"worldDimensions": {"x": 800, "y": 600},
		"tensorField": {
			"basisFields": [
				{"type": "radial", "x": 400, "y": 300, "size": 200, "decay": 10}
			]
		}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Zoom != 1.5 || s.Seed != 7 {
		t.Errorf("top-level fields not loaded: zoom %f seed %d", s.Zoom, s.Seed)
	}
	if len(s.TensorField.BasisFields) != 1 || s.TensorField.BasisFields[0].Type != "radial" {
		t.Error("basis fields not loaded")
	}
	// Untouched groups keep their defaults.
	if s.Streamlines.Main.Dsep != Default().Streamlines.Main.Dsep {
		t.Error("missing groups should fall back to defaults")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	doc := `
zoom: 2
seed: 11
worldDimensions:
  x: 1000
  y: 500
parks:
  numBigParks: 3
  clusterBigParks: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Zoom != 2 || s.Seed != 11 {
		t.Errorf("top-level fields not loaded: zoom %f seed %d", s.Zoom, s.Seed)
	}
	if s.Parks.NumBigParks != 3 || !s.Parks.ClusterBigParks {
		t.Error("parks group not loaded")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
