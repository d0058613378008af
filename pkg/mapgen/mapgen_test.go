package mapgen

import (
	"testing"
	"time"

	"github.com/violet-summer/MapGenerator/pkg/blocks"
	"github.com/violet-summer/MapGenerator/pkg/buildings"
	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/spec"
	"github.com/violet-summer/MapGenerator/pkg/streamline"
)

// smallSpec keeps generation fast enough for tests.
func smallSpec() *spec.MapSpec {
	base := streamline.Params{
		Dstep:             1,
		Dcirclejoin:       5,
		Joinangle:         0.1,
		PathIterations:    600,
		SeedTries:         100,
		SimplifyTolerance: 0.5,
	}
	main := base
	main.Dsep, main.Dtest, main.Dlookahead = 60, 30, 60
	major := base
	major.Dsep, major.Dtest, major.Dlookahead = 30, 15, 30
	minor := base
	minor.Dsep, minor.Dtest, minor.Dlookahead = 15, 10, 20

	return &spec.MapSpec{
		Zoom:            1,
		WorldDimensions: geo.V(400, 200),
		Origin:          geo.V(0, 0),
		Seed:            42,
		TensorField: spec.TensorFieldDef{
			NoiseParams: field.NoiseParams{
				NoiseSizePark:  20,
				NoiseAnglePark: 90,
			},
			BasisFields: []spec.BasisFieldDef{
				{Type: "grid", X: 200, Y: 100, Size: 400, Decay: 2, Theta: 0},
			},
		},
		Water: spec.WaterDef{
			CoastParams:   streamline.NoiseStreamlineParams{Enabled: false},
			RiverParams:   streamline.NoiseStreamlineParams{Enabled: false},
			RiverBankSize: 2,
			RiverSize:     6,
		},
		Streamlines: spec.StreamlinesDef{Main: main, Major: major, Minor: minor},
		Parks:       spec.ParksDef{NumBigParks: 1},
		Buildings: spec.BuildingsDef{
			Params: blocks.Params{
				MaxLength:      20,
				MinArea:        20,
				ShrinkSpacing:  1,
				ChanceNoDivide: 0.05,
			},
			HeightRange: buildings.HeightRange{Min: 20, Max: 40},
		},
		Options: spec.OptionsDef{AnimationSpeed: 30},
	}
}

func TestGenerateProducesOutput(t *testing.T) {
	d := New(smallSpec())
	d.Generate()
	out := d.Output()

	if out.Sea.IsEmpty() {
		t.Error("expected a sea polygon")
	}
	if len(out.MainRoads) == 0 {
		t.Error("expected main roads")
	}
	if len(out.MajorRoads) == 0 {
		t.Error("expected major roads")
	}
	if len(out.MinorRoads) == 0 {
		t.Error("expected minor roads")
	}
}

func TestSeaSmallerThanHalfWorld(t *testing.T) {
	s := smallSpec()
	d := New(s)
	d.Generate()
	sea := d.Output().Sea
	if sea.IsEmpty() {
		t.Fatal("expected a sea polygon")
	}
	half := s.WorldDimensions.X * s.WorldDimensions.Y / 2
	if sea.Area() >= half {
		t.Errorf("sea area %f should be under half the world %f", sea.Area(), half)
	}
}

func TestDeterminism(t *testing.T) {
	a := New(smallSpec())
	a.Generate()
	b := New(smallSpec())
	b.Generate()

	oa, ob := a.Output(), b.Output()
	if len(oa.MainRoads) != len(ob.MainRoads) {
		t.Fatalf("main road counts differ: %d vs %d", len(oa.MainRoads), len(ob.MainRoads))
	}
	for i := range oa.MainRoads {
		if len(oa.MainRoads[i]) != len(ob.MainRoads[i]) {
			t.Fatalf("main road %d lengths differ", i)
		}
		for j := range oa.MainRoads[i] {
			if oa.MainRoads[i][j] != ob.MainRoads[i][j] {
				t.Fatalf("main road %d point %d differs", i, j)
			}
		}
	}
	if len(oa.Lots) != len(ob.Lots) {
		t.Fatalf("lot counts differ: %d vs %d", len(oa.Lots), len(ob.Lots))
	}
	for i := range oa.Lots {
		for j := range oa.Lots[i].Vertices {
			if oa.Lots[i].Vertices[j] != ob.Lots[i].Vertices[j] {
				t.Fatalf("lot %d vertex %d differs", i, j)
			}
		}
	}
}

func TestLotsAvoidWater(t *testing.T) {
	d := New(smallSpec())
	d.Generate()
	out := d.Output()
	for i, lot := range out.Lots {
		for _, v := range lot.Vertices {
			if out.Sea.Contains(v) {
				t.Fatalf("lot %d vertex inside sea", i)
			}
			if out.River.Contains(v) {
				t.Fatalf("lot %d vertex inside river", i)
			}
		}
	}
}

func TestInvalidateClearsDependents(t *testing.T) {
	d := New(smallSpec())
	d.Generate()
	if d.major == nil || d.minor == nil {
		t.Fatal("expected road generators after generate")
	}

	d.Invalidate(StageMajor)
	if d.major != nil {
		t.Error("major should be cleared")
	}
	if d.minor != nil {
		t.Error("minor depends on major and should be cleared")
	}
	if d.models != nil {
		t.Error("buildings depend on roads and should be cleared")
	}
	if d.water == nil || d.main == nil {
		t.Error("upstream stages should survive")
	}

	d.Generate()
	if d.major == nil || d.minor == nil || d.lots == nil {
		t.Error("generate should rebuild invalidated stages")
	}
}

func TestStepRunsToCompletion(t *testing.T) {
	d := New(smallSpec())
	for i := 0; d.Step(5 * time.Millisecond); i++ {
		if i > 100000 {
			t.Fatal("step never finished")
		}
	}
	if len(d.Output().MainRoads) == 0 {
		t.Error("stepped generation should produce roads")
	}
}

func TestEmptyBasisFieldsProduceEmptyMap(t *testing.T) {
	s := smallSpec()
	// A single far-away tiny field leaves the world degenerate.
	s.TensorField.BasisFields = []spec.BasisFieldDef{
		{Type: "grid", X: -100000, Y: -100000, Size: 1, Decay: 100},
	}
	d := New(s)
	d.Generate()
	out := d.Output()
	if len(out.MainRoads) != 0 || len(out.Lots) != 0 {
		t.Error("degenerate field should produce an empty map, not a crash")
	}
}

func TestSelectParksScattered(t *testing.T) {
	d := New(smallSpec())
	polys := []geo.Polygon{
		square(0), square(1), square(2), square(3), square(4),
	}
	parks := d.selectParks(polys, 3, false)
	if len(parks) != 3 {
		t.Fatalf("expected 3 parks, got %d", len(parks))
	}
	seen := map[float64]bool{}
	for _, p := range parks {
		x := p.Vertices[0].X
		if seen[x] {
			t.Fatal("duplicate park selected")
		}
		seen[x] = true
	}
}

func TestSelectParksClustered(t *testing.T) {
	d := New(smallSpec())
	var polys []geo.Polygon
	for i := 0; i < 10; i++ {
		polys = append(polys, square(i))
	}
	parks := d.selectParks(polys, 3, true)
	if len(parks) != 3 {
		t.Fatalf("expected 3 parks, got %d", len(parks))
	}
	// Clustered selection returns consecutive polygons.
	first := parks[0].Vertices[0].X / 20
	for i, p := range parks {
		if p.Vertices[0].X/20 != first+float64(i) {
			t.Fatal("clustered parks should occupy consecutive indices")
		}
	}
}

func TestSelectParksMoreThanAvailable(t *testing.T) {
	d := New(smallSpec())
	polys := []geo.Polygon{square(0), square(1)}
	parks := d.selectParks(polys, 5, false)
	if len(parks) != 2 {
		t.Fatalf("expected all 2 polygons, got %d", len(parks))
	}
}

func square(i int) geo.Polygon {
	x := float64(i * 20)
	return geo.NewPolygon(geo.V(x, 0), geo.V(x+10, 0), geo.V(x+10, 10), geo.V(x, 10))
}
