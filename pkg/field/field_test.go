package field

import (
	"math"
	"testing"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestTensorFromAngleMajor(t *testing.T) {
	for _, angle := range []float64{0, 0.3, math.Pi / 4, 1.2} {
		tens := TensorFromAngle(angle)
		major := tens.Major()
		if !approxEqual(major.X, math.Cos(angle), tolerance) ||
			!approxEqual(major.Y, math.Sin(angle), tolerance) {
			t.Errorf("angle %f: major (%f,%f)", angle, major.X, major.Y)
		}
	}
}

func TestTensorMinorOrthogonal(t *testing.T) {
	tens := TensorFromAngle(0.7)
	if !approxEqual(tens.Major().Dot(tens.Minor()), 0, tolerance) {
		t.Errorf("major and minor should be orthogonal")
	}
}

func TestTensorZeroDegenerate(t *testing.T) {
	if !ZeroTensor.IsDegenerate() {
		t.Error("zero tensor should be degenerate")
	}
	if ZeroTensor.Major() != (geo.Vec{}) {
		t.Error("degenerate major should be zero vector")
	}
}

func TestTensorRotate(t *testing.T) {
	tens := TensorFromAngle(0).Rotate(math.Pi / 4)
	major := tens.Major()
	want := geo.V(math.Cos(math.Pi/4), math.Sin(math.Pi/4))
	if !approxEqual(math.Abs(major.Dot(want)), 1, tolerance) {
		t.Errorf("rotated major (%f,%f), want along (%f,%f)", major.X, major.Y, want.X, want.Y)
	}
}

func TestGridFieldDirection(t *testing.T) {
	g := NewGrid(geo.V(0, 0), 100, 10, 0)
	major := g.TensorAt(geo.V(50, 50)).Major()
	if !approxEqual(math.Abs(major.X), 1, tolerance) {
		t.Errorf("grid theta=0 major should be horizontal, got (%f,%f)", major.X, major.Y)
	}
}

func TestGridFieldStrengthDecay(t *testing.T) {
	g := NewGrid(geo.V(0, 0), 100, 10, 0)
	near := g.Strength(geo.V(1, 0))
	far := g.Strength(geo.V(500, 0))
	if near <= far {
		t.Errorf("strength should decay with distance: near %f, far %f", near, far)
	}
	if far > 1e-6 {
		t.Errorf("far strength should be near zero, got %f", far)
	}
}

func TestRadialFieldPerpendicular(t *testing.T) {
	r := NewRadial(geo.V(0, 0), 100, 10)
	// At a point east of the centre the major direction is vertical.
	major := r.TensorAt(geo.V(50, 0)).Major()
	if !approxEqual(math.Abs(major.Y), 1, tolerance) {
		t.Errorf("radial major east of centre should be vertical, got (%f,%f)", major.X, major.Y)
	}
	// The direction is always perpendicular to the radius.
	p := geo.V(30, 40)
	major = r.TensorAt(p).Major()
	if !approxEqual(major.Dot(p.Normalize()), 0, 0.05) {
		t.Errorf("radial major should be perpendicular to radius, dot %f", major.Dot(p.Normalize()))
	}
}

func TestSampleDirectionStableUnderScaling(t *testing.T) {
	f := New(NoiseParams{}, 42)
	f.AddGrid(geo.V(0, 0), 100, 10, 0.5)
	p := geo.V(10, 20)
	once := f.Sample(p)
	doubled := once.Add(once, false)
	a := once.Major()
	b := doubled.Major()
	if !approxEqual(math.Abs(a.Dot(b)), 1, tolerance) {
		t.Errorf("direction should be stable under scaling: (%f,%f) vs (%f,%f)", a.X, a.Y, b.X, b.Y)
	}
}

func TestSampleEmptyFieldList(t *testing.T) {
	f := New(NoiseParams{}, 1)
	tens := f.Sample(geo.V(5, 5))
	if tens.IsDegenerate() {
		t.Error("empty field list should fall back to a default grid, not degenerate")
	}
}

func TestSampleSeaMask(t *testing.T) {
	f := New(NoiseParams{}, 1)
	f.AddGrid(geo.V(0, 0), 100, 10, 0)
	f.Sea = geo.NewPolygon(geo.V(-10, -10), geo.V(10, -10), geo.V(10, 10), geo.V(-10, 10))
	if !f.Sample(geo.V(0, 0)).IsDegenerate() {
		t.Error("sample inside sea should be degenerate")
	}
	if f.Sample(geo.V(50, 50)).IsDegenerate() {
		t.Error("sample on land should not be degenerate")
	}
}

func TestIgnoreRiver(t *testing.T) {
	f := New(NoiseParams{}, 1)
	f.AddGrid(geo.V(0, 0), 100, 10, 0)
	f.River = geo.NewPolygon(geo.V(-10, -10), geo.V(10, -10), geo.V(10, 10), geo.V(-10, 10))
	if f.OnLand(geo.V(0, 0)) {
		t.Error("river should mask when not ignored")
	}
	f.IgnoreRiver = true
	if !f.OnLand(geo.V(0, 0)) {
		t.Error("river should not mask when ignored")
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := New(NoiseParams{GlobalNoise: true, NoiseSizeGlobal: 30, NoiseAngleGlobal: 20}, 42)
	b := New(NoiseParams{GlobalNoise: true, NoiseSizeGlobal: 30, NoiseAngleGlobal: 20}, 42)
	a.AddGrid(geo.V(0, 0), 100, 10, 0)
	b.AddGrid(geo.V(0, 0), 100, 10, 0)
	p := geo.V(17, 33)
	ta, tb := a.Sample(p), b.Sample(p)
	if ta != tb {
		t.Errorf("same seed should sample identically: %+v vs %+v", ta, tb)
	}
}
