package streamline

import (
	"log"
	"math/rand"

	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// waterTries is how many seeds the water generator spends looking for a
// streamline that reaches both world edges.
const waterTries = 100

// NoiseStreamlineParams controls the rotational noise applied while a
// single water streamline grows.
type NoiseStreamlineParams struct {
	Enabled bool    `json:"noiseEnabled" yaml:"noiseEnabled"`
	Size    float64 `json:"noiseSize" yaml:"noiseSize"`
	Angle   float64 `json:"noiseAngle" yaml:"noiseAngle"`
}

// WaterParams extends streamline params with coastline and river settings.
type WaterParams struct {
	Params        `yaml:",inline"`
	CoastParams   NoiseStreamlineParams `json:"coastParams" yaml:"coastParams"`
	RiverParams   NoiseStreamlineParams `json:"riverParams" yaml:"riverParams"`
	RiverBankSize float64               `json:"riverBankSize" yaml:"riverBankSize"`
	RiverSize     float64               `json:"riverSize" yaml:"riverSize"`
}

// WaterGenerator specializes the streamline generator for the coastline
// and river: single streamlines that must reach both world edges.
type WaterGenerator struct {
	*Generator
	field  *field.TensorField
	params WaterParams

	coastlineMajor bool
	coastline      []geo.Vec
	seaPolygon     geo.Polygon
	riverPolygon   geo.Polygon
	secondaryRiver []geo.Vec
}

// NewWaterGenerator creates a water generator over the world rectangle.
func NewWaterGenerator(integrator Integrator, world geo.Rect, params WaterParams, f *field.TensorField, rng *rand.Rand) *WaterGenerator {
	return &WaterGenerator{
		Generator: NewGenerator(integrator, world, params.Params, rng),
		field:     f,
		params:    params,
	}
}

// Coastline returns the simplified coastline road.
func (w *WaterGenerator) Coastline() []geo.Vec {
	return w.coastline
}

// CoastlineMajor reports which parity the coastline followed; the river
// uses the opposite parity so coast and river cross perpendicularly.
func (w *WaterGenerator) CoastlineMajor() bool {
	return w.coastlineMajor
}

// SeaPolygon returns the sea, or an empty polygon if no coastline was found.
func (w *WaterGenerator) SeaPolygon() geo.Polygon {
	return w.seaPolygon
}

// RiverPolygon returns the river water surface, or an empty polygon if no
// river was found.
func (w *WaterGenerator) RiverPolygon() geo.Polygon {
	return w.riverPolygon
}

// SecondaryRiverRoad returns the river-bank road on the far side of the
// river.
func (w *WaterGenerator) SecondaryRiverRoad() []geo.Vec {
	return w.secondaryRiver
}

// CreateCoast grows the coastline, splits the world rectangle with it and
// records the smaller side as the sea.
func (w *WaterGenerator) CreateCoast() {
	if w.params.CoastParams.Enabled {
		w.field.EnableGlobalNoise(w.params.CoastParams.Angle, w.params.CoastParams.Size)
	}

	var coast []geo.Vec
	major := true
	for i := 0; i < waterTries; i++ {
		major = w.rng.Float64() < 0.5
		seed, ok := w.getSeed()
		if !ok {
			continue
		}
		coast = w.extendStreamline(w.integrateStreamline(seed, major))
		if w.reachesEdges(coast) {
			break
		}
	}
	w.field.DisableGlobalNoise()

	if !w.reachesEdges(coast) {
		log.Printf("water: no coastline reached both world edges after %d tries", waterTries)
		return
	}

	w.coastlineMajor = major
	road := w.simplify(coast)
	w.coastline = road

	sea, _ := geo.SliceRectangle(w.world, road)
	w.seaPolygon = sea
	w.field.Sea = sea

	w.simple = append(w.simple, road)

	// Densify back to dstep spacing so downstream grids see real samples.
	complexified := geo.Complexify(road, w.params.Dstep)
	w.Grid(major).AddPolyline(complexified)
	w.all = append(w.all, complexified)
	w.recordParity(major, len(w.all)-1)
}

// CreateRiver grows the river at the opposite parity to the coastline,
// buffers it into the river polygon, and splits the buffer boundary into
// two bank roads.
func (w *WaterGenerator) CreateRiver() {
	// Clear the sea so the reach-both-edges test sees the full rectangle.
	oldSea := w.field.Sea
	w.field.Sea = geo.Polygon{}
	w.field.IgnoreRiver = true
	if w.params.RiverParams.Enabled {
		w.field.EnableGlobalNoise(w.params.RiverParams.Angle, w.params.RiverParams.Size)
	}

	var river []geo.Vec
	found := false
	for i := 0; i < waterTries; i++ {
		seed, ok := w.getSeed()
		if !ok {
			continue
		}
		river = w.extendStreamline(w.integrateStreamline(seed, !w.coastlineMajor))
		if w.reachesEdges(river) {
			found = true
			break
		}
	}
	w.field.Sea = oldSea
	w.field.IgnoreRiver = false
	w.field.DisableGlobalNoise()

	if !found {
		log.Printf("water: no river reached both world edges after %d tries", waterTries)
		return
	}

	// The full buffer masks the tensor field; the narrower one is water.
	mask := geo.BufferPolyline(river, w.params.RiverSize)
	w.field.River = mask
	w.riverPolygon = geo.BufferPolyline(river, w.params.RiverSize-w.params.RiverBankSize)

	// Bank roads: the mask boundary, split by which side of the river the
	// samples fall on, dropping anything in the sea or off the world.
	expanded := geo.Complexify(mask.Vertices, w.params.Dstep)
	splitPoly, _ := geo.SliceRectangle(w.world, river)

	var road1, road2 []geo.Vec
	for _, v := range expanded {
		if w.seaPolygon.Contains(v) || !w.world.Contains(v) {
			continue
		}
		if splitPoly.Contains(v) {
			road1 = append(road1, v)
		} else {
			road2 = append(road2, v)
		}
	}
	if len(road1) == 0 || len(road2) == 0 {
		return
	}

	road1Simple := w.simplify(road1)
	road2Simple := w.simplify(road2)
	if road1[0].DistanceSq(road2[0]) < road1[0].DistanceSq(road2[len(road2)-1]) {
		road2Simple = geo.ReversePolyline(road2Simple)
	}

	w.simple = append(w.simple, road1Simple)
	w.secondaryRiver = road2Simple

	parity := !w.coastlineMajor
	w.Grid(parity).AddPolyline(road1)
	w.Grid(parity).AddPolyline(road2)
	w.all = append(w.all, road1)
	w.recordParity(parity, len(w.all)-1)
	w.all = append(w.all, road2)
	w.recordParity(parity, len(w.all)-1)
}

// recordParity files a committed streamline index under its parity.
func (w *WaterGenerator) recordParity(major bool, idx int) {
	if major {
		w.majorIndices = append(w.majorIndices, idx)
	} else {
		w.minorIndices = append(w.minorIndices, idx)
	}
}

// integrateStreamline grows a single uncommitted streamline from a seed.
func (w *WaterGenerator) integrateStreamline(seed geo.Vec, major bool) []geo.Vec {
	c := &integration{seed: seed, major: major, published: -1}
	for c.iter < w.params.PathIterations && (!c.fwdDone || !c.bwdDone) {
		c.iter++
		if !c.fwdDone {
			w.grow(c, true)
		}
		if !c.bwdDone {
			w.grow(c, false)
		}
	}
	return w.assemble(c)
}

// extendStreamline pushes both ends outward by five steps along their
// tangents, forcing clean edge exits.
func (w *WaterGenerator) extendStreamline(line []geo.Vec) []geo.Vec {
	if len(line) < 2 {
		return line
	}
	ext := w.params.Dstep * 5
	first := line[0].Add(line[0].Sub(line[1]).SetLength(ext))
	last := line[len(line)-1].Add(line[len(line)-1].Sub(line[len(line)-2]).SetLength(ext))
	out := make([]geo.Vec, 0, len(line)+2)
	out = append(out, first)
	out = append(out, line...)
	return append(out, last)
}

// reachesEdges reports whether both streamline ends left the world.
func (w *WaterGenerator) reachesEdges(line []geo.Vec) bool {
	if len(line) < 2 {
		return false
	}
	return !w.world.Contains(line[0]) && !w.world.Contains(line[len(line)-1])
}
