package mapgen

import (
	"log"
	"math/rand"
	"time"

	"github.com/violet-summer/MapGenerator/pkg/blocks"
	"github.com/violet-summer/MapGenerator/pkg/buildings"
	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/graph"
	"github.com/violet-summer/MapGenerator/pkg/spec"
	"github.com/violet-summer/MapGenerator/pkg/streamline"
)

// Stage names, in pipeline order.
const (
	StageWater      = "water"
	StageMain       = "main"
	StageMajor      = "major"
	StageBigParks   = "bigParks"
	StageMinor      = "minor"
	StageSmallParks = "smallParks"
	StageBuildings  = "buildings"
)

// Road class labels carried onto graph edges.
const (
	ClassCoastline = "coastline"
	ClassRiver     = "river"
	ClassMain      = "main"
	ClassMajor     = "major"
	ClassMinor     = "minor"
)

// stage is one pipeline step with its upstream dependencies. Invalidating
// a stage invalidates its transitive dependents.
type stage struct {
	name string
	deps []string
	run  func()
	// step performs bounded work and reports whether more remains; nil
	// stages run synchronously.
	step func(time.Duration) bool
	done bool
}

// Driver sequences the generation stages over a single seeded RNG. With a
// fixed seed, identical parameters and the same noise backend, outputs are
// bit-identical across runs.
type Driver struct {
	spec  *spec.MapSpec
	world geo.Rect
	rng   *rand.Rand
	field *field.TensorField

	water *streamline.WaterGenerator
	main  *streamline.Generator
	major *streamline.Generator
	minor *streamline.Generator

	bigParks   []geo.Polygon
	smallParks []geo.Polygon
	blockPolys []geo.Polygon
	lots       []geo.Polygon
	models     []buildings.Model

	stages []*stage
}

// New creates a driver for the given spec. The spec is assumed validated.
func New(s *spec.MapSpec) *Driver {
	d := &Driver{
		spec:  s,
		world: s.WorldRect(),
		rng:   rand.New(rand.NewSource(s.Seed)),
	}
	d.field = buildField(s)
	d.stages = []*stage{
		{name: StageWater, run: d.runWater},
		{name: StageMain, deps: []string{StageWater}, run: d.runMain, step: d.stepRoads(&d.main, func() { d.initMain() })},
		{name: StageMajor, deps: []string{StageMain}, run: d.runMajor, step: d.stepRoads(&d.major, func() { d.initMajor() })},
		{name: StageBigParks, deps: []string{StageMajor}, run: d.runBigParks},
		{name: StageMinor, deps: []string{StageBigParks}, run: d.runMinor, step: d.stepRoads(&d.minor, func() { d.initMinor() })},
		{name: StageSmallParks, deps: []string{StageMinor}, run: d.runSmallParks},
		{name: StageBuildings, deps: []string{StageSmallParks}, run: d.runBuildings},
	}
	return d
}

// stepRoads adapts a road generator to the stage step interface, creating
// the generator lazily on the first call after an invalidation.
func (d *Driver) stepRoads(slot **streamline.Generator, init func()) func(time.Duration) bool {
	return func(budget time.Duration) bool {
		if *slot == nil {
			init()
		}
		return (*slot).Step(budget)
	}
}

// buildField constructs the tensor field from the spec.
func buildField(s *spec.MapSpec) *field.TensorField {
	f := field.New(s.TensorField.NoiseParams, s.Seed)
	for _, b := range s.TensorField.BasisFields {
		switch b.Type {
		case "radial":
			f.AddRadial(geo.V(b.X, b.Y), b.Size, b.Decay)
		default:
			f.AddGrid(geo.V(b.X, b.Y), b.Size, b.Decay, b.Theta)
		}
	}
	return f
}

// Field exposes the tensor field, read-only during a stage.
func (d *Driver) Field() *field.TensorField {
	return d.field
}

// Generate runs every stage that is not yet done, in pipeline order.
func (d *Driver) Generate() {
	for _, st := range d.stages {
		if st.done {
			continue
		}
		st.run()
		st.done = true
	}
}

// Step performs at most budget worth of work and returns whether more
// remains. Hosts interleave calls with rendering.
func (d *Driver) Step(budget time.Duration) bool {
	start := time.Now()
	for _, st := range d.stages {
		if st.done {
			continue
		}
		if st.step != nil {
			if st.step(budget - time.Since(start)) {
				return true
			}
			st.done = true
		} else {
			st.run()
			st.done = true
		}
		if time.Since(start) >= budget {
			break
		}
	}
	for _, st := range d.stages {
		if !st.done {
			return true
		}
	}
	return false
}

// Invalidate marks a stage and its transitive dependents as not done, so
// the next Generate or Step rebuilds them. Regenerating the coastline
// therefore clears roads, parks and buildings.
func (d *Driver) Invalidate(name string) {
	dirty := map[string]bool{name: true}
	changed := true
	for changed {
		changed = false
		for _, st := range d.stages {
			if dirty[st.name] {
				continue
			}
			for _, dep := range st.deps {
				if dirty[dep] {
					dirty[st.name] = true
					changed = true
				}
			}
		}
	}
	for _, st := range d.stages {
		if dirty[st.name] {
			st.done = false
			d.clearStage(st.name)
		}
	}
	if dirty[StageWater] {
		d.field = buildField(d.spec)
		d.rng = rand.New(rand.NewSource(d.spec.Seed))
	}
}

// clearStage drops the outputs a stage owns.
func (d *Driver) clearStage(name string) {
	switch name {
	case StageWater:
		d.water = nil
	case StageMain:
		d.main = nil
	case StageMajor:
		d.major = nil
	case StageMinor:
		d.minor = nil
	case StageBigParks:
		d.bigParks = nil
	case StageSmallParks:
		d.smallParks = nil
	case StageBuildings:
		d.blockPolys = nil
		d.lots = nil
		d.models = nil
	}
}

// Reset invalidates everything.
func (d *Driver) Reset() {
	d.Invalidate(StageWater)
}

// --- stages ---

func (d *Driver) runWater() {
	wp := d.spec.WaterStreamlineParams()
	integ := streamline.NewRK4(d.field, wp.Params)
	d.water = streamline.NewWaterGenerator(integ, d.world, wp, d.field, d.rng)
	d.water.CreateCoast()
	d.water.CreateRiver()
}

func (d *Driver) initMain() {
	d.main = d.newRoadGen(d.spec.Streamlines.Main, d.water.Generator)
}

func (d *Driver) initMajor() {
	d.major = d.newRoadGen(d.spec.Streamlines.Major, d.main)
}

func (d *Driver) initMinor() {
	d.minor = d.newRoadGen(d.spec.Streamlines.Minor, d.major)
}

func (d *Driver) runMain() {
	d.initMain()
	d.main.CreateAllStreamlines()
	d.warnEmpty(StageMain, d.main)
}

func (d *Driver) runMajor() {
	d.initMajor()
	d.major.CreateAllStreamlines()
	d.warnEmpty(StageMajor, d.major)
}

func (d *Driver) runMinor() {
	d.initMinor()
	d.minor.CreateAllStreamlines()
	d.warnEmpty(StageMinor, d.minor)
}

// newRoadGen prepares one road class, colliding with every earlier family
// via the previous generator's accumulated grids.
func (d *Driver) newRoadGen(p streamline.Params, collideWith *streamline.Generator) *streamline.Generator {
	integ := streamline.NewRK4(d.field, p)
	g := streamline.NewGenerator(integ, d.world, p, d.rng)
	if collideWith != nil {
		g.AddExistingStreamlines(collideWith)
	}
	return g
}

func (d *Driver) warnEmpty(name string, g *streamline.Generator) {
	if len(g.AllStreamlines()) == 0 {
		log.Printf("mapgen: stage %s produced no streamlines", name)
	}
}

func (d *Driver) runBigParks() {
	polys := d.graphPolygons(d.roadPolylines(false))
	d.bigParks = d.selectParks(polys, d.spec.Parks.NumBigParks, d.spec.Parks.ClusterBigParks)
	// Parks are written into the field before the minor stage runs, so minor
	// roads inside them follow the park noise rotation. Roads are not kept
	// out of parks; blocks inside them are dropped by FilterOnLand.
	d.field.Parks = append([]geo.Polygon{}, d.bigParks...)
}

func (d *Driver) runSmallParks() {
	polys := d.graphPolygons(d.roadPolylines(true))
	d.smallParks = d.selectParks(polys, d.spec.Parks.NumSmallParks, false)
	d.field.Parks = append(append([]geo.Polygon{}, d.bigParks...), d.smallParks...)
}

// selectParks picks count polygons, either scattered or as a contiguous
// run starting at a random index. More parks requested than polygons
// exist returns every polygon once.
func (d *Driver) selectParks(polys []geo.Polygon, count int, cluster bool) []geo.Polygon {
	if count <= 0 || len(polys) == 0 {
		return nil
	}
	if count >= len(polys) {
		return append([]geo.Polygon{}, polys...)
	}
	if cluster {
		start := d.rng.Intn(len(polys) - count + 1)
		return append([]geo.Polygon{}, polys[start:start+count]...)
	}
	out := make([]geo.Polygon, 0, count)
	for _, idx := range d.rng.Perm(len(polys))[:count] {
		out = append(out, polys[idx])
	}
	return out
}

func (d *Driver) runBuildings() {
	lines := d.roadPolylines(true)
	gr := graph.New(lines, d.spec.Streamlines.Minor.Dstep, true)
	found := blocks.FindPolygons(gr, d.spec.Buildings.Params)
	d.blockPolys = blocks.FilterOnLand(found, d.field)

	lots := blocks.SubdivideAll(d.blockPolys, d.spec.Buildings.Params, d.rng)
	lots = blocks.Shrink(lots, d.spec.Buildings.ShrinkSpacing)
	d.lots = d.filterLotsOnLand(lots)

	view := buildings.ViewState{
		Origin:       d.spec.Origin,
		Zoom:         d.spec.Zoom,
		WorldDims:    d.spec.WorldDimensions,
		Camera:       geo.V(d.spec.Options.CameraX, d.spec.Options.CameraY),
		Orthographic: d.spec.Options.Orthographic,
	}
	d.models = buildings.GenerateModels(d.lots, view, d.spec.Buildings.HeightRange, d.rng)
}

// filterLotsOnLand drops lots with any vertex in the sea or river.
func (d *Driver) filterLotsOnLand(lots []geo.Polygon) []geo.Polygon {
	out := make([]geo.Polygon, 0, len(lots))
	for _, lot := range lots {
		wet := false
		for _, v := range lot.Vertices {
			if d.field.InSea(v) || d.field.InRiver(v) {
				wet = true
				break
			}
		}
		if !wet {
			out = append(out, lot)
		}
	}
	return out
}

// roadPolylines gathers the simplified streamlines of every committed
// family, tagged by class. With includeMinor unset it stops after major
// roads, which is the graph the big-park stage sees.
func (d *Driver) roadPolylines(includeMinor bool) []graph.Polyline {
	var out []graph.Polyline
	if d.water != nil {
		for _, line := range d.water.SimplifiedStreamlines() {
			out = append(out, graph.Polyline{Points: line, Class: ClassCoastline})
		}
		if sec := d.water.SecondaryRiverRoad(); len(sec) > 1 {
			out = append(out, graph.Polyline{Points: sec, Class: ClassRiver})
		}
	}
	if d.main != nil {
		for _, line := range d.main.SimplifiedStreamlines() {
			out = append(out, graph.Polyline{Points: line, Class: ClassMain})
		}
	}
	if d.major != nil {
		for _, line := range d.major.SimplifiedStreamlines() {
			out = append(out, graph.Polyline{Points: line, Class: ClassMajor})
		}
	}
	if includeMinor && d.minor != nil {
		for _, line := range d.minor.SimplifiedStreamlines() {
			out = append(out, graph.Polyline{Points: line, Class: ClassMinor})
		}
	}
	return out
}

// graphPolygons builds a planar graph from polylines and extracts its
// land faces.
func (d *Driver) graphPolygons(lines []graph.Polyline) []geo.Polygon {
	if len(lines) == 0 {
		return nil
	}
	gr := graph.New(lines, d.spec.Streamlines.Minor.Dstep, false)
	found := blocks.FindPolygons(gr, d.spec.Buildings.Params)
	return blocks.FilterOnLand(found, d.field)
}

// Output assembles the full generated map.
func (d *Driver) Output() *MapModel {
	m := &MapModel{}
	if d.water != nil {
		m.Sea = d.water.SeaPolygon()
		m.River = d.water.RiverPolygon()
		m.Coastline = d.water.Coastline()
		m.CoastlineRoads = d.water.SimplifiedStreamlines()
		m.SecondaryRiver = d.water.SecondaryRiverRoad()
	}
	if d.main != nil {
		m.MainRoads = d.main.SimplifiedStreamlines()
	}
	if d.major != nil {
		m.MajorRoads = d.major.SimplifiedStreamlines()
	}
	if d.minor != nil {
		m.MinorRoads = d.minor.SimplifiedStreamlines()
	}
	m.Parks = append(append([]geo.Polygon{}, d.bigParks...), d.smallParks...)
	m.Blocks = d.blockPolys
	m.Lots = d.lots
	m.Buildings = d.models
	if d.spec.Options.DrawCentre {
		m.FieldCentres = d.field.CentrePoints()
	}
	return m
}
