package streamline

import (
	"math/rand"
	"time"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// minStreamlineSamples is the shortest dense streamline worth keeping.
const minStreamlineSamples = 5

// Generator grows streamlines through a tensor field under geometric
// separation constraints. Major and minor parity streamlines keep separate
// grid indices so the two families may cross each other but never
// themselves.
type Generator struct {
	integrator Integrator
	world      geo.Rect
	params     Params
	rng        *rand.Rand

	dsepSq  float64
	dtestSq float64

	majorGrid *GridIndex
	minorGrid *GridIndex

	all    [][]geo.Vec
	simple [][]geo.Vec

	majorIndices []int
	minorIndices []int

	current   *integration
	lastMajor bool
	done      bool
}

// integration is an in-progress streamline grown in two directions from
// its seed.
type integration struct {
	seed      geo.Vec
	major     bool
	fwd, bwd  []geo.Vec
	fwdDir    geo.Vec
	bwdDir    geo.Vec
	fwdDone   bool
	bwdDone   bool
	iter      int
	published int
}

// NewGenerator creates a streamline generator over the world rectangle.
// The rng drives seeding; pass a seeded source for reproducible output.
func NewGenerator(integrator Integrator, world geo.Rect, params Params, rng *rand.Rand) *Generator {
	p := params.clamped()
	return &Generator{
		integrator: integrator,
		world:      world,
		params:     p,
		rng:        rng,
		dsepSq:     p.Dsep * p.Dsep,
		dtestSq:    p.Dtest * p.Dtest,
		majorGrid:  NewGridIndex(world, p.Dsep),
		minorGrid:  NewGridIndex(world, p.Dsep),
	}
}

// Grid returns the proximity index for one parity.
func (g *Generator) Grid(major bool) *GridIndex {
	if major {
		return g.majorGrid
	}
	return g.minorGrid
}

// AllStreamlines returns the dense streamlines in commit order.
func (g *Generator) AllStreamlines() [][]geo.Vec {
	return g.all
}

// SimplifiedStreamlines returns the simplified streamlines in commit order.
func (g *Generator) SimplifiedStreamlines() [][]geo.Vec {
	return g.simple
}

// Streamlines returns the dense streamlines of one parity.
func (g *Generator) Streamlines(major bool) [][]geo.Vec {
	indices := g.majorIndices
	if !major {
		indices = g.minorIndices
	}
	out := make([][]geo.Vec, len(indices))
	for i, idx := range indices {
		out[i] = g.all[idx]
	}
	return out
}

// AddExistingStreamlines seeds this generator's grids with the samples of
// an earlier generator so new streamlines keep their distance from roads
// already committed.
func (g *Generator) AddExistingStreamlines(other *Generator) {
	g.majorGrid.AddAll(other.majorGrid)
	g.minorGrid.AddAll(other.minorGrid)
}

// Clear drops all streamlines, grids and in-progress state.
func (g *Generator) Clear() {
	g.all = nil
	g.simple = nil
	g.majorIndices = nil
	g.minorIndices = nil
	g.current = nil
	g.done = false
	g.majorGrid = NewGridIndex(g.world, g.params.Dsep)
	g.minorGrid = NewGridIndex(g.world, g.params.Dsep)
}

// Done reports whether generation has finished.
func (g *Generator) Done() bool {
	return g.done
}

// CreateAllStreamlines runs generation to completion synchronously.
func (g *Generator) CreateAllStreamlines() {
	major := true
	for g.createStreamline(major) {
		major = !major
	}
	g.JoinDanglingStreamlines()
	g.done = true
}

// Step performs bounded work and returns whether more remains. The caller
// interleaves calls with rendering; state between calls is the partial
// streamline buffers.
func (g *Generator) Step(budget time.Duration) bool {
	if g.done {
		return false
	}
	start := time.Now()
	for time.Since(start) < budget {
		if g.current == nil {
			if !g.beginStreamline(!g.lastMajor) {
				g.JoinDanglingStreamlines()
				g.done = true
				return false
			}
		}
		if !g.advance() {
			g.finalize()
		}
	}
	return true
}

// createStreamline seeds and fully grows one streamline. Returns false
// when seeding is exhausted.
func (g *Generator) createStreamline(major bool) bool {
	if !g.beginStreamline(major) {
		return false
	}
	for g.advance() {
	}
	g.finalize()
	return true
}

// beginStreamline picks a seed and opens an in-progress streamline,
// publishing its (empty) polyline for animated observers.
func (g *Generator) beginStreamline(major bool) bool {
	seed, ok := g.getSeed()
	if !ok {
		return false
	}
	g.lastMajor = major
	g.all = append(g.all, nil)
	g.current = &integration{
		seed:      seed,
		major:     major,
		published: len(g.all) - 1,
	}
	return true
}

// advance performs one integration iteration on the current streamline,
// growing both half-streamlines. Returns false once growth has stopped.
func (g *Generator) advance() bool {
	c := g.current
	if c == nil {
		return false
	}
	if c.iter >= g.params.PathIterations {
		return false
	}
	c.iter++

	if !c.fwdDone {
		g.grow(c, true)
	}
	if !c.bwdDone {
		g.grow(c, false)
	}
	if c.published >= 0 {
		g.all[c.published] = g.assemble(c)
	}
	return !c.fwdDone || !c.bwdDone
}

// grow extends one half-streamline by a single step, applying the stop
// conditions: degeneracy, leaving the world, separation failure, or a
// circle join.
func (g *Generator) grow(c *integration, forward bool) {
	buf := &c.fwd
	dir := &c.fwdDir
	done := &c.fwdDone
	if !forward {
		buf = &c.bwd
		dir = &c.bwdDir
		done = &c.bwdDone
	}

	p := c.seed
	if len(*buf) > 0 {
		p = (*buf)[len(*buf)-1]
	}

	step, degenerate := g.integrator.Integrate(p, c.major)
	if degenerate {
		*done = true
		return
	}
	// Align with the previous direction so the trace never doubles back.
	if dir.LengthSq() < 1e-12 {
		// First step: the backward half runs against the eigenvector.
		if !forward {
			step = step.Scale(-1)
		}
	} else if step.Dot(*dir) < 0 {
		step = step.Scale(-1)
	}
	next := p.Add(step)
	*dir = step

	if !g.world.Contains(next) {
		// Keep the escaping point so water streamlines reach past the edge.
		*buf = append(*buf, next)
		*done = true
		return
	}

	if joined, ok := g.joinSample(p, next, step, c.major); ok {
		*buf = append(*buf, next, joined)
		*done = true
		return
	}

	if !g.Grid(c.major).IsValidSample(next, g.dtestSq) {
		// Collide-early scales the lookahead window; the parameter is
		// plumbed through but defaults to zero, which always stops here.
		if !(g.params.CollideEarly > 0 &&
			next.Distance(p) < g.params.Dlookahead*g.params.CollideEarly) {
			*done = true
			return
		}
	}

	*buf = append(*buf, next)
}

// joinSample looks for a committed same-parity sample within dcirclejoin
// of next, aligned within joinangle of the travel direction.
func (g *Generator) joinSample(p, next, dir geo.Vec, major bool) (geo.Vec, bool) {
	if g.params.Dcirclejoin <= 0 {
		return geo.Vec{}, false
	}
	joinSq := g.params.Dcirclejoin * g.params.Dcirclejoin
	for _, s := range g.Grid(major).NearbyPoints(next, g.params.Dcirclejoin) {
		if s == next || s == p {
			continue
		}
		if s.DistanceSq(next) > joinSq {
			continue
		}
		if geo.AngleBetween(dir, s.Sub(p)) <= g.params.Joinangle {
			return s, true
		}
	}
	return geo.Vec{}, false
}

// assemble concatenates reverse(bwd) ++ [seed] ++ fwd.
func (g *Generator) assemble(c *integration) []geo.Vec {
	line := make([]geo.Vec, 0, len(c.bwd)+1+len(c.fwd))
	for i := len(c.bwd) - 1; i >= 0; i-- {
		line = append(line, c.bwd[i])
	}
	line = append(line, c.seed)
	line = append(line, c.fwd...)
	return line
}

// finalize commits the current streamline atomically, or rolls back the
// published partial polyline if it is too short.
func (g *Generator) finalize() {
	c := g.current
	if c == nil {
		return
	}
	g.current = nil
	line := g.assemble(c)
	if len(line) < minStreamlineSamples {
		g.all = g.all[:len(g.all)-1]
		return
	}
	g.all[c.published] = line
	g.Grid(c.major).AddPolyline(line)
	if c.major {
		g.majorIndices = append(g.majorIndices, c.published)
	} else {
		g.minorIndices = append(g.minorIndices, c.published)
	}
	g.simple = append(g.simple, g.simplify(line))
}

// simplify produces the rendering form of a streamline.
func (g *Generator) simplify(line []geo.Vec) []geo.Vec {
	return geo.Simplify(line, g.params.SimplifyTolerance)
}

// getSeed draws uniform points in the world rectangle until one keeps dsep
// from both grids, lies on land and has a defined field direction, or tries
// run out. Both parities share the seeding rule, so the seed is
// parity-independent.
func (g *Generator) getSeed() (geo.Vec, bool) {
	for i := 0; i < g.params.SeedTries; i++ {
		p := geo.V(
			g.world.Origin.X+g.rng.Float64()*g.world.Dims.X,
			g.world.Origin.Y+g.rng.Float64()*g.world.Dims.Y,
		)
		if g.integrator.OnLand(p) &&
			g.majorGrid.IsValidSample(p, g.dsepSq) &&
			g.minorGrid.IsValidSample(p, g.dsepSq) {
			if _, degenerate := g.integrator.Integrate(p, true); degenerate {
				continue
			}
			return p, true
		}
	}
	return geo.Vec{}, false
}

// JoinDanglingStreamlines extends open streamline ends toward the best
// nearby sample and stitches them with points spaced at most dstep apart.
func (g *Generator) JoinDanglingStreamlines() {
	for _, major := range []bool{true, false} {
		indices := g.majorIndices
		if !major {
			indices = g.minorIndices
		}
		for _, idx := range indices {
			line := g.all[idx]
			if len(line) < minStreamlineSamples {
				continue
			}
			// Closed loops have nothing to join.
			if line[0] == line[len(line)-1] {
				continue
			}

			if newStart, ok := g.bestNextPoint(line[0], line[4]); ok {
				between := geo.PointsBetween(line[0], newStart, g.params.Dstep)
				prefix := geo.ReversePolyline(between)
				line = append(prefix, line...)
				g.Grid(major).AddPolyline(between)
			}
			if newEnd, ok := g.bestNextPoint(line[len(line)-1], line[len(line)-5]); ok {
				between := geo.PointsBetween(line[len(line)-1], newEnd, g.params.Dstep)
				line = append(line, between...)
				g.Grid(major).AddPolyline(between)
			}
			g.all[idx] = line
		}
	}

	g.simple = make([][]geo.Vec, 0, len(g.all))
	for _, line := range g.all {
		g.simple = append(g.simple, g.simplify(line))
	}
}

// bestNextPoint finds the nearest sample ahead of an open streamline end
// within joinangle of its direction, searching both parities within
// dlookahead; a sample closer than √2·dstep is taken at once.
func (g *Generator) bestNextPoint(point, previous geo.Vec) (geo.Vec, bool) {
	nearby := g.majorGrid.NearbyPoints(point, g.params.Dlookahead)
	nearby = append(nearby, g.minorGrid.NearbyPoints(point, g.params.Dlookahead)...)
	direction := point.Sub(previous)

	var closest geo.Vec
	found := false
	closestDistSq := g.params.Dlookahead * g.params.Dlookahead

	dstepSq := g.params.Dstep * g.params.Dstep
	for _, sample := range nearby {
		if sample == point || sample == previous {
			continue
		}
		diff := sample.Sub(point)
		if diff.Dot(direction) < 0 {
			continue
		}
		distSq := point.DistanceSq(sample)
		if distSq < 2*dstepSq {
			closest = sample
			found = true
			break
		}
		if geo.AngleBetween(direction, diff) < g.params.Joinangle && distSq < closestDistSq {
			closestDistSq = distSq
			closest = sample
			found = true
		}
	}
	if !found {
		return geo.Vec{}, false
	}
	// Overshoot slightly so simplification keeps the junction point.
	return closest.Add(direction.SetLength(g.params.SimplifyTolerance * 4)), true
}
