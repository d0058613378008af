package streamline

import (
	"math"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// GridIndex is a uniform spatial hash over streamline sample points. Cell
// side equals dsep, so a 3x3 neighbourhood query is complete for any
// radius up to dsep.
type GridIndex struct {
	world  geo.Rect
	dsep   float64
	dsepSq float64
	nx, ny int
	cells  [][]geo.Vec
}

// NewGridIndex creates an empty index over the world rectangle.
func NewGridIndex(world geo.Rect, dsep float64) *GridIndex {
	nx := int(math.Ceil(world.Dims.X/dsep)) + 1
	ny := int(math.Ceil(world.Dims.Y/dsep)) + 1
	return &GridIndex{
		world:  world,
		dsep:   dsep,
		dsepSq: dsep * dsep,
		nx:     nx,
		ny:     ny,
		cells:  make([][]geo.Vec, nx*ny),
	}
}

// AddAll copies every sample from another index into this one.
func (g *GridIndex) AddAll(other *GridIndex) {
	for _, cell := range other.cells {
		for _, v := range cell {
			g.AddSample(v)
		}
	}
}

// AddPolyline inserts every sample of the polyline. Separation is not
// enforced; the caller commits only validated streamlines.
func (g *GridIndex) AddPolyline(line []geo.Vec) {
	for _, v := range line {
		g.AddSample(v)
	}
}

// AddSample inserts a single point.
func (g *GridIndex) AddSample(v geo.Vec) {
	cx, cy := g.cellCoords(v)
	idx := cy*g.nx + cx
	g.cells[idx] = append(g.cells[idx], v)
}

// IsValidSample reports whether v is at least sqrt(dSq) away from every
// stored sample. Checked over the 3x3 cell neighbourhood, so dSq must not
// exceed dsep².
func (g *GridIndex) IsValidSample(v geo.Vec, dSq float64) bool {
	cx, cy := g.cellCoords(v)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= g.nx || y >= g.ny {
				continue
			}
			for _, s := range g.cells[y*g.nx+x] {
				if s != v && s.DistanceSq(v) < dSq {
					return false
				}
			}
		}
	}
	return true
}

// NearestDistance returns the distance from v to the closest stored sample
// within the 3x3 neighbourhood, or +Inf if none is stored there.
func (g *GridIndex) NearestDistance(v geo.Vec) float64 {
	best := math.Inf(1)
	cx, cy := g.cellCoords(v)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= g.nx || y >= g.ny {
				continue
			}
			for _, s := range g.cells[y*g.nx+x] {
				if d := s.Distance(v); d < best {
					best = d
				}
			}
		}
	}
	return best
}

// NearbyPoints returns all samples in cells within the given radius of v.
// Cell granularity makes this a superset of the true radius query.
func (g *GridIndex) NearbyPoints(v geo.Vec, radius float64) []geo.Vec {
	r := int(math.Ceil(radius / g.dsep))
	cx, cy := g.cellCoords(v)
	var out []geo.Vec
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= g.nx || y >= g.ny {
				continue
			}
			out = append(out, g.cells[y*g.nx+x]...)
		}
	}
	return out
}

// cellCoords maps a world point to cell coordinates, clamped into range so
// points just outside the world land in an edge cell.
func (g *GridIndex) cellCoords(v geo.Vec) (int, int) {
	rel := v.Sub(g.world.Origin)
	cx := int(math.Floor(rel.X / g.dsep))
	cy := int(math.Floor(rel.Y / g.dsep))
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	if cx >= g.nx {
		cx = g.nx - 1
	}
	if cy >= g.ny {
		cy = g.ny - 1
	}
	return cx, cy
}
