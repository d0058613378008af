package blocks

import (
	"math/rand"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// sliverIndex is the shape-index threshold below which a polygon is too
// thin to become a lot.
const sliverIndex = 0.04

// sliceReach is how far the bisection line extends either side of the
// chosen point on the longest edge.
const sliceReach = 100.0

// Subdivide recursively bisects a block into lots by longest-edge
// bisection. The rng drives the split position and the no-divide chance;
// pass a seeded source for reproducible output.
func Subdivide(p geo.Polygon, params Params, rng *rand.Rand) []geo.Polygon {
	area := p.Area()
	if area < 0.5*params.MinArea {
		return nil
	}
	if p.ShapeIndex() < sliverIndex {
		return nil
	}
	if area < 2*params.MinArea {
		return []geo.Polygon{p}
	}
	if params.ChanceNoDivide > 0 && rng.Float64() < params.ChanceNoDivide {
		return []geo.Polygon{p}
	}

	// Slice perpendicular to the longest edge at a point 40-60% along it.
	ei := p.LongestEdge()
	a, b := p.Edge(ei)
	t := 0.4 + rng.Float64()*0.2
	mid := a.Lerp(b, t)
	perp := b.Sub(a).Perp().SetLength(sliceReach)

	pieces := geo.SlicePolygon(p, mid.Sub(perp), mid.Add(perp))
	if len(pieces) < 2 {
		return []geo.Polygon{p}
	}

	var out []geo.Polygon
	for _, piece := range pieces {
		out = append(out, Subdivide(piece, params, rng)...)
	}
	return out
}

// SubdivideAll runs Subdivide over every block.
func SubdivideAll(polys []geo.Polygon, params Params, rng *rand.Rand) []geo.Polygon {
	var out []geo.Polygon
	for _, p := range polys {
		out = append(out, Subdivide(p, params, rng)...)
	}
	return out
}

// Shrink applies the street setback to final lots. Lots whose buffered
// boundary degenerates or self-intersects are dropped.
func Shrink(lots []geo.Polygon, spacing float64) []geo.Polygon {
	out := make([]geo.Polygon, 0, len(lots))
	for _, lot := range lots {
		shrunk := geo.ResizePolygon(lot, -spacing)
		if shrunk.IsEmpty() {
			continue
		}
		out = append(out, shrunk)
	}
	return out
}
