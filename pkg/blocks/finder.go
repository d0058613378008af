package blocks

import (
	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/graph"
)

// Params controls block extraction and lot subdivision.
type Params struct {
	// MaxLength caps the number of nodes walked per face.
	MaxLength int `json:"maxLength" yaml:"maxLength"`
	// MinArea is the smallest block worth keeping; lots below half of it
	// are discarded during subdivision.
	MinArea float64 `json:"minArea" yaml:"minArea"`
	// ShrinkSpacing is the street setback applied to final lots.
	ShrinkSpacing float64 `json:"shrinkSpacing" yaml:"shrinkSpacing"`
	// ChanceNoDivide is the probability a polygon is emitted without
	// further subdivision.
	ChanceNoDivide float64 `json:"chanceNoDivide" yaml:"chanceNoDivide"`
}

// FindPolygons extracts the minimum-cycle faces of a planar graph as CCW
// polygons. The unbounded outer face walks clockwise and is discarded by
// its winding; faces smaller than minArea are dropped.
func FindPolygons(g *graph.Graph, params Params) []geo.Polygon {
	visited := make(map[[2]*graph.Node]bool)
	var out []geo.Polygon

	for _, start := range g.Nodes {
		if start.Degree() < 2 {
			continue
		}
		for _, next := range start.Neighbors {
			if visited[[2]*graph.Node{start, next}] {
				continue
			}
			face, ok := walkFace(start, next, params.MaxLength)
			if !ok {
				// Mark the first directed edge so dead-end walks are not
				// retried from here.
				visited[[2]*graph.Node{start, next}] = true
				continue
			}
			for i := range face {
				visited[[2]*graph.Node{face[i], face[(i+1)%len(face)]}] = true
			}
			poly := facePolygon(face)
			if poly.SignedArea() <= 0 {
				// Clockwise walk is the unbounded outer face.
				continue
			}
			if poly.Area() < params.MinArea {
				continue
			}
			out = append(out, poly)
		}
	}
	return out
}

// walkFace traces the face to the left of the directed edge from→to by
// always taking the clockwise-next edge at the arrival node. It returns
// the node cycle once the walk comes back around to the starting edge.
func walkFace(from, to *graph.Node, maxLength int) ([]*graph.Node, bool) {
	var face []*graph.Node
	prev, cur := from, to
	for i := 0; ; i++ {
		if i > 0 && prev == from && cur == to {
			return face, true
		}
		if i >= maxLength {
			return nil, false
		}
		face = append(face, prev)
		idx := cur.NeighborIndex(prev)
		if idx < 0 || cur.Degree() == 0 {
			return nil, false
		}
		// Clockwise-next in the CCW-sorted neighbour order.
		next := cur.Neighbors[(idx-1+cur.Degree())%cur.Degree()]
		prev, cur = cur, next
	}
}

// facePolygon converts a node cycle to a polygon.
func facePolygon(face []*graph.Node) geo.Polygon {
	verts := make([]geo.Vec, len(face))
	for i, n := range face {
		verts[i] = n.Value
	}
	return geo.Polygon{Vertices: verts}
}

// FilterOnLand drops polygons whose average point is in the water or in a
// park.
func FilterOnLand(polys []geo.Polygon, f *field.TensorField) []geo.Polygon {
	out := make([]geo.Polygon, 0, len(polys))
	for _, p := range polys {
		avg := p.AveragePoint()
		if f.OnLand(avg) && !f.InParks(avg) {
			out = append(out, p)
		}
	}
	return out
}
