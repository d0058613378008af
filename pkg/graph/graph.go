package graph

import (
	"math"
	"sort"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// Polyline is a graph input: an open chain of points tagged with the road
// class that produced it, carried onto edges for downstream styling.
type Polyline struct {
	Points []geo.Vec
	Class  string
}

// Node is a planar-graph vertex. Neighbours are kept in CCW angular order
// from the positive X axis.
type Node struct {
	Value     geo.Vec
	Neighbors []*Node
}

// Degree returns the number of neighbours.
func (n *Node) Degree() int {
	return len(n.Neighbors)
}

// NeighborIndex returns the position of other in the neighbour list, or -1.
func (n *Node) NeighborIndex(other *Node) int {
	for i, nb := range n.Neighbors {
		if nb == other {
			return i
		}
	}
	return -1
}

func (n *Node) addNeighbor(other *Node) {
	if other == n {
		return
	}
	if n.NeighborIndex(other) >= 0 {
		return
	}
	n.Neighbors = append(n.Neighbors, other)
}

// Edge is an undirected graph edge with its originating road class.
type Edge struct {
	A, B  *Node
	Class string
}

// Graph is a planar graph built from a multiset of polylines. Nodes sit at
// polyline samples and at segment intersections, deduplicated by a
// tolerance derived from dstep.
type Graph struct {
	Nodes         []*Node
	Edges         []Edge
	Intersections []geo.Vec
}

// segKey addresses one segment of one polyline.
type segKey struct {
	line, seg int
}

// New builds the planar graph. The position tolerance for merging nodes is
// dstep/10. With deleteDangling set, degree-1 chains are pruned.
func New(polylines []Polyline, dstep float64, deleteDangling bool) *Graph {
	eps := dstep / 10
	if eps <= 0 {
		eps = 1e-3
	}

	g := &Graph{}
	cuts := make(map[segKey][]cut)

	// All pairwise segment crossings between polylines, T-junctions included. Input
	// polylines are already simplified, keeping the quadratic sweep cheap.
	for li := 0; li < len(polylines); li++ {
		for lj := li + 1; lj < len(polylines); lj++ {
			intersectPair(polylines[li].Points, polylines[lj].Points, li, lj, cuts, g)
		}
	}

	nodes := make(map[[2]int64]*Node)

	for li, pl := range polylines {
		pts := pl.Points
		if len(pts) < 2 {
			continue
		}
		var prev *Node
		for si := 0; si < len(pts)-1; si++ {
			a, b := pts[si], pts[si+1]
			if prev == nil {
				prev = g.nodeAt(nodes, a, eps)
			}
			// Split the segment at its recorded intersections.
			segCuts := cuts[segKey{li, si}]
			sort.Slice(segCuts, func(i, j int) bool { return segCuts[i].t < segCuts[j].t })
			for _, c := range segCuts {
				n := g.nodeAt(nodes, c.p, eps)
				g.link(prev, n, pl.Class)
				prev = n
			}
			n := g.nodeAt(nodes, b, eps)
			g.link(prev, n, pl.Class)
			prev = n
		}
	}

	if deleteDangling {
		g.pruneDangling()
	}

	for _, n := range g.Nodes {
		sortCCW(n)
	}
	return g
}

// cut is an intersection point at parameter t along a segment.
type cut struct {
	t float64
	p geo.Vec
}

func intersectPair(a, b []geo.Vec, li, lj int, cuts map[segKey][]cut, g *Graph) {
	for si := 0; si < len(a)-1; si++ {
		for sj := 0; sj < len(b)-1; sj++ {
			ix, ok := segmentCrossing(a[si], a[si+1], b[sj], b[sj+1])
			if !ok {
				continue
			}
			g.Intersections = append(g.Intersections, ix)
			cuts[segKey{li, si}] = append(cuts[segKey{li, si}], cut{paramAlong(a[si], a[si+1], ix), ix})
			cuts[segKey{lj, sj}] = append(cuts[segKey{lj, sj}], cut{paramAlong(b[sj], b[sj+1], ix), ix})
		}
	}
}

// segmentCrossing finds where two segments meet, including T-junctions
// where one polyline ends on the interior of another. Pure corner touches
// carry no information (quantization already merges them) and are skipped.
func segmentCrossing(a1, a2, b1, b2 geo.Vec) (geo.Vec, bool) {
	d := (a2.X-a1.X)*(b2.Y-b1.Y) - (a2.Y-a1.Y)*(b2.X-b1.X)
	if math.Abs(d) < 1e-12 {
		return geo.Vec{}, false
	}
	t := ((b1.X-a1.X)*(b2.Y-b1.Y) - (b1.Y-a1.Y)*(b2.X-b1.X)) / d
	u := ((b1.X-a1.X)*(a2.Y-a1.Y) - (b1.Y-a1.Y)*(a2.X-a1.X)) / d
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return geo.Vec{}, false
	}
	tEnd := t < eps || t > 1-eps
	uEnd := u < eps || u > 1-eps
	if tEnd && uEnd {
		return geo.Vec{}, false
	}
	return a1.Lerp(a2, t), true
}

func paramAlong(a, b, p geo.Vec) float64 {
	d := b.Sub(a)
	lenSq := d.LengthSq()
	if lenSq < 1e-12 {
		return 0
	}
	return p.Sub(a).Dot(d) / lenSq
}

// nodeAt returns the node at a quantized position, creating it on demand.
// Coincident samples merge silently into one node.
func (g *Graph) nodeAt(nodes map[[2]int64]*Node, p geo.Vec, eps float64) *Node {
	key := [2]int64{int64(math.Round(p.X / eps)), int64(math.Round(p.Y / eps))}
	if n, ok := nodes[key]; ok {
		return n
	}
	n := &Node{Value: p}
	nodes[key] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// link records an undirected edge between two nodes.
func (g *Graph) link(a, b *Node, class string) {
	if a == b {
		return
	}
	if a.NeighborIndex(b) >= 0 {
		return
	}
	a.addNeighbor(b)
	b.addNeighbor(a)
	g.Edges = append(g.Edges, Edge{A: a, B: b, Class: class})
}

// pruneDangling removes degree-1 nodes until none remain.
func (g *Graph) pruneDangling() {
	for {
		removed := false
		kept := g.Nodes[:0]
		for _, n := range g.Nodes {
			if len(n.Neighbors) == 1 {
				other := n.Neighbors[0]
				if i := other.NeighborIndex(n); i >= 0 {
					other.Neighbors = append(other.Neighbors[:i], other.Neighbors[i+1:]...)
				}
				n.Neighbors = nil
				removed = true
				continue
			}
			kept = append(kept, n)
		}
		g.Nodes = kept
		if !removed {
			return
		}
	}
}

// sortCCW orders a node's neighbours counterclockwise from the positive X
// axis.
func sortCCW(n *Node) {
	sort.Slice(n.Neighbors, func(i, j int) bool {
		ai := n.Neighbors[i].Value.Sub(n.Value).Angle()
		aj := n.Neighbors[j].Value.Sub(n.Value).Angle()
		return ai < aj
	})
}
