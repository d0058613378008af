package geo

import "math"

// maxMiter caps miter spikes at sharp corners, in multiples of the offset
// distance.
const maxMiter = 4.0

// OffsetPolyline offsets a polyline sideways by d. Positive d offsets to
// the left of the direction of travel. Joins are mitered with a cap on the
// miter length.
func OffsetPolyline(line []Vec, d float64) []Vec {
	n := len(line)
	if n < 2 {
		return nil
	}
	out := make([]Vec, n)
	for i := 0; i < n; i++ {
		var dir Vec
		switch {
		case i == 0:
			dir = line[1].Sub(line[0])
		case i == n-1:
			dir = line[n-1].Sub(line[n-2])
		default:
			dir = line[i+1].Sub(line[i-1])
		}
		normal := dir.Perp().Normalize()
		scale := d
		if i > 0 && i < n-1 {
			// Miter: scale by the angle between the averaged normal and the
			// incoming segment normal.
			inNormal := line[i].Sub(line[i-1]).Perp().Normalize()
			cosHalf := normal.Dot(inNormal)
			if math.Abs(cosHalf) > 1e-6 {
				scale = d / cosHalf
			}
			if math.Abs(scale) > math.Abs(d)*maxMiter {
				scale = math.Copysign(math.Abs(d)*maxMiter, scale)
			}
		}
		out[i] = line[i].Add(normal.Scale(scale))
	}
	return out
}

// BufferPolyline expands a polyline into a polygon of width 2·d with flat
// end caps.
func BufferPolyline(line []Vec, d float64) Polygon {
	if len(line) < 2 || d <= 0 {
		return Polygon{}
	}
	left := OffsetPolyline(line, d)
	right := OffsetPolyline(line, -d)
	verts := append(left, ReversePolyline(right)...)
	return Polygon{Vertices: verts}.EnsureCCW()
}

// ResizePolygon offsets a polygon's boundary outward (positive d) or inward
// (negative d). The result is empty if the offset collapses the polygon or
// produces a self-intersecting boundary.
func ResizePolygon(p Polygon, d float64) Polygon {
	n := len(p.Vertices)
	if n < 3 {
		return Polygon{}
	}
	poly := p.EnsureCCW()

	// Offset every edge along its outward normal, then recover vertices as
	// intersections of consecutive offset edges.
	offA := make([]Vec, n)
	offB := make([]Vec, n)
	for i := 0; i < n; i++ {
		a, b := poly.Edge(i)
		// CCW interior lies to the left; outward is to the right.
		normal := b.Sub(a).Perp().Normalize().Scale(-d)
		offA[i] = a.Add(normal)
		offB[i] = b.Add(normal)
	}

	verts := make([]Vec, 0, n)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		ix, ok := LineIntersection(offA[prev], offB[prev], offA[i], offB[i])
		if !ok {
			ix = offA[i]
		}
		// Reject runaway miters at near-parallel reflex corners.
		if ix.Distance(poly.Vertices[i]) > math.Abs(d)*maxMiter {
			ix = offA[i]
		}
		verts = append(verts, ix)
	}

	out := Polygon{Vertices: verts}
	if out.SignedArea() <= 0 || !out.IsSimple() {
		return Polygon{}
	}
	if d < 0 && out.Area() >= poly.Area() {
		return Polygon{}
	}
	return out
}
