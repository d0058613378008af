package geo

import "math"

// SegmentIntersection returns the proper intersection point of segments
// a1→a2 and b1→b2. Touching at shared endpoints does not count.
func SegmentIntersection(a1, a2, b1, b2 Vec) (Vec, bool) {
	d := (a2.X-a1.X)*(b2.Y-b1.Y) - (a2.Y-a1.Y)*(b2.X-b1.X)
	if math.Abs(d) < 1e-12 {
		return Vec{}, false
	}
	t := ((b1.X-a1.X)*(b2.Y-b1.Y) - (b1.Y-a1.Y)*(b2.X-b1.X)) / d
	u := ((b1.X-a1.X)*(a2.Y-a1.Y) - (b1.Y-a1.Y)*(a2.X-a1.X)) / d
	const eps = 1e-9
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return Vec{}, false
	}
	return a1.Lerp(a2, t), true
}

// LineIntersection returns the intersection of the infinite lines through
// a1→a2 and b1→b2.
func LineIntersection(a1, a2, b1, b2 Vec) (Vec, bool) {
	d := (a1.X-a2.X)*(b1.Y-b2.Y) - (a1.Y-a2.Y)*(b1.X-b2.X)
	if math.Abs(d) < 1e-12 {
		return Vec{}, false
	}
	t := ((a1.X-b1.X)*(b1.Y-b2.Y) - (a1.Y-b1.Y)*(b1.X-b2.X)) / d
	return a1.Lerp(a2, t), true
}

// lineSide classifies p against the directed line a→b: positive left,
// negative right.
func lineSide(p, a, b Vec) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// SlicePolygon cuts a polygon with the infinite line through a and b and
// returns the two resulting pieces. If the line misses the polygon, the
// original polygon is returned as the only piece.
func SlicePolygon(p Polygon, a, b Vec) []Polygon {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}
	var left, right []Vec
	for i := 0; i < n; i++ {
		cur := p.Vertices[i]
		next := p.Vertices[(i+1)%n]
		sideCur := lineSide(cur, a, b)
		sideNext := lineSide(next, a, b)

		if sideCur >= 0 {
			left = append(left, cur)
		}
		if sideCur <= 0 {
			right = append(right, cur)
		}
		if (sideCur > 0 && sideNext < 0) || (sideCur < 0 && sideNext > 0) {
			if ix, ok := LineIntersection(cur, next, a, b); ok {
				left = append(left, ix)
				right = append(right, ix)
			}
		}
	}

	var out []Polygon
	if len(left) >= 3 {
		out = append(out, Polygon{Vertices: left})
	}
	if len(right) >= 3 {
		out = append(out, Polygon{Vertices: right})
	}
	if len(out) == 0 {
		return []Polygon{p}
	}
	return out
}

// SliceRectangle splits a rectangle with a polyline whose first and last
// points lie outside the rectangle. It returns the two resulting polygons,
// smaller first. Returns empty polygons if the polyline does not cross the
// rectangle cleanly.
func SliceRectangle(r Rect, line []Vec) (Polygon, Polygon) {
	inner, entry, exit, ok := clipPolylineToRect(r, line)
	if !ok {
		return Polygon{}, Polygon{}
	}

	// Close each side by walking the rectangle boundary from the exit point
	// back to the entry point, one way per side.
	fwd := append(append([]Vec{}, inner...), boundaryWalk(r, exit, entry, true)...)
	bwd := append(append([]Vec{}, inner...), boundaryWalk(r, exit, entry, false)...)

	pa := Polygon{Vertices: fwd}
	pb := Polygon{Vertices: bwd}
	if pa.Area() <= pb.Area() {
		return pa, pb
	}
	return pb, pa
}

// clipPolylineToRect trims a polyline to the part inside the rectangle,
// inserting the boundary crossing points at both ends.
func clipPolylineToRect(r Rect, line []Vec) (inner []Vec, entry, exit Vec, ok bool) {
	if len(line) < 2 {
		return nil, Vec{}, Vec{}, false
	}
	boundary := r.Polygon()
	inside := false
	for i := 0; i < len(line)-1; i++ {
		a, b := line[i], line[i+1]
		aIn, bIn := r.Contains(a), r.Contains(b)
		switch {
		case !aIn && bIn:
			if !inside {
				if ix, found := segmentRectCrossing(boundary, a, b); found {
					entry = ix
					inner = append(inner, ix)
					inside = true
				}
			}
			inner = append(inner, b)
		case aIn && bIn:
			if inside {
				inner = append(inner, b)
			}
		case aIn && !bIn:
			if inside {
				if ix, found := segmentRectCrossing(boundary, a, b); found {
					exit = ix
					inner = append(inner, ix)
					return inner, entry, exit, len(inner) >= 2
				}
			}
		case !aIn && !bIn:
			// A single segment may enter and leave the rectangle.
			var hits []Vec
			for k := 0; k < 4; k++ {
				e1, e2 := boundary.Edge(k)
				if ix, found := SegmentIntersection(a, b, e1, e2); found {
					hits = append(hits, ix)
				}
			}
			if len(hits) == 2 {
				if hits[0].DistanceSq(a) > hits[1].DistanceSq(a) {
					hits[0], hits[1] = hits[1], hits[0]
				}
				return hits, hits[0], hits[1], true
			}
		}
	}
	return nil, Vec{}, Vec{}, false
}

// segmentRectCrossing finds where segment a→b crosses the rectangle boundary.
func segmentRectCrossing(boundary Polygon, a, b Vec) (Vec, bool) {
	for i := 0; i < 4; i++ {
		e1, e2 := boundary.Edge(i)
		if ix, found := SegmentIntersection(a, b, e1, e2); found {
			return ix, true
		}
	}
	return Vec{}, false
}

// boundaryWalk returns the rectangle corners encountered walking from one
// boundary point to another, counterclockwise or clockwise.
func boundaryWalk(r Rect, from, to Vec, ccw bool) []Vec {
	per := 2 * (r.Dims.X + r.Dims.Y)
	tFrom := boundaryParam(r, from)
	tTo := boundaryParam(r, to)

	var out []Vec
	corners := []float64{0, r.Dims.X, r.Dims.X + r.Dims.Y, 2*r.Dims.X + r.Dims.Y}
	if ccw {
		d := math.Mod(tTo-tFrom+per, per)
		for _, c := range sortedCornerOffsets(corners, tFrom, per, false) {
			if c < d {
				out = append(out, boundaryPoint(r, math.Mod(tFrom+c, per)))
			}
		}
	} else {
		d := math.Mod(tFrom-tTo+per, per)
		for _, c := range sortedCornerOffsets(corners, tFrom, per, true) {
			if c < d {
				out = append(out, boundaryPoint(r, math.Mod(tFrom-c+per, per)))
			}
		}
	}
	return out
}

// sortedCornerOffsets returns corner positions as increasing offsets from t
// in the walk direction.
func sortedCornerOffsets(corners []float64, t, per float64, clockwise bool) []float64 {
	out := make([]float64, 0, len(corners))
	for _, c := range corners {
		var d float64
		if clockwise {
			d = math.Mod(t-c+per, per)
		} else {
			d = math.Mod(c-t+per, per)
		}
		if d > 1e-9 {
			out = append(out, d)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// boundaryParam maps a point on (or near) the rectangle boundary to its CCW
// arc-length position, measured from the origin corner.
func boundaryParam(r Rect, p Vec) float64 {
	rel := p.Sub(r.Origin)
	distBottom := math.Abs(rel.Y)
	distRight := math.Abs(rel.X - r.Dims.X)
	distTop := math.Abs(rel.Y - r.Dims.Y)
	distLeft := math.Abs(rel.X)

	minDist := math.Min(math.Min(distBottom, distRight), math.Min(distTop, distLeft))
	switch minDist {
	case distBottom:
		return clampF(rel.X, 0, r.Dims.X)
	case distRight:
		return r.Dims.X + clampF(rel.Y, 0, r.Dims.Y)
	case distTop:
		return r.Dims.X + r.Dims.Y + (r.Dims.X - clampF(rel.X, 0, r.Dims.X))
	default:
		return 2*r.Dims.X + r.Dims.Y + (r.Dims.Y - clampF(rel.Y, 0, r.Dims.Y))
	}
}

// boundaryPoint is the inverse of boundaryParam.
func boundaryPoint(r Rect, t float64) Vec {
	switch {
	case t < r.Dims.X:
		return V(r.Origin.X+t, r.Origin.Y)
	case t < r.Dims.X+r.Dims.Y:
		return V(r.Origin.X+r.Dims.X, r.Origin.Y+(t-r.Dims.X))
	case t < 2*r.Dims.X+r.Dims.Y:
		return V(r.Origin.X+r.Dims.X-(t-r.Dims.X-r.Dims.Y), r.Origin.Y+r.Dims.Y)
	default:
		return V(r.Origin.X, r.Origin.Y+r.Dims.Y-(t-2*r.Dims.X-r.Dims.Y))
	}
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
