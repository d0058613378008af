package geo

// Simplify reduces a polyline with the Ramer-Douglas-Peucker algorithm.
// Points farther than tolerance from the chord between kept endpoints
// survive. Idempotent for a fixed tolerance.
func Simplify(line []Vec, tolerance float64) []Vec {
	if len(line) < 3 {
		return append([]Vec{}, line...)
	}
	keep := make([]bool, len(line))
	keep[0] = true
	keep[len(line)-1] = true
	rdp(line, 0, len(line)-1, tolerance, keep)

	out := make([]Vec, 0, len(line))
	for i, k := range keep {
		if k {
			out = append(out, line[i])
		}
	}
	return out
}

func rdp(line []Vec, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}
	maxDist := -1.0
	maxIdx := first
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(line[i], line[first], line[last])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist > tolerance {
		keep[maxIdx] = true
		rdp(line, first, maxIdx, tolerance, keep)
		rdp(line, maxIdx, last, tolerance, keep)
	}
}

// perpendicularDistance is the distance from p to the segment a→b.
func perpendicularDistance(p, a, b Vec) float64 {
	d := b.Sub(a)
	lenSq := d.LengthSq()
	if lenSq < 1e-12 {
		return p.Distance(a)
	}
	t := clampF(p.Sub(a).Dot(d)/lenSq, 0, 1)
	return p.Distance(a.Add(d.Scale(t)))
}

// PointsBetween returns the points after v1 up to and including v2, evenly
// spaced at most dstep apart.
func PointsBetween(v1, v2 Vec, dstep float64) []Vec {
	d := v1.Distance(v2)
	n := int(d / dstep)
	if float64(n)*dstep < d {
		n++
	}
	if n == 0 {
		return nil
	}
	step := v2.Sub(v1)
	out := make([]Vec, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, v1.Add(step.Scale(float64(i)/float64(n))))
	}
	return out
}

// Complexify inserts samples on each segment of a polyline until adjacent
// samples are at most dstep apart.
func Complexify(line []Vec, dstep float64) []Vec {
	if len(line) < 2 {
		return append([]Vec{}, line...)
	}
	dstepSq := dstep * dstep
	out := make([]Vec, 0, len(line))
	for i := 0; i < len(line)-1; i++ {
		out = append(out, complexifySegment(line[i], line[i+1], dstepSq)...)
	}
	return out
}

func complexifySegment(v1, v2 Vec, dstepSq float64) []Vec {
	if v1.DistanceSq(v2) <= dstepSq {
		return []Vec{v1, v2}
	}
	halfway := MidPoint(v1, v2)
	out := complexifySegment(v1, halfway, dstepSq)
	return append(out, complexifySegment(halfway, v2, dstepSq)...)
}

// PolylineLength returns the total length of a polyline.
func PolylineLength(line []Vec) float64 {
	total := 0.0
	for i := 0; i < len(line)-1; i++ {
		total += line[i].Distance(line[i+1])
	}
	return total
}

// ReversePolyline returns a copy of the polyline with the order reversed.
func ReversePolyline(line []Vec) []Vec {
	out := make([]Vec, len(line))
	for i, v := range line {
		out[len(line)-1-i] = v
	}
	return out
}
