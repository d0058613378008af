package geo

import "math"

// Polygon is a closed loop of vertices in order, without repeating the
// first vertex. Solid regions are wound counterclockwise.
type Polygon struct {
	Vertices []Vec `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Vec) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Vec, Vec) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Vec, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// Perimeter returns the total boundary length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// ShapeIndex returns area / perimeter². Slivers score near zero; a circle
// scores 1/(4π) ≈ 0.0796, the highest possible value.
func (p Polygon) ShapeIndex() float64 {
	per := p.Perimeter()
	if per < 1e-12 {
		return 0
	}
	return p.Area() / (per * per)
}

// AveragePoint returns the mean of the vertices.
func (p Polygon) AveragePoint() Vec {
	if len(p.Vertices) == 0 {
		return Vec{}
	}
	sum := Vec{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(p.Vertices)))
}

// Centroid returns the area centroid of the polygon.
func (p Polygon) Centroid() Vec {
	n := len(p.Vertices)
	if n == 0 {
		return Vec{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		return p.AveragePoint()
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Vec{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Vec, Vec) {
	if len(p.Vertices) == 0 {
		return Vec{}, Vec{}
	}
	minV := p.Vertices[0]
	maxV := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		if v.X < minV.X {
			minV.X = v.X
		}
		if v.Y < minV.Y {
			minV.Y = v.Y
		}
		if v.X > maxV.X {
			maxV.X = v.X
		}
		if v.Y > maxV.Y {
			maxV.Y = v.Y
		}
	}
	return minV, maxV
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Vec) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// LongestEdge returns the index of the longest edge.
func (p Polygon) LongestEdge() int {
	best := 0
	bestLen := -1.0
	for i := range p.Vertices {
		a, b := p.Edge(i)
		if l := a.DistanceSq(b); l > bestLen {
			bestLen = l
			best = i
		}
	}
	return best
}

// IsSimple returns true if no two non-adjacent edges cross.
func (p Polygon) IsSimple() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := p.Edge(i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := p.Edge(j)
			if _, ok := SegmentIntersection(a1, a2, b1, b2); ok {
				return false
			}
		}
	}
	return true
}
