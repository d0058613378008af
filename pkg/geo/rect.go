package geo

// Rect is an axis-aligned rectangle anchored at Origin with extent Dims.
type Rect struct {
	Origin Vec `json:"origin"`
	Dims   Vec `json:"dims"`
}

// NewRect creates a rectangle from an origin and dimensions.
func NewRect(origin, dims Vec) Rect {
	return Rect{Origin: origin, Dims: dims}
}

// Contains returns true if the point lies inside the rectangle. Points on
// the minimum edges count as inside, points on the maximum edges do not.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Origin.X && p.Y >= r.Origin.Y &&
		p.X < r.Origin.X+r.Dims.X && p.Y < r.Origin.Y+r.Dims.Y
}

// Max returns the corner opposite the origin.
func (r Rect) Max() Vec {
	return r.Origin.Add(r.Dims)
}

// Corners returns the four corners in CCW order starting at the origin.
func (r Rect) Corners() []Vec {
	return []Vec{
		r.Origin,
		V(r.Origin.X+r.Dims.X, r.Origin.Y),
		r.Origin.Add(r.Dims),
		V(r.Origin.X, r.Origin.Y+r.Dims.Y),
	}
}

// Polygon returns the rectangle as a CCW polygon.
func (r Rect) Polygon() Polygon {
	return Polygon{Vertices: r.Corners()}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Dims.X * r.Dims.Y
}
