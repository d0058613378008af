package field

import (
	"math"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// BasisField is a primitive tensor-producing function around a centre.
// Its influence decays with normalized distance from the centre.
type BasisField interface {
	// TensorAt returns the raw, unweighted tensor at a point.
	TensorAt(p geo.Vec) Tensor
	// Strength returns the field's weight at a point, in [0, 1].
	Strength(p geo.Vec) float64
	// Centre returns the field's centre point.
	Centre() geo.Vec
}

// WeightedTensor samples a basis field with its strength applied.
func WeightedTensor(f BasisField, p geo.Vec) Tensor {
	return f.TensorAt(p).Scale(f.Strength(p))
}

// baseField carries the parameters shared by all basis field kinds.
type baseField struct {
	centre geo.Vec
	size   float64
	decay  float64
}

func (b baseField) Centre() geo.Vec {
	return b.centre
}

// Strength decays exponentially with the squared distance from the centre
// normalized by size, shaped by decay.
func (b baseField) Strength(p geo.Vec) float64 {
	if b.size <= 0 {
		return 0
	}
	distSq := p.DistanceSq(b.centre)
	return math.Exp(-b.decay * distSq / (b.size * b.size))
}

// GridField produces a constant direction everywhere; streamlines follow a
// rectangular grid rotated by theta.
type GridField struct {
	baseField
	theta float64
}

// NewGrid creates a grid basis field.
func NewGrid(centre geo.Vec, size, decay, theta float64) *GridField {
	return &GridField{
		baseField: baseField{centre: centre, size: size, decay: decay},
		theta:     theta,
	}
}

func (g *GridField) TensorAt(geo.Vec) Tensor {
	return Tensor{
		R:  g.size * g.size,
		M0: math.Cos(2 * g.theta),
		M1: math.Sin(2 * g.theta),
	}
}

// RadialField produces directions perpendicular to the radius from its
// centre; streamlines circle the centre.
type RadialField struct {
	baseField
}

// NewRadial creates a radial basis field.
func NewRadial(centre geo.Vec, size, decay float64) *RadialField {
	return &RadialField{
		baseField: baseField{centre: centre, size: size, decay: decay},
	}
}

func (r *RadialField) TensorAt(p geo.Vec) Tensor {
	t := p.Sub(r.centre)
	lenSq := t.LengthSq()
	if lenSq < 1e-12 {
		return ZeroTensor
	}
	// Components normalized so orientation, not distance, carries weight.
	return Tensor{
		R:  r.size * r.size,
		M0: (t.Y*t.Y - t.X*t.X) / lenSq,
		M1: -2 * t.X * t.Y / lenSq,
	}
}
