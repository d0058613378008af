package field

import (
	"math"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// degenerateEps is the magnitude below which a tensor has no defined
// direction.
const degenerateEps = 1e-4

// Tensor is a symmetric traceless 2x2 matrix stored as a magnitude R and
// the pair (M0, M1) = (cos 2θ, sin 2θ) scaled by R. The major eigenvector
// has angle θ, the minor eigenvector θ + π/2.
type Tensor struct {
	R  float64
	M0 float64
	M1 float64
}

// ZeroTensor is the degenerate tensor with no direction.
var ZeroTensor = Tensor{}

// TensorFromAngle creates a unit tensor whose major eigenvector points
// along the given angle.
func TensorFromAngle(angle float64) Tensor {
	return Tensor{R: 1, M0: math.Cos(2 * angle), M1: math.Sin(2 * angle)}
}

// IsDegenerate returns true if the tensor has no defined direction.
func (t Tensor) IsDegenerate() bool {
	return t.R < degenerateEps
}

// Theta returns the major eigenvector angle.
func (t Tensor) Theta() float64 {
	if t.IsDegenerate() {
		return 0
	}
	return math.Atan2(t.M1/t.R, t.M0/t.R) / 2
}

// Add returns the weighted sum of two tensors. With smooth set, the result
// is renormalized so magnitudes blend; otherwise the magnitude is pinned
// and only direction accumulates.
func (t Tensor) Add(o Tensor, smooth bool) Tensor {
	out := Tensor{
		M0: t.M0*t.R + o.M0*o.R,
		M1: t.M1*t.R + o.M1*o.R,
	}
	if smooth {
		out.R = math.Hypot(out.M0, out.M1)
		if out.R < 1e-12 {
			return ZeroTensor
		}
		out.M0 /= out.R
		out.M1 /= out.R
	} else {
		out.R = 2
	}
	return out
}

// Scale returns the tensor with magnitude multiplied by s.
func (t Tensor) Scale(s float64) Tensor {
	return Tensor{R: t.R * s, M0: t.M0, M1: t.M1}
}

// Rotate returns the tensor with its orientation rotated by theta radians.
func (t Tensor) Rotate(theta float64) Tensor {
	if theta == 0 || t.IsDegenerate() {
		return t
	}
	newTheta := math.Mod(t.Theta()+theta, math.Pi)
	return Tensor{
		R:  t.R,
		M0: math.Cos(2 * newTheta),
		M1: math.Sin(2 * newTheta),
	}
}

// Major returns the unit major eigenvector, or the zero vector for a
// degenerate tensor.
func (t Tensor) Major() geo.Vec {
	if t.IsDegenerate() {
		return geo.Vec{}
	}
	theta := t.Theta()
	return geo.V(math.Cos(theta), math.Sin(theta))
}

// Minor returns the unit minor eigenvector, orthogonal to the major one.
func (t Tensor) Minor() geo.Vec {
	if t.IsDegenerate() {
		return geo.Vec{}
	}
	angle := t.Theta() + math.Pi/2
	return geo.V(math.Cos(angle), math.Sin(angle))
}
