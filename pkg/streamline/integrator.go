package streamline

import (
	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// Integrator advances a point along one eigenvector family of a tensor
// field. Implementations report degeneracy so tracing stops at undefined
// directions.
type Integrator interface {
	// Integrate returns the step vector from p, or degenerate=true if the
	// field has no direction at any sub-sample.
	Integrate(p geo.Vec, major bool) (step geo.Vec, degenerate bool)
	// OnLand reports whether p is outside all water masks.
	OnLand(p geo.Vec) bool
}

// fieldSampler provides the shared eigenvector sampling for integrators.
type fieldSampler struct {
	field *field.TensorField
}

// sampleVector returns the unit eigenvector at p. The sign is aligned with
// ref (dot ≥ 0) to prevent 180° flips at tensor-sign ambiguities; pass the
// zero vector to take the eigenvector as-is.
func (s fieldSampler) sampleVector(p geo.Vec, major bool, ref geo.Vec) (geo.Vec, bool) {
	t := s.field.Sample(p)
	if t.IsDegenerate() {
		return geo.Vec{}, true
	}
	v := t.Major()
	if !major {
		v = t.Minor()
	}
	if v.Dot(ref) < 0 {
		v = v.Scale(-1)
	}
	return v, false
}

func (s fieldSampler) OnLand(p geo.Vec) bool {
	return s.field.OnLand(p)
}

// EulerIntegrator is the single-sample fallback integrator.
type EulerIntegrator struct {
	fieldSampler
	dstep float64
}

// NewEuler creates an Euler integrator with the given step length.
func NewEuler(f *field.TensorField, params Params) *EulerIntegrator {
	return &EulerIntegrator{fieldSampler{f}, params.Dstep}
}

func (e *EulerIntegrator) Integrate(p geo.Vec, major bool) (geo.Vec, bool) {
	v, degenerate := e.sampleVector(p, major, geo.Vec{})
	if degenerate {
		return geo.Vec{}, true
	}
	return v.Scale(e.dstep), false
}

// RK4Integrator is the default fourth-order integrator.
type RK4Integrator struct {
	fieldSampler
	dstep float64
}

// NewRK4 creates an RK4 integrator with the given step length.
func NewRK4(f *field.TensorField, params Params) *RK4Integrator {
	return &RK4Integrator{fieldSampler{f}, params.Dstep}
}

func (r *RK4Integrator) Integrate(p geo.Vec, major bool) (geo.Vec, bool) {
	h := r.dstep
	k1, d1 := r.sampleVector(p, major, geo.Vec{})
	if d1 {
		return geo.Vec{}, true
	}
	k2, d2 := r.sampleVector(p.Add(k1.Scale(h/2)), major, k1)
	if d2 {
		return geo.Vec{}, true
	}
	k3, d3 := r.sampleVector(p.Add(k2.Scale(h/2)), major, k2)
	if d3 {
		return geo.Vec{}, true
	}
	k4, d4 := r.sampleVector(p.Add(k3.Scale(h)), major, k3)
	if d4 {
		return geo.Vec{}, true
	}
	step := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(h / 6)
	return step, false
}
