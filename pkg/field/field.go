package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// NoiseParams controls the rotational noise applied to sampled tensors.
// Angles are in degrees, sizes in world units.
type NoiseParams struct {
	GlobalNoise      bool    `json:"globalNoise" yaml:"globalNoise"`
	NoiseSizePark    float64 `json:"noiseSizePark" yaml:"noiseSizePark"`
	NoiseAnglePark   float64 `json:"noiseAnglePark" yaml:"noiseAnglePark"`
	NoiseSizeGlobal  float64 `json:"noiseSizeGlobal" yaml:"noiseSizeGlobal"`
	NoiseAngleGlobal float64 `json:"noiseAngleGlobal" yaml:"noiseAngleGlobal"`
}

// TensorField is the weighted sum of basis fields with water masking and
// noise modulation. Sea, River and Parks geometry is written by the
// generation stages as they run.
type TensorField struct {
	fields []BasisField
	noise  opensimplex.Noise
	params NoiseParams

	Sea         geo.Polygon
	River       geo.Polygon
	Parks       []geo.Polygon
	IgnoreRiver bool

	smooth bool
}

// New creates a tensor field. The seed fixes the noise backend so repeated
// runs sample identically.
func New(params NoiseParams, seed int64) *TensorField {
	return &TensorField{
		noise:  opensimplex.New(seed),
		params: params,
	}
}

// AddGrid appends a grid basis field.
func (t *TensorField) AddGrid(centre geo.Vec, size, decay, theta float64) {
	t.fields = append(t.fields, NewGrid(centre, size, decay, theta))
}

// AddRadial appends a radial basis field.
func (t *TensorField) AddRadial(centre geo.Vec, size, decay float64) {
	t.fields = append(t.fields, NewRadial(centre, size, decay))
}

// AddField appends a basis field.
func (t *TensorField) AddField(f BasisField) {
	t.fields = append(t.fields, f)
}

// BasisFields returns the field list.
func (t *TensorField) BasisFields() []BasisField {
	return t.fields
}

// CentrePoints returns each basis field's centre.
func (t *TensorField) CentrePoints() []geo.Vec {
	out := make([]geo.Vec, len(t.fields))
	for i, f := range t.fields {
		out[i] = f.Centre()
	}
	return out
}

// Reset drops all basis fields and stage-written geometry.
func (t *TensorField) Reset() {
	t.fields = nil
	t.Parks = nil
	t.Sea = geo.Polygon{}
	t.River = geo.Polygon{}
}

// EnableGlobalNoise switches on global rotational noise with the given
// angle (degrees) and size.
func (t *TensorField) EnableGlobalNoise(angle, size float64) {
	t.params.GlobalNoise = true
	t.params.NoiseAngleGlobal = angle
	t.params.NoiseSizeGlobal = size
}

// DisableGlobalNoise switches off global rotational noise.
func (t *TensorField) DisableGlobalNoise() {
	t.params.GlobalNoise = false
}

// Sample returns the field tensor at a point. Water acts as a hard mask:
// inside the sea or river the field is degenerate and streamlines stop.
func (t *TensorField) Sample(p geo.Vec) Tensor {
	if !t.OnLand(p) {
		return ZeroTensor
	}

	if len(t.fields) == 0 {
		// Default to a plain axis-aligned grid.
		return Tensor{R: 1, M0: 0, M1: 0}
	}

	acc := ZeroTensor
	for _, f := range t.fields {
		acc = acc.Add(WeightedTensor(f, p), t.smooth)
	}
	// Outside every basis field's effective range the field is zero.
	if math.Hypot(acc.M0, acc.M1) < 1e-9 {
		return ZeroTensor
	}

	if t.InParks(p) {
		acc = acc.Rotate(t.rotationalNoise(p, t.params.NoiseSizePark, t.params.NoiseAnglePark))
	}
	if t.params.GlobalNoise {
		acc = acc.Rotate(t.rotationalNoise(p, t.params.NoiseSizeGlobal, t.params.NoiseAngleGlobal))
	}
	return acc
}

// rotationalNoise maps simplex noise at a point to a rotation in radians
// bounded by ±angle degrees.
func (t *TensorField) rotationalNoise(p geo.Vec, size, angle float64) float64 {
	if size <= 0 {
		return 0
	}
	return t.noise.Eval2(p.X/size, p.Y/size) * angle * math.Pi / 180
}

// OnLand returns true if the point is outside the sea and, unless rivers
// are ignored, outside the river.
func (t *TensorField) OnLand(p geo.Vec) bool {
	if t.Sea.Contains(p) {
		return false
	}
	if t.IgnoreRiver {
		return true
	}
	return !t.River.Contains(p)
}

// InSea returns true if the point is inside the sea polygon.
func (t *TensorField) InSea(p geo.Vec) bool {
	return t.Sea.Contains(p)
}

// InRiver returns true if the point is inside the river polygon.
func (t *TensorField) InRiver(p geo.Vec) bool {
	return t.River.Contains(p)
}

// InParks returns true if the point is inside any park polygon.
func (t *TensorField) InParks(p geo.Vec) bool {
	for _, park := range t.Parks {
		if park.Contains(p) {
			return true
		}
	}
	return false
}
