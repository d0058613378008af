package buildings

import (
	"math/rand"
	"sort"

	"github.com/violet-summer/MapGenerator/pkg/geo"
)

// ViewState is the camera and viewport information threaded through
// projection. The core pipeline does not depend on it; only the
// pseudo-3D stage does.
type ViewState struct {
	Origin       geo.Vec `json:"origin"`
	Zoom         float64 `json:"zoom"`
	WorldDims    geo.Vec `json:"worldDims"`
	Camera       geo.Vec `json:"camera"`
	Orthographic bool    `json:"orthographic"`
}

// WorldToScreen maps a world point into screen space.
func (v ViewState) WorldToScreen(p geo.Vec) geo.Vec {
	return p.Sub(v.Origin).Scale(v.Zoom)
}

// FocalDistance is the pseudo-3D focal parameter.
func (v ViewState) FocalDistance() float64 {
	if v.Zoom <= 0 {
		return 1000
	}
	return 1000 / v.Zoom
}

// cameraDirection is the unit direction used for orthographic extrusion.
func (v ViewState) cameraDirection() geo.Vec {
	d := v.Camera.Normalize()
	if d == (geo.Vec{}) {
		return geo.V(0, -1)
	}
	return d
}

// HeightRange bounds the random building heights in world units.
type HeightRange struct {
	Min float64 `json:"heightMin" yaml:"heightMin"`
	Max float64 `json:"heightMax" yaml:"heightMax"`
}

// Model is one pseudo-3D building: its lot in world space plus the
// projected lot, roof and side quads in screen space.
type Model struct {
	Lot       geo.Polygon   `json:"lot"`
	LotScreen geo.Polygon   `json:"lotScreen"`
	Roof      geo.Polygon   `json:"roof"`
	Sides     []geo.Polygon `json:"sides"`
	Height    float64       `json:"height"`
}

// GenerateModels projects lots into pseudo-3D buildings. Heights are drawn
// uniformly from the range; the result is sorted ascending by height so
// taller buildings draw over shorter ones.
func GenerateModels(lots []geo.Polygon, view ViewState, heights HeightRange, rng *rand.Rand) []Model {
	models := make([]Model, 0, len(lots))
	for _, lot := range lots {
		h := heights.Min + rng.Float64()*(heights.Max-heights.Min)
		models = append(models, project(lot, h, view))
	}
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Height < models[j].Height
	})
	return models
}

// project computes the screen lot, roof and side quads for one building.
func project(lot geo.Polygon, height float64, view ViewState) Model {
	n := len(lot.Vertices)
	screen := make([]geo.Vec, n)
	roof := make([]geo.Vec, n)

	d := view.FocalDistance()
	for i, v := range lot.Vertices {
		s := view.WorldToScreen(v)
		screen[i] = s
		if view.Orthographic {
			// Extrude along the camera direction; the projected height
			// equals the model height.
			roof[i] = s.Add(view.cameraDirection().Scale(height))
		} else {
			// Scale away from the camera with perspective foreshortening.
			factor := height / (d - height)
			roof[i] = s.Add(s.Sub(view.Camera).Scale(factor))
		}
	}

	sides := make([]geo.Polygon, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sides = append(sides, geo.NewPolygon(screen[i], screen[j], roof[j], roof[i]))
	}

	return Model{
		Lot:       lot,
		LotScreen: geo.Polygon{Vertices: screen},
		Roof:      geo.Polygon{Vertices: roof},
		Sides:     sides,
		Height:    height,
	}
}
