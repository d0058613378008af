package spec

import (
	"github.com/violet-summer/MapGenerator/pkg/blocks"
	"github.com/violet-summer/MapGenerator/pkg/buildings"
	"github.com/violet-summer/MapGenerator/pkg/field"
	"github.com/violet-summer/MapGenerator/pkg/geo"
	"github.com/violet-summer/MapGenerator/pkg/streamline"
)

// MapSpec is the top-level parameter document for a generated city map.
type MapSpec struct {
	Zoom            float64         `yaml:"zoom" json:"zoom"`
	WorldDimensions geo.Vec         `yaml:"worldDimensions" json:"worldDimensions"`
	Origin          geo.Vec         `yaml:"origin" json:"origin"`
	Seed            int64           `yaml:"seed" json:"seed"`
	TensorField     TensorFieldDef  `yaml:"tensorField" json:"tensorField"`
	Water           WaterDef        `yaml:"water" json:"water"`
	Streamlines     StreamlinesDef  `yaml:"streamlines" json:"streamlines"`
	Parks           ParksDef        `yaml:"parks" json:"parks"`
	Buildings       BuildingsDef    `yaml:"buildings" json:"buildings"`
	Options         OptionsDef      `yaml:"options" json:"options"`
}

// TensorFieldDef configures the basis fields and noise modulation.
type TensorFieldDef struct {
	NoiseParams field.NoiseParams `yaml:"noiseParams" json:"noiseParams"`
	BasisFields []BasisFieldDef   `yaml:"basisFields" json:"basisFields"`
}

// BasisFieldDef is one basis field entry. Theta only applies to grids.
type BasisFieldDef struct {
	Type  string  `yaml:"type" json:"type"` // "grid" or "radial"
	X     float64 `yaml:"x" json:"x"`
	Y     float64 `yaml:"y" json:"y"`
	Size  float64 `yaml:"size" json:"size"`
	Decay float64 `yaml:"decay" json:"decay"`
	Theta float64 `yaml:"theta,omitempty" json:"theta,omitempty"`
}

// WaterDef configures the coastline and river stage.
type WaterDef struct {
	CoastParams   streamline.NoiseStreamlineParams `yaml:"coastParams" json:"coastParams"`
	RiverParams   streamline.NoiseStreamlineParams `yaml:"riverParams" json:"riverParams"`
	RiverBankSize float64                          `yaml:"riverBankSize" json:"riverBankSize"`
	RiverSize     float64                          `yaml:"riverSize" json:"riverSize"`
}

// StreamlinesDef holds the full parameter record per road class.
type StreamlinesDef struct {
	Main  streamline.Params `yaml:"main" json:"main"`
	Major streamline.Params `yaml:"major" json:"major"`
	Minor streamline.Params `yaml:"minor" json:"minor"`
}

// ParksDef configures park selection.
type ParksDef struct {
	NumBigParks     int  `yaml:"numBigParks" json:"numBigParks"`
	NumSmallParks   int  `yaml:"numSmallParks" json:"numSmallParks"`
	ClusterBigParks bool `yaml:"clusterBigParks" json:"clusterBigParks"`
}

// BuildingsDef configures block subdivision and building heights.
type BuildingsDef struct {
	blocks.Params         `yaml:",inline"`
	buildings.HeightRange `yaml:",inline"`
}

// OptionsDef holds host-facing options.
type OptionsDef struct {
	DrawCentre     bool    `yaml:"drawCentre" json:"drawCentre"`
	AnimationSpeed int     `yaml:"animationSpeed" json:"animationSpeed"` // milliseconds per Step
	Orthographic   bool    `yaml:"orthographic" json:"orthographic"`
	CameraX        float64 `yaml:"cameraX" json:"cameraX"`
	CameraY        float64 `yaml:"cameraY" json:"cameraY"`
}

// WorldRect returns the world rectangle.
func (s *MapSpec) WorldRect() geo.Rect {
	return geo.NewRect(s.Origin, s.WorldDimensions)
}

// WaterStreamlineParams returns the streamline params used while growing
// water: main-road spacing with a deep iteration budget so a single
// streamline can span the world.
func (s *MapSpec) WaterStreamlineParams() streamline.WaterParams {
	p := s.Streamlines.Main
	p.PathIterations = 10000
	return streamline.WaterParams{
		Params:        p,
		CoastParams:   s.Water.CoastParams,
		RiverParams:   s.Water.RiverParams,
		RiverBankSize: s.Water.RiverBankSize,
		RiverSize:     s.Water.RiverSize,
	}
}

// Default returns the stock parameter set.
func Default() *MapSpec {
	base := streamline.Params{
		Dstep:             1,
		Dcirclejoin:       5,
		Joinangle:         0.1,
		PathIterations:    2304,
		SeedTries:         300,
		SimplifyTolerance: 0.5,
		CollideEarly:      0,
	}
	main := base
	main.Dsep, main.Dtest, main.Dlookahead = 400, 200, 500
	major := base
	major.Dsep, major.Dtest, major.Dlookahead = 100, 30, 200
	minor := base
	minor.Dsep, minor.Dtest, minor.Dlookahead = 20, 15, 40

	return &MapSpec{
		Zoom:            0.3,
		WorldDimensions: geo.V(2000, 1000),
		Origin:          geo.V(0, 0),
		Seed:            42,
		TensorField: TensorFieldDef{
			NoiseParams: field.NoiseParams{
				GlobalNoise:      false,
				NoiseSizePark:    20,
				NoiseAnglePark:   90,
				NoiseSizeGlobal:  30,
				NoiseAngleGlobal: 20,
			},
			BasisFields: []BasisFieldDef{
				{Type: "grid", X: 1000, Y: 500, Size: 500, Decay: 50, Theta: 0},
			},
		},
		Water: WaterDef{
			CoastParams:   streamline.NoiseStreamlineParams{Enabled: true, Size: 30, Angle: 20},
			RiverParams:   streamline.NoiseStreamlineParams{Enabled: true, Size: 30, Angle: 20},
			RiverBankSize: 10,
			RiverSize:     30,
		},
		Streamlines: StreamlinesDef{Main: main, Major: major, Minor: minor},
		Parks: ParksDef{
			NumBigParks:     2,
			NumSmallParks:   0,
			ClusterBigParks: false,
		},
		Buildings: BuildingsDef{
			Params: blocks.Params{
				MaxLength:      20,
				MinArea:        70,
				ShrinkSpacing:  4,
				ChanceNoDivide: 0.05,
			},
			HeightRange: buildings.HeightRange{Min: 20, Max: 40},
		},
		Options: OptionsDef{
			DrawCentre:     false,
			AnimationSpeed: 30,
			Orthographic:   false,
		},
	}
}
