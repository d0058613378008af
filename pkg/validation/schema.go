package validation

import (
	"fmt"

	"github.com/violet-summer/MapGenerator/pkg/spec"
	"github.com/violet-summer/MapGenerator/pkg/streamline"
)

// ValidateSchema checks a map spec's parameter ranges. Any error here is
// fatal to generation; warnings flag values that will work but look
// suspicious.
func ValidateSchema(s *spec.MapSpec) *Report {
	r := NewReport()

	if s.Zoom < 0.3 || s.Zoom > 20 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "zoom out of range",
			SpecPath:    "zoom",
			ActualValue: s.Zoom,
			Expected:    "0.3 <= zoom <= 20",
		})
	}
	if s.WorldDimensions.X <= 0 || s.WorldDimensions.Y <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "world dimensions must be positive",
			SpecPath:    "worldDimensions",
			ActualValue: s.WorldDimensions,
		})
	}

	for i, f := range s.TensorField.BasisFields {
		path := fmt.Sprintf("tensorField.basisFields[%d]", i)
		if f.Type != "grid" && f.Type != "radial" {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "unknown basis field type",
				SpecPath:    path + ".type",
				ActualValue: f.Type,
				Expected:    `"grid" or "radial"`,
			})
		}
		if f.Size <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "basis field size must be positive",
				SpecPath:    path + ".size",
				ActualValue: f.Size,
			})
		}
	}

	validateStreamlineParams(r, "streamlines.main", s.Streamlines.Main)
	validateStreamlineParams(r, "streamlines.major", s.Streamlines.Major)
	validateStreamlineParams(r, "streamlines.minor", s.Streamlines.Minor)

	if s.Water.RiverSize <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "river size must be positive",
			SpecPath:    "water.riverSize",
			ActualValue: s.Water.RiverSize,
		})
	}
	if s.Water.RiverBankSize < 0 || s.Water.RiverBankSize >= s.Water.RiverSize {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "river bank size must sit inside the river size",
			SpecPath:    "water.riverBankSize",
			ActualValue: s.Water.RiverBankSize,
			Expected:    "0 <= riverBankSize < riverSize",
		})
	}

	if s.Parks.NumBigParks < 0 || s.Parks.NumSmallParks < 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "park counts must not be negative",
			SpecPath: "parks",
		})
	}

	if s.Buildings.MinArea <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "building minArea must be positive",
			SpecPath:    "buildings.minArea",
			ActualValue: s.Buildings.MinArea,
		})
	}
	if s.Buildings.ShrinkSpacing < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "shrink spacing must not be negative",
			SpecPath:    "buildings.shrinkSpacing",
			ActualValue: s.Buildings.ShrinkSpacing,
		})
	}
	if s.Buildings.ChanceNoDivide < 0 || s.Buildings.ChanceNoDivide > 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "chanceNoDivide must be a probability",
			SpecPath:    "buildings.chanceNoDivide",
			ActualValue: s.Buildings.ChanceNoDivide,
			Expected:    "0 <= chanceNoDivide <= 1",
		})
	}
	if s.Buildings.Min > s.Buildings.Max {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "building height range inverted",
			SpecPath:    "buildings.heightMin",
			ActualValue: s.Buildings.Min,
			Expected:    "heightMin <= heightMax",
		})
	}

	return r
}

func validateStreamlineParams(r *Report, path string, p streamline.Params) {
	if p.Dsep <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "dsep must be positive",
			SpecPath:    path + ".dsep",
			ActualValue: p.Dsep,
		})
	}
	if p.Dstep <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "dstep must be positive",
			SpecPath:    path + ".dstep",
			ActualValue: p.Dstep,
		})
	}
	if p.Dtest <= 0 || p.Dtest > p.Dsep {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "dtest must satisfy 0 < dtest <= dsep",
			SpecPath:    path + ".dtest",
			ActualValue: p.Dtest,
		})
	}
	if p.Dstep >= p.Dtest {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "dstep should be much smaller than dtest",
			SpecPath:    path + ".dstep",
			ActualValue: p.Dstep,
			Expected:    "dstep << dtest",
		})
	}
	if p.CollideEarly < 0 || p.CollideEarly > 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "collideEarly must be in [0,1]",
			SpecPath:    path + ".collideEarly",
			ActualValue: p.CollideEarly,
		})
	}
	if p.PathIterations <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "pathIterations must be positive",
			SpecPath:    path + ".pathIterations",
			ActualValue: p.PathIterations,
		})
	}
	if p.SeedTries <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "seedTries must be positive",
			SpecPath:    path + ".seedTries",
			ActualValue: p.SeedTries,
		})
	}
}
