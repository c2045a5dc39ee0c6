// Package oracle answers terrain-safety questions about points and paths on the course.
package oracle

import (
	"github.com/lab1702/golf-ai/game"
)

// DefaultPathSamples is the number of evenly spaced points checked along a path
const DefaultPathSamples = 20

// Oracle classifies individual course points. Implementations may fail; callers in the
// planning core treat a failure as "unknown" and fall back conservatively.
type Oracle interface {
	IsSand(p game.Point2D) (bool, error)
	IsHazard(p game.Point2D) (bool, error)
}

// Classifier is implemented by oracles that know the full terrain type of a point
type Classifier interface {
	TerrainAt(p game.Point2D) (game.Terrain, error)
}

// PathReport is the outcome of sampling a straight path
type PathReport struct {
	Clear   bool
	Hazards int
	Sand    int
}

// Permissive reports every point as safe fairway. It stands in whenever no terrain
// source is available so planners never have to check for a missing oracle.
type Permissive struct{}

// IsSand always returns false
func (Permissive) IsSand(game.Point2D) (bool, error) { return false, nil }

// IsHazard always returns false
func (Permissive) IsHazard(game.Point2D) (bool, error) { return false, nil }

// TerrainAt always returns fairway
func (Permissive) TerrainAt(game.Point2D) (game.Terrain, error) { return game.TerrainFairway, nil }

// OrPermissive returns o, or the permissive oracle when o is nil
func OrPermissive(o Oracle) Oracle {
	if o == nil {
		return Permissive{}
	}
	return o
}

// PathClear samples the segment p1→p2 at evenly spaced points (both endpoints included)
// and counts hazard and sand samples. A sample that is a hazard is not also counted as
// sand. The path is clear only with zero hazards and fewer than two sand samples.
func PathClear(o Oracle, p1, p2 game.Point2D, samples int) (PathReport, error) {
	if samples <= 0 {
		samples = DefaultPathSamples
	}

	var report PathReport
	for i := 0; i < samples; i++ {
		t := 0.0
		if samples > 1 {
			t = float64(i) / float64(samples-1)
		}
		p := p1.Lerp(p2, t)

		hazard, err := o.IsHazard(p)
		if err != nil {
			return PathReport{}, game.WrapError(game.TERRAIN_QUERY_FAILED, "path hazard query", err)
		}
		if hazard {
			report.Hazards++
			continue
		}

		sand, err := o.IsSand(p)
		if err != nil {
			return PathReport{}, game.WrapError(game.TERRAIN_QUERY_FAILED, "path sand query", err)
		}
		if sand {
			report.Sand++
		}
	}

	report.Clear = report.Hazards == 0 && report.Sand < 2
	return report, nil
}

// Classify returns the terrain at p. Oracles that implement Classifier answer directly;
// otherwise hazards map to water, sand to sand and everything else to fairway.
func Classify(o Oracle, p game.Point2D) (game.Terrain, error) {
	if c, ok := o.(Classifier); ok {
		return c.TerrainAt(p)
	}

	hazard, err := o.IsHazard(p)
	if err != nil {
		return game.TerrainFairway, game.WrapError(game.TERRAIN_QUERY_FAILED, "classify hazard", err)
	}
	if hazard {
		return game.TerrainWater, nil
	}
	sand, err := o.IsSand(p)
	if err != nil {
		return game.TerrainFairway, game.WrapError(game.TERRAIN_QUERY_FAILED, "classify sand", err)
	}
	if sand {
		return game.TerrainSand, nil
	}
	return game.TerrainFairway, nil
}

// SandOrHazard reports whether p is unsafe to land on. Query failures count as unsafe.
func SandOrHazard(o Oracle, p game.Point2D) bool {
	hazard, err := o.IsHazard(p)
	if err != nil || hazard {
		return true
	}
	sand, err := o.IsSand(p)
	return err != nil || sand
}
