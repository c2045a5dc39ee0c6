package planner

import (
	"math"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// DetourResult is the outcome of Detour
type DetourResult struct {
	Target     game.Point2D
	Deflection float64 // Degrees applied to the ball→target vector; 0 when unchanged
	Blocked    bool    // Whether the original path was blocked
	Path       oracle.PathReport
}

// Detour swings a blocked ball→target line through DetourAnglesDeg, keeping the shot
// length. The first fully clear deflection wins. Failing that, the deflection with the
// fewest sand samples (fewer than the original path) is used. Otherwise, or when the
// oracle fails on the original path, the target is returned unchanged.
func Detour(o oracle.Oracle, ball, target game.Point2D) DetourResult {
	o = oracle.OrPermissive(o)
	result := DetourResult{Target: target}

	original, err := oracle.PathClear(o, ball, target, oracle.DefaultPathSamples)
	if err != nil || original.Clear {
		result.Path = original
		return result
	}
	result.Blocked = true
	result.Path = original

	offset := target.Sub(ball)
	bestSand := original.Sand
	for _, deg := range DetourAnglesDeg {
		alt := ball.Add(offset.Rotate(deg * math.Pi / 180))
		report, err := oracle.PathClear(o, ball, alt, oracle.DefaultPathSamples)
		if err != nil {
			continue
		}
		if report.Clear {
			return DetourResult{Target: alt, Deflection: deg, Blocked: true, Path: report}
		}
		if report.Sand < bestSand {
			bestSand = report.Sand
			result.Target = alt
			result.Deflection = deg
			result.Path = report
		}
	}
	return result
}
