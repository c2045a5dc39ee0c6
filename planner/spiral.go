package planner

import (
	"math"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// SpiralSearch walks concentric rings around center and returns the first point that
// is neither sand nor hazard and can be reached from center along a clear path.
// Rings are SpiralStep apart; each ring gets one sample per SpiralStep of arc.
func (p *Planner) SpiralSearch(center game.Point2D) (game.Point2D, bool) {
	for r := SpiralStep; r <= SpiralMaxRadius; r += SpiralStep {
		samples := int(math.Ceil(2 * math.Pi * r / SpiralStep))
		if samples < SpiralMinSamples {
			samples = SpiralMinSamples
		}

		for k := 0; k < samples; k++ {
			theta := 2 * math.Pi * float64(k) / float64(samples)
			pt := p.bounds.Clamp(center.Add(game.FromBearing(theta).Scale(r)))

			if oracle.SandOrHazard(p.oracle, pt) {
				continue
			}
			report, err := oracle.PathClear(p.oracle, center, pt, SpiralPathSamples)
			if err != nil {
				continue
			}
			if report.Hazards == 0 && report.Sand <= SpiralMaxSand {
				return pt, true
			}
		}
	}
	return game.Point2D{}, false
}
