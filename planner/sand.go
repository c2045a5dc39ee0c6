package planner

import (
	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// planSandEscape blasts the ball out of a bunker with a Lob. The escape heads away
// from the local sand centroid, bent away from a wind that would push the ball back
// in. If the projected landing is unsafe a spiral search finds a nearby safe point.
func (p *Planner) planSandEscape(in Input) Plan {
	centroid, ok := p.SandCentroid(in.Ball)
	if !ok {
		return p.decide("sand", game.ShotLob, in.Hole, "no local sand found")
	}

	toHole := in.Hole.Sub(in.Ball).UnitOr(game.DownfieldDirection)
	escape := in.Ball.Sub(centroid).UnitOr(toHole)

	if in.Wind.Strength > EscapeWindMin {
		toSand, ok := centroid.Sub(in.Ball).Unit()
		windDir, windOK := in.Wind.Dir.Unit()
		if ok && windOK && windDir.Dot(toSand) > 0 {
			blended := game.Vector2D{
				X: escape.X + EscapeWindBlend*windDir.X,
				Y: escape.Y + EscapeWindBlend*windDir.Y,
			}
			escape = blended.UnitOr(escape)
		}
	}

	landing := p.bounds.Clamp(in.Ball.Add(escape.Scale(EscapeDistance)))
	if !oracle.SandOrHazard(p.oracle, landing) {
		return p.decide("sand", game.ShotLob, landing, "escape landing safe")
	}

	// A spiral centered on a hazard can never pass its own path check, so widen the
	// search around the ball before giving up
	if safe, ok := p.SpiralSearch(landing); ok {
		return p.decide("sand", game.ShotLob, safe, "escape landing unsafe, spiral safe point")
	}
	if safe, ok := p.SpiralSearch(in.Ball); ok {
		return p.decide("sand", game.ShotLob, safe, "escape landing unsafe, spiral from ball")
	}
	return p.decide("sand", game.ShotLob, in.Hole, "no safe escape point")
}

// SandCentroid averages the sand points of a grid around ball. It reports false when
// no grid point is sand. Points the oracle cannot classify are skipped.
func (p *Planner) SandCentroid(ball game.Point2D) (game.Point2D, bool) {
	var sumX, sumY float64
	var count int

	for dx := -SandGridRadius; dx <= SandGridRadius; dx += SandGridStep {
		for dy := -SandGridRadius; dy <= SandGridRadius; dy += SandGridStep {
			pt := game.Point2D{X: ball.X + dx, Y: ball.Y + dy}
			sand, err := p.oracle.IsSand(pt)
			if err != nil || !sand {
				continue
			}
			sumX += pt.X
			sumY += pt.Y
			count++
		}
	}

	if count == 0 {
		return game.Point2D{}, false
	}
	return game.Point2D{X: sumX / float64(count), Y: sumY / float64(count)}, true
}
