package optimizer

import (
	"math"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// QuickPower returns the table launch angle and power for a shot of the given length.
// Within one bucket power grows linearly with distance.
func QuickPower(distance float64) (angle, power float64) {
	for _, b := range quickBuckets {
		if distance < b.maxDistance {
			return b.angle, distance * b.multiplier
		}
	}
	return driveAngle, math.Min(distance*driveMultiplier, game.MaxPower)
}

// Quick picks launch parameters from the distance table and re-aims against wind drift.
// In sand the ball is blasted out at maximum power and angle toward req.Target, and
// drift compensation is always attempted. Spin is always zero. The table can ask for
// less than game.MinPower near the hole; Solve raises such taps to the minimum.
func (o *Optimizer) Quick(req Request) game.ShotParameters {
	distance := req.Distance()
	if distance < degenerateDistance {
		return game.NoOpShot()
	}
	dir := req.Target.Sub(req.Ball).UnitOr(game.DownfieldDirection)

	sand := req.Terrain == game.TerrainSand
	shot := game.ShotParameters{Direction: dir}
	fraction := DriftFraction
	if sand {
		shot.Angle, shot.Power = SandAngle, SandPower
		fraction = SandDriftFraction
	} else {
		shot.Angle, shot.Power = QuickPower(distance)
	}

	if !sand && math.Abs(req.Wind.Strength) <= WindThreshold {
		return shot
	}

	if compensated, ok := o.compensate(req, shot, distance, fraction, sand); ok {
		shot.Direction = compensated
	}
	return shot
}

// compensate measures the wind drift of shot and returns a direction aimed against it.
// It reports false when the drift is negligible or the compensated path is unsafe.
func (o *Optimizer) compensate(req Request, shot game.ShotParameters, distance, fraction float64, sand bool) (game.Vector2D, bool) {
	test := game.SimulateShot(req.Ball, shot, req.Wind, req.Terrain)
	drift := test.Final.Sub(req.Target)
	if !sand && drift.Len() <= MinDrift {
		return game.Vector2D{}, false
	}

	drift = drift.Scale(fraction)
	if limit := distance * MaxCompensation; drift.Len() > limit {
		drift = drift.Scale(limit / drift.Len())
	}

	aim := req.Target.Add(drift.Scale(-1))
	dir, ok := aim.Sub(req.Ball).Unit()
	if !ok {
		return game.Vector2D{}, false
	}

	compensated := shot
	compensated.Direction = dir
	if !o.safeAlong(req, compensated, aim) {
		return game.Vector2D{}, false
	}
	return dir, true
}

// safeAlong re-simulates the shot from points along ball→aim and reports whether every
// landing avoids sand and hazards. Points the oracle cannot classify are skipped.
func (o *Optimizer) safeAlong(req Request, shot game.ShotParameters, aim game.Point2D) bool {
	for _, f := range SafetySampleFractions {
		from := req.Ball.Lerp(aim, f)
		res := game.Simulate(from, shot.Direction, shot.Angle, shot.Power*(1-f), req.Wind, game.Vector2D{}, req.Terrain)

		terrain, err := oracle.Classify(o.oracle, res.Final)
		if err != nil {
			continue
		}
		if terrain == game.TerrainSand || terrain.IsHazard() {
			return false
		}
	}
	return true
}
