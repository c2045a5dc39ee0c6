package game

import (
	"math"
)

// Ball flight constants, matching the engine's integrator
const (
	Gravity          = 800.0 // Units per second squared
	TimeStep         = 0.016 // Seconds per integration step (60 FPS)
	LaunchScale      = 4.0   // Power units to initial speed
	ZScale           = 0.6   // Vertical launch speed factor
	AirDrag          = 1.6   // Horizontal drag coefficient while airborne
	StopSpeed        = 2.0   // Horizontal speed under which a grounded ball stops
	MaxSimSteps      = 1000  // Hard cap; ~16 simulated seconds
	WindSmoothness   = 0.25  // Exponential smoothing factor for wind strength
	GroundWindFactor = 0.08  // Share of wind that still pushes a rolling ball
	MagnusCoef       = 0.0012
	MagnusMax        = 10.0 // Per-step clamp on Magnus deflection
	SpinAirDamp      = 0.996
	SpinGroundDamp   = 0.985
	AirborneHeight   = 1.0  // Ball is airborne above this height
	BounceMinSpeed   = 10.0 // Impact speed needed to rebound
	BounceEpsilon    = 0.01 // Bounce coefficients at or below this never rebound
	RestHeight       = 0.1
	RestVerticalVel  = 0.2

	// TrajectorySampleEvery controls the coarseness of the recorded polyline
	TrajectorySampleEvery = 5
)

// TrajectoryState is the ball's state during one simulation. It lives only for the
// duration of a Simulate call; nothing carries over to the next call.
type TrajectoryState struct {
	X, Y, Z    float64
	VX, VY, VZ float64
	Spin       Vector2D
	WindSmooth float64
	Terrain    Terrain
}

// SimulationResult is the outcome of one simulated shot
type SimulationResult struct {
	Final      Point2D
	Trajectory []Point2D
	Terrain    Terrain
	Steps      int
}

// SimulateShot runs Simulate with the fields of a ShotParameters
func SimulateShot(start Point2D, shot ShotParameters, wind Wind, terrain Terrain) SimulationResult {
	return Simulate(start, shot.Direction, shot.Angle, shot.Power, wind, shot.Spin, terrain)
}

// Simulate integrates a shot from start until the ball comes to rest or the step cap
// is reached. The whole flight uses a single terrain label. The function is pure:
// identical inputs always produce identical results.
func Simulate(start Point2D, dir Vector2D, angleDeg, power float64, wind Wind, spin Vector2D, terrain Terrain) SimulationResult {
	start = Point2D{X: finiteOr(start.X, 0), Y: finiteOr(start.Y, 0)}
	dir = dir.UnitOr(DownfieldDirection)
	angleRad := finiteOr(angleDeg, 0) * math.Pi / 180
	power = finiteOr(power, 0)
	windDir := Vector2D{X: finiteOr(wind.Dir.X, 0), Y: finiteOr(wind.Dir.Y, 0)}
	windStrength := finiteOr(wind.Strength, 0)

	launch := power * LaunchScale
	horizontal := launch * math.Cos(angleRad)

	st := TrajectoryState{
		X:       start.X,
		Y:       start.Y,
		VX:      horizontal * dir.X,
		VY:      horizontal * dir.Y,
		VZ:      launch * math.Sin(angleRad) * ZScale,
		Spin:    Vector2D{X: finiteOr(spin.X, 0), Y: finiteOr(spin.Y, 0)},
		Terrain: terrain,
	}
	damping := terrain.Damping()
	bounce := terrain.Bounce()

	trajectory := make([]Point2D, 0, MaxSimSteps/TrajectorySampleEvery+2)
	trajectory = append(trajectory, start)

	steps := 0
	for step := 0; step < MaxSimSteps; step++ {
		steps = step + 1

		st.VZ -= Gravity * TimeStep
		st.X += st.VX * TimeStep
		st.Y += st.VY * TimeStep
		st.Z += st.VZ * TimeStep

		airborne := st.Z > AirborneHeight

		// Smoothing runs every step regardless of flight phase
		st.WindSmooth += WindSmoothness * (windStrength - st.WindSmooth)

		if airborne {
			st.VX += windDir.X * st.WindSmooth * TimeStep
			st.VY += windDir.Y * st.WindSmooth * TimeStep

			magnusX := Clamp(-st.Spin.Y*st.VY*MagnusCoef, -MagnusMax, MagnusMax)
			magnusY := Clamp(st.Spin.Y*st.VX*MagnusCoef, -MagnusMax, MagnusMax)
			st.VX += magnusX
			st.VY += magnusY

			st.VX -= st.VX * AirDrag * TimeStep
			st.VY -= st.VY * AirDrag * TimeStep

			st.Spin = st.Spin.Scale(SpinAirDamp)
		} else {
			st.VX += windDir.X * st.WindSmooth * GroundWindFactor * TimeStep
			st.VY += windDir.Y * st.WindSmooth * GroundWindFactor * TimeStep

			st.Spin = st.Spin.Scale(SpinGroundDamp)
		}

		if st.Z <= 0 {
			st.Z = 0
			if math.Abs(st.VZ) > BounceMinSpeed && bounce > BounceEpsilon {
				st.VZ = -st.VZ * bounce
			} else {
				st.VZ = 0
			}
			// Rolling deceleration
			st.VX *= damping
			st.VY *= damping
		}

		if step%TrajectorySampleEvery == 0 {
			trajectory = append(trajectory, Point2D{X: st.X, Y: st.Y})
		}

		speed := math.Sqrt(st.VX*st.VX + st.VY*st.VY)
		if speed < StopSpeed && st.Z < RestHeight && math.Abs(st.VZ) < RestVerticalVel {
			break
		}
	}

	final := Point2D{X: st.X, Y: st.Y}
	trajectory = append(trajectory, final)

	return SimulationResult{
		Final:      final,
		Trajectory: trajectory,
		Terrain:    terrain,
		Steps:      steps,
	}
}
