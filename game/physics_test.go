package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_StraightShotNoDrift(t *testing.T) {
	res := Simulate(Point2D{}, Vector2D{X: 1, Y: 0}, 45, 50, Calm, Vector2D{}, TerrainSmooth)

	assert.Greater(t, res.Final.X, 0.0, "ball should travel downrange")
	assert.Equal(t, 0.0, res.Final.Y, "no lateral drift without wind or spin")
	assert.Equal(t, TerrainSmooth, res.Terrain)
}

func TestSimulate_Deterministic(t *testing.T) {
	start := Point2D{X: 320, Y: 500}
	wind := Wind{Dir: Vector2D{X: 0.6, Y: -0.8}, Strength: 27}
	spin := Vector2D{X: 3, Y: -4}

	a := Simulate(start, Vector2D{X: 0.2, Y: -1}, 33, 110, wind, spin, TerrainFairway)
	b := Simulate(start, Vector2D{X: 0.2, Y: -1}, 33, 110, wind, spin, TerrainFairway)

	assert.Equal(t, a.Final, b.Final)
	assert.Equal(t, a.Trajectory, b.Trajectory)
	assert.Equal(t, a.Steps, b.Steps)
}

func TestSimulate_NoStateLeaksBetweenCalls(t *testing.T) {
	calm := Simulate(Point2D{}, Vector2D{X: 1}, 30, 60, Calm, Vector2D{}, TerrainFairway)

	// A windy shot in between must not change the next calm result
	Simulate(Point2D{}, Vector2D{X: 1}, 30, 60, Wind{Dir: Vector2D{Y: 1}, Strength: 50}, Vector2D{}, TerrainFairway)

	again := Simulate(Point2D{}, Vector2D{X: 1}, 30, 60, Calm, Vector2D{}, TerrainFairway)
	assert.Equal(t, calm.Final, again.Final)
}

func TestSimulate_TerminatesAndStaysFinite(t *testing.T) {
	tests := []struct {
		name    string
		dir     Vector2D
		angle   float64
		power   float64
		wind    Wind
		spin    Vector2D
		terrain Terrain
	}{
		{"max power max angle", Vector2D{X: 1}, MaxLaunchAngle, MaxPower, Calm, Vector2D{}, TerrainFairway},
		{"min power flat", Vector2D{Y: -1}, MinLaunchAngle, MinPower, Calm, Vector2D{}, TerrainSmooth},
		{"zero direction", Vector2D{}, 45, 80, Calm, Vector2D{}, TerrainRough},
		{"max spin strong wind", Vector2D{X: -1, Y: 1}, 60, 150, Wind{Dir: Vector2D{X: 1}, Strength: 50}, Vector2D{X: MaxSpin, Y: -MaxSpin}, TerrainFairway},
		{"sand", Vector2D{X: 1}, 75, 150, Calm, Vector2D{}, TerrainSand},
		{"water stops dead", Vector2D{X: 1}, 10, 100, Calm, Vector2D{}, TerrainWater},
		{"forest", Vector2D{X: 1}, 20, 100, Calm, Vector2D{}, TerrainForest},
		{"NaN power", Vector2D{X: 1}, 45, math.NaN(), Calm, Vector2D{}, TerrainFairway},
		{"Inf wind", Vector2D{X: 1}, 45, 50, Wind{Dir: Vector2D{X: math.Inf(1)}, Strength: math.Inf(1)}, Vector2D{}, TerrainFairway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Simulate(Point2D{X: 100, Y: 100}, tt.dir, tt.angle, tt.power, tt.wind, tt.spin, tt.terrain)
			assert.LessOrEqual(t, res.Steps, MaxSimSteps)
			assert.True(t, res.Final.IsFinite(), "final position must be finite, got %+v", res.Final)
			require.NotEmpty(t, res.Trajectory)
			assert.Equal(t, res.Final, res.Trajectory[len(res.Trajectory)-1])
		})
	}
}

func TestSimulate_ZeroDirectionFallsBackDownfield(t *testing.T) {
	res := Simulate(Point2D{X: 300, Y: 300}, Vector2D{}, 30, 60, Calm, Vector2D{}, TerrainFairway)
	assert.InDelta(t, 300.0, res.Final.X, 1e-9)
	assert.Less(t, res.Final.Y, 300.0, "default direction points up the screen")
}

func TestSimulate_TerrainOrdering(t *testing.T) {
	// Same launch, softer ground should stop the ball sooner
	dist := func(terr Terrain) float64 {
		return Simulate(Point2D{}, Vector2D{X: 1}, 10, 60, Calm, Vector2D{}, terr).Final.X
	}

	assert.Greater(t, dist(TerrainSmooth), dist(TerrainFairway))
	assert.Greater(t, dist(TerrainFairway), dist(TerrainRough))
	assert.Greater(t, dist(TerrainRough), dist(TerrainSand))
}

func TestSimulate_WindPushesBall(t *testing.T) {
	calm := Simulate(Point2D{}, Vector2D{X: 1}, 45, 80, Calm, Vector2D{}, TerrainFairway)
	windy := Simulate(Point2D{}, Vector2D{X: 1}, 45, 80, Wind{Dir: Vector2D{Y: 1}, Strength: 40}, Vector2D{}, TerrainFairway)

	assert.Equal(t, 0.0, calm.Final.Y)
	assert.Greater(t, windy.Final.Y, 0.0, "crosswind should drift the ball toward +Y")
}

func TestSimulate_SpinCurvesBall(t *testing.T) {
	res := Simulate(Point2D{}, Vector2D{X: 1}, 45, 80, Calm, Vector2D{Y: 8}, TerrainFairway)
	assert.NotEqual(t, 0.0, res.Final.Y, "Magnus deflection should move the ball sideways")
}

func TestSimulate_TrajectoryIsCoarse(t *testing.T) {
	res := Simulate(Point2D{}, Vector2D{X: 1}, 45, 100, Calm, Vector2D{}, TerrainFairway)
	// start + one sample per TrajectorySampleEvery steps + final
	maxPoints := 2 + (res.Steps+TrajectorySampleEvery-1)/TrajectorySampleEvery
	assert.LessOrEqual(t, len(res.Trajectory), maxPoints)
	assert.Equal(t, Point2D{}, res.Trajectory[0])
}
