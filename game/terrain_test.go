package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainTables(t *testing.T) {
	tests := []struct {
		terrain Terrain
		damping float64
		bounce  float64
		penalty float64
		hazard  bool
	}{
		{TerrainFairway, 0.96, 0.60, 0, false},
		{TerrainRough, 0.80, 0.55, 20, false},
		{TerrainSand, 0.45, 0.05, 50, false},
		{TerrainSmooth, 0.98, 0.75, -10, false},
		{TerrainWater, 0.0, 0.0, 1000, true},
		{TerrainForest, 0.40, 0.0, 1000, true},
	}

	require.Len(t, tests, len(AllTerrains), "every terrain needs a table row")
	for _, tt := range tests {
		t.Run(tt.terrain.String(), func(t *testing.T) {
			assert.Equal(t, tt.damping, tt.terrain.Damping())
			assert.Equal(t, tt.bounce, tt.terrain.Bounce())
			assert.Equal(t, tt.penalty, tt.terrain.LandingPenalty())
			assert.Equal(t, tt.hazard, tt.terrain.IsHazard())

			parsed, err := ParseTerrain(tt.terrain.String())
			require.NoError(t, err)
			assert.Equal(t, tt.terrain, parsed)
		})
	}

	_, err := ParseTerrain("lava")
	assert.Error(t, err)
}

func TestShotCategoryTable(t *testing.T) {
	tests := []struct {
		category ShotCategory
		angle    float64
		power    PowerRange
	}{
		{ShotDrive, 38, PowerRange{80, 150}},
		{ShotLayup, 35, PowerRange{40, 80}},
		{ShotChip, 30, PowerRange{20, 50}},
		{ShotLob, 75, PowerRange{100, 150}},
		{ShotPutt, 5, PowerRange{5, 30}},
	}

	require.Len(t, tests, len(AllCategories))
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.angle, tt.category.AngleHint())
			assert.Equal(t, tt.power, tt.category.PowerRange())
		})
	}
}

func TestShotCategoryText(t *testing.T) {
	for _, c := range AllCategories {
		t.Run(c.String(), func(t *testing.T) {
			text, err := c.MarshalText()
			require.NoError(t, err)

			var got ShotCategory
			require.NoError(t, got.UnmarshalText(text))
			assert.Equal(t, c, got)
		})
	}

	var c ShotCategory
	assert.Error(t, c.UnmarshalText([]byte("albatross")))
}

func TestShotReportJSON(t *testing.T) {
	report := ShotReport{ID: "a", Stroke: 2, Category: ShotLob, Mode: ModeFull, Terrain: "sand"}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"lob"`)

	var decoded ShotReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ShotLob, decoded.Category)
	assert.Equal(t, report.Stroke, decoded.Stroke)
	assert.Equal(t, ModeFull, decoded.Mode)
}

func TestShotParametersClamped(t *testing.T) {
	s := ShotParameters{
		Direction: Vector2D{X: 3, Y: 4},
		Angle:     90,
		Power:     400,
		Spin:      Vector2D{X: -25, Y: math.NaN()},
	}.Clamped()

	assert.InDelta(t, 0.6, s.Direction.X, 1e-12)
	assert.InDelta(t, 0.8, s.Direction.Y, 1e-12)
	assert.Equal(t, MaxLaunchAngle, s.Angle)
	assert.Equal(t, MaxPower, s.Power)
	assert.Equal(t, Vector2D{X: -MaxSpin, Y: 0}, s.Spin)

	low := ShotParameters{Angle: -5, Power: 1}.Clamped()
	assert.Equal(t, DownfieldDirection, low.Direction)
	assert.Equal(t, MinLaunchAngle, low.Angle)
	assert.Equal(t, MinPower, low.Power)

	assert.Equal(t, 0.0, NoOpShot().Clamped().Power, "no-op shot keeps zero power")
}

func TestBoundsClamp(t *testing.T) {
	b := DefaultBounds()
	assert.Equal(t, Point2D{X: 20, Y: 620}, b.Clamp(Point2D{X: -50, Y: 9000}))
	assert.Equal(t, Point2D{X: 300, Y: 300}, b.Clamp(Point2D{X: 300, Y: 300}))
	assert.True(t, b.Contains(Point2D{X: 20, Y: 20}))
	assert.False(t, b.Contains(Point2D{X: 19.9, Y: 20}))
}

func TestVectorHelpers(t *testing.T) {
	v := Vector2D{X: 1, Y: 0}.Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.InDelta(t, 1.0, v.Y, 1e-12)

	_, ok := Vector2D{X: 1e-9}.Unit()
	assert.False(t, ok)

	assert.InDelta(t, math.Pi/2, AngleDifference(0, 3*math.Pi/2), 1e-12)
	assert.Equal(t, 0.0, NormalizeAngleSigned(math.NaN()))
	assert.Equal(t, Point2D{X: 5, Y: 10}, Point2D{}.Lerp(Point2D{X: 10, Y: 20}, 0.5))
}

func TestGolfErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("reading state: %w", NewRetryableError(TRANSIENT_NO_DATA, "short read"))

	assert.True(t, errors.Is(wrapped, ErrNoData))
	assert.False(t, errors.Is(wrapped, ErrChannelUnavailable))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(ErrDegenerateGeometry))

	cause := errors.New("boom")
	err := WrapError(TERRAIN_QUERY_FAILED, "raster lookup", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[TERRAIN_QUERY_FAILED] raster lookup: boom", err.Error())
}
