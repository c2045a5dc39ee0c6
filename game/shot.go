package game

import "time"

// Launch parameter limits
const (
	MinLaunchAngle = 0.0
	MaxLaunchAngle = 75.0
	MinPower       = 5.0
	MaxPower       = 150.0 // Max drag distance in the engine
	MaxSpin        = 10.0
)

// ShotParameters is a complete launch command for the engine
type ShotParameters struct {
	Direction Vector2D `json:"direction"` // Unit aim direction
	Angle     float64  `json:"angle"`     // Launch angle in degrees
	Power     float64  `json:"power"`
	Spin      Vector2D `json:"spin"`
}

// NoOpShot is returned when ball and target coincide. Zero power makes the
// engine ignore the stroke.
func NoOpShot() ShotParameters {
	return ShotParameters{Direction: DownfieldDirection, Angle: 45.0, Power: 0}
}

// Clamped returns a copy with a unit direction and every scalar inside its legal range.
// A zero power is preserved so no-op shots stay no-ops.
func (s ShotParameters) Clamped() ShotParameters {
	out := s
	out.Direction = s.Direction.UnitOr(DownfieldDirection)
	out.Angle = Clamp(finiteOr(s.Angle, 45.0), MinLaunchAngle, MaxLaunchAngle)
	if s.Power != 0 {
		out.Power = Clamp(finiteOr(s.Power, MinPower), MinPower, MaxPower)
	}
	out.Spin = Vector2D{
		X: Clamp(finiteOr(s.Spin.X, 0), -MaxSpin, MaxSpin),
		Y: Clamp(finiteOr(s.Spin.Y, 0), -MaxSpin, MaxSpin),
	}
	return out
}

// Wind is the engine's current wind: a unit direction and an applied strength
type Wind struct {
	Dir      Vector2D `json:"dir"`
	Strength float64  `json:"strength"`
}

// Calm is the zero wind
var Calm = Wind{}

// GameState is one decoded state snapshot from the engine
type GameState struct {
	Ball    Point2D
	BallZ   float64
	Hole    Point2D
	Wind    Wind
	Strokes int32
	Stopped bool
	Won     bool
}

// DistanceToHole returns the planar ball-to-hole distance
func (s GameState) DistanceToHole() float64 {
	return s.Ball.DistanceTo(s.Hole)
}

// OptimizerMode selects how launch parameters are fitted to a target
type OptimizerMode string

const (
	ModeQuick OptimizerMode = "quick"
	ModeFull  OptimizerMode = "full"
)

// ShotReport describes one planned stroke for diagnostics viewers
type ShotReport struct {
	ID         string         `json:"id"`
	Time       time.Time      `json:"time"`
	Stroke     int32          `json:"stroke"`
	Ball       Point2D        `json:"ball"`
	Hole       Point2D        `json:"hole"`
	Wind       Wind           `json:"wind"`
	Terrain    string         `json:"terrain"`
	Category   ShotCategory   `json:"category"`
	Target     Point2D        `json:"target"`
	Detour     float64        `json:"detour_deg"`
	Mode       OptimizerMode  `json:"mode"`
	Shot       ShotParameters `json:"shot"`
	Predicted  Point2D        `json:"predicted"`
	Trajectory []Point2D      `json:"trajectory"`
	Fitness    float64        `json:"fitness"`
}
