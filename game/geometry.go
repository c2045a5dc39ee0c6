package game

import (
	"math"
)

// Point2D represents a position on the course (world units, y grows downward like the screen)
type Point2D struct {
	X, Y float64
}

// Vector2D represents a direction or displacement on the course
type Vector2D struct {
	X, Y float64
}

// DownfieldDirection is the fallback aim used whenever a direction cannot be derived
// (zero-length input). It points "up" the screen, matching the engine's drag default.
var DownfieldDirection = Vector2D{X: 0, Y: -1}

// Add returns p displaced by v
func (p Point2D) Add(v Vector2D) Point2D {
	return Point2D{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p
func (p Point2D) Sub(q Point2D) Vector2D {
	return Vector2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the Euclidean distance between two points
func (p Point2D) DistanceTo(q Point2D) float64 {
	return Distance(p.X, p.Y, q.X, q.Y)
}

// Lerp returns the point a fraction t of the way from p to q
func (p Point2D) Lerp(q Point2D, t float64) Point2D {
	return Point2D{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point2D) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Len returns the vector magnitude
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Scale multiplies both components by k
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and w
func (v Vector2D) Dot(w Vector2D) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Unit returns v normalized to length 1. Near-zero vectors return
// (Vector2D{}, false) so callers can pick their own fallback.
func (v Vector2D) Unit() (Vector2D, bool) {
	l := v.Len()
	if l < 1e-6 || !isFinite(l) {
		return Vector2D{}, false
	}
	return Vector2D{X: v.X / l, Y: v.Y / l}, true
}

// UnitOr returns v normalized, or fallback when v is degenerate
func (v Vector2D) UnitOr(fallback Vector2D) Vector2D {
	if u, ok := v.Unit(); ok {
		return u
	}
	return fallback
}

// Rotate rotates v counter-clockwise (in math orientation) by angle radians
func (v Vector2D) Rotate(angle float64) Vector2D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vector2D{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Bearing returns the atan2 angle of v in radians
func (v Vector2D) Bearing() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromBearing builds a unit vector from an angle in radians
func FromBearing(angle float64) Vector2D {
	return Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Distance calculates the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// NormalizeAngleSigned normalizes an angle to the range [-π, π].
func NormalizeAngleSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleDifference calculates the smallest angle difference between two angles
func AngleDifference(a1, a2 float64) float64 {
	diff := NormalizeAngleSigned(a1 - a2)
	return math.Abs(diff)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteOr replaces NaN/Inf with fallback
func finiteOr(v, fallback float64) float64 {
	if isFinite(v) {
		return v
	}
	return fallback
}

// Bounds describes the playable course rectangle. Targets are kept Margin units
// away from every edge.
type Bounds struct {
	Width  float64
	Height float64
	Margin float64
}

// Course dimensions of the engine's 32x32 tile map at 20 units per tile
const (
	CourseWidth  = 640
	CourseHeight = 640
	CourseMargin = 20
)

// DefaultBounds returns the engine's standard course rectangle
func DefaultBounds() Bounds {
	return Bounds{Width: CourseWidth, Height: CourseHeight, Margin: CourseMargin}
}

// Clamp pulls p inside the playable rectangle
func (b Bounds) Clamp(p Point2D) Point2D {
	return Point2D{
		X: Clamp(p.X, b.Margin, b.Width-b.Margin),
		Y: Clamp(p.Y, b.Margin, b.Height-b.Margin),
	}
}

// Contains reports whether p lies inside the playable rectangle
func (b Bounds) Contains(p Point2D) bool {
	return p.X >= b.Margin && p.X <= b.Width-b.Margin &&
		p.Y >= b.Margin && p.Y <= b.Height-b.Margin
}
