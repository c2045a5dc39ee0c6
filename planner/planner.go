// Package planner picks the strategic shot: which category to play and where to land.
//
// Plans are chosen by strict priority. A ball in sand is always escaped with a Lob.
// Short shots go straight at the hole. Long shots take a direct drive to a capped
// waypoint when the path is clear and the wind allows, otherwise the best landing
// zone from a fan search. Terrain questions go to an oracle; when it cannot answer,
// the dependent check is skipped or the planner aims at the hole.
package planner

import (
	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// Input is everything the planner needs for one stroke
type Input struct {
	Ball    game.Point2D
	Hole    game.Point2D
	Terrain game.Terrain // Terrain believed to be under the ball
	Wind    game.Wind
}

// Plan is a strategic decision
type Plan struct {
	Category game.ShotCategory
	Target   game.Point2D
	Reason   string
}

// AngleHint returns the launch angle suggested for the plan's category
func (p Plan) AngleHint() float64 {
	return p.Category.AngleHint()
}

// Planner chooses shot categories and aim points
type Planner struct {
	oracle oracle.Oracle
	bounds game.Bounds
}

// New creates a planner. A nil oracle is replaced by the permissive one.
func New(o oracle.Oracle, bounds game.Bounds) *Planner {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = game.DefaultBounds()
	}
	return &Planner{oracle: oracle.OrPermissive(o), bounds: bounds}
}

// Plan decides the category and target for in
func (p *Planner) Plan(in Input) Plan {
	if p.inSand(in) {
		return p.planSandEscape(in)
	}

	distance := in.Ball.DistanceTo(in.Hole)
	switch {
	case distance < PuttRange:
		return p.decide("short", game.ShotPutt, in.Hole, "putt range")
	case distance < ChipRange:
		return p.decide("short", game.ShotChip, in.Hole, "chip range")
	case distance < LayupRange:
		return p.decide("short", game.ShotLayup, in.Hole, "layup range")
	}

	return p.planLongRange(in, distance)
}

// inSand reports whether the ball is in sand by flag or by oracle. An oracle failure
// leaves the decision to the flag.
func (p *Planner) inSand(in Input) bool {
	if in.Terrain == game.TerrainSand {
		return true
	}
	sand, err := p.oracle.IsSand(in.Ball)
	return err == nil && sand
}

// planLongRange handles shots beyond LayupRange
func (p *Planner) planLongRange(in Input, distance float64) Plan {
	waypoint := p.Waypoint(in.Ball, in.Hole)

	report, err := oracle.PathClear(p.oracle, in.Ball, waypoint, DirectPathSamples)
	if err == nil && report.Clear && in.Wind.Strength < VeryStrongWind {
		return p.decide("long", game.ShotDrive, waypoint, "direct path clear")
	}

	candidates := p.FanSearch(in.Ball, in.Hole, in.Wind)
	if len(candidates) == 0 {
		return p.decide("long", game.ShotDrive, waypoint, "no fan candidates")
	}

	best := candidates[0]
	if !best.Safe() {
		if safe, ok := p.SpiralSearch(in.Ball); ok {
			return p.decide("long", game.ShotLayup, safe, "fan blocked, spiral safe point")
		}
		return p.decide("long", game.ShotDrive, waypoint, "fan blocked, no safe point")
	}
	return p.decide("long", game.ShotLayup, best.Position, "best fan candidate")
}

// Waypoint returns the point at most MaxShotDistance along the ball→hole line,
// clamped to the course
func (p *Planner) Waypoint(ball, hole game.Point2D) game.Point2D {
	distance := ball.DistanceTo(hole)
	if distance <= MaxShotDistance {
		return hole
	}
	dir := hole.Sub(ball).UnitOr(game.DownfieldDirection)
	return p.bounds.Clamp(ball.Add(dir.Scale(MaxShotDistance)))
}

func (p *Planner) decide(stage string, category game.ShotCategory, target game.Point2D, reason string) Plan {
	logDecision(stage, category, target, reason)
	return Plan{Category: category, Target: target, Reason: reason}
}
