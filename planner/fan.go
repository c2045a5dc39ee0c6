package planner

import (
	"math"
	"sort"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// LandingCandidate is a scored landing zone. Lower scores are better.
type LandingCandidate struct {
	Position game.Point2D
	Score    float64
	Terrain  game.Terrain
	Known    bool // False when the oracle could not classify Position
}

// Safe reports whether the candidate is a known non-sand, non-hazard point
func (c LandingCandidate) Safe() bool {
	return c.Known && c.Terrain != game.TerrainSand && !c.Terrain.IsHazard()
}

// FanSize returns how many fan candidates to generate for a wind strength
func FanSize(windStrength float64) int {
	switch {
	case windStrength >= VeryStrongWind:
		return FanCandidatesStorm
	case windStrength > ModerateWind:
		return FanCandidatesWindy
	default:
		return FanCandidates
	}
}

// FanSearch spreads candidates over ±FanHalfArcDeg around the ball→hole bearing at
// graduated shares of the capped shot distance, scores each and returns them sorted
// ascending by score
func (p *Planner) FanSearch(ball, hole game.Point2D, wind game.Wind) []LandingCandidate {
	n := FanSize(wind.Strength)
	reach := math.Min(ball.DistanceTo(hole), MaxShotDistance)
	if reach <= 0 {
		return nil
	}
	bearing := hole.Sub(ball).Bearing()
	halfArc := FanHalfArcDeg * math.Pi / 180

	candidates := make([]LandingCandidate, 0, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		angle := bearing - halfArc + 2*halfArc*t
		share := FanMinDistance + (FanMaxDistance-FanMinDistance)*t

		pt := p.bounds.Clamp(ball.Add(game.FromBearing(angle).Scale(reach * share)))
		candidates = append(candidates, p.scoreCandidate(pt, hole))
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score < candidates[b].Score
	})
	return candidates
}

// scoreCandidate scores one landing point. Hazards and unclassifiable points get
// HazardScore; sand gets SandScorePenalty on top of the distance; anything else is
// ScoreLanding plus NearSandPenalty when sand is close by.
func (p *Planner) scoreCandidate(pt, hole game.Point2D) LandingCandidate {
	terrain, err := oracle.Classify(p.oracle, pt)
	if err != nil {
		return LandingCandidate{Position: pt, Score: HazardScore, Terrain: terrain}
	}

	c := LandingCandidate{Position: pt, Terrain: terrain, Known: true}
	switch {
	case terrain.IsHazard():
		c.Score = HazardScore
	case terrain == game.TerrainSand:
		c.Score = pt.DistanceTo(hole) + SandScorePenalty
	default:
		c.Score = ScoreLanding(pt, hole, terrain)
		if p.sandNearby(pt) {
			c.Score += NearSandPenalty
		}
	}
	return c
}

// sandNearby surveys a grid of NearSandStep spacing within ±NearSandRadius of pt
func (p *Planner) sandNearby(pt game.Point2D) bool {
	for dx := -NearSandRadius; dx <= NearSandRadius; dx += NearSandStep {
		for dy := -NearSandRadius; dy <= NearSandRadius; dy += NearSandStep {
			if dx == 0 && dy == 0 {
				continue
			}
			sand, err := p.oracle.IsSand(game.Point2D{X: pt.X + dx, Y: pt.Y + dy})
			if err == nil && sand {
				return true
			}
		}
	}
	return false
}

// ScoreLanding scores a landing point as distance to the hole plus the terrain penalty
func ScoreLanding(pt, hole game.Point2D, terrain game.Terrain) float64 {
	return pt.DistanceTo(hole) + terrain.LandingPenalty()
}
