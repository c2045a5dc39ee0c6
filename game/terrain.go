package game

import "fmt"

// Terrain classifies the ground under a point. The set is closed; every lookup
// below switches over all values so adding a terrain forces every table to be updated.
type Terrain int

const (
	TerrainFairway Terrain = iota
	TerrainRough
	TerrainSand
	TerrainSmooth
	TerrainWater
	TerrainForest
)

// AllTerrains lists every terrain in declaration order
var AllTerrains = []Terrain{
	TerrainFairway,
	TerrainRough,
	TerrainSand,
	TerrainSmooth,
	TerrainWater,
	TerrainForest,
}

// String returns the lowercase terrain name used in logs and config
func (t Terrain) String() string {
	switch t {
	case TerrainFairway:
		return "fairway"
	case TerrainRough:
		return "rough"
	case TerrainSand:
		return "sand"
	case TerrainSmooth:
		return "smooth"
	case TerrainWater:
		return "water"
	case TerrainForest:
		return "forest"
	}
	return fmt.Sprintf("terrain(%d)", int(t))
}

// ParseTerrain converts a terrain name back into a Terrain
func ParseTerrain(name string) (Terrain, error) {
	for _, t := range AllTerrains {
		if t.String() == name {
			return t, nil
		}
	}
	return TerrainFairway, fmt.Errorf("unknown terrain %q", name)
}

// IsHazard reports whether the terrain is hazard-class (ball is lost or reset)
func (t Terrain) IsHazard() bool {
	switch t {
	case TerrainWater, TerrainForest:
		return true
	case TerrainFairway, TerrainRough, TerrainSand, TerrainSmooth:
		return false
	}
	return false
}

// Damping is the horizontal velocity multiplier applied on every grounded step
func (t Terrain) Damping() float64 {
	switch t {
	case TerrainFairway:
		return 0.96
	case TerrainRough:
		return 0.80
	case TerrainSand:
		return 0.45
	case TerrainSmooth:
		return 0.98
	case TerrainWater:
		return 0.0
	case TerrainForest:
		return 0.40
	}
	return 0.96
}

// Bounce is the fraction of vertical speed kept when the ball rebounds
func (t Terrain) Bounce() float64 {
	switch t {
	case TerrainFairway:
		return 0.60
	case TerrainRough:
		return 0.55
	case TerrainSand:
		return 0.05
	case TerrainSmooth:
		return 0.75
	case TerrainWater, TerrainForest:
		return 0.0
	}
	return 0.60
}

// LandingPenalty is added to the distance-to-hole when scoring a landing zone.
// Negative values are bonuses.
func (t Terrain) LandingPenalty() float64 {
	switch t {
	case TerrainFairway:
		return 0
	case TerrainSmooth:
		return -10
	case TerrainRough:
		return 20
	case TerrainSand:
		return 50
	case TerrainWater, TerrainForest:
		return 1000
	}
	return 0
}
