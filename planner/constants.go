package planner

// Planner Constants
// These control shot selection, sand escape and landing-zone search. Distances are
// course units (the engine draws 20 units per map tile).

const (
	// Short Range Thresholds
	// Shots inside these hole distances aim straight at the hole
	PuttRange  = 20.0  // Putt inside this distance
	ChipRange  = 120.0 // Chip inside this distance
	LayupRange = 200.0 // Layup inside this distance, long-range planning beyond

	// Long Range Planning
	MaxShotDistance    = 250.0 // Longest single shot the planner asks for
	VeryStrongWind     = 30.0  // Never commit to a drive at or above this wind
	ModerateWind       = 12.0  // Widen the fan search above this wind
	DirectPathSamples  = 20    // Samples along the straight path to the waypoint
	FanCandidates      = 8     // Fan size in calm conditions
	FanCandidatesWindy = 12    // Fan size above ModerateWind
	FanCandidatesStorm = 16    // Fan size at VeryStrongWind
	FanHalfArcDeg      = 20.0  // Fan covers ±this many degrees around the bearing
	FanMinDistance     = 0.75  // Nearest candidate as a share of the capped distance
	FanMaxDistance     = 1.0

	// Landing Zone Scoring
	HazardScore      = 1e9    // Any hazard candidate is effectively rejected
	SandScorePenalty = 5000.0 // Candidates in sand are heavily penalized
	NearSandPenalty  = 400.0  // Soft penalty when sand lies within NearSandRadius
	NearSandRadius   = 12.0
	NearSandStep     = 6.0 // Spacing of the near-sand survey grid

	// Sand Escape
	SandGridRadius  = 24.0  // Local sand survey covers ±this around the ball
	SandGridStep    = 6.0
	EscapeDistance  = 100.0 // Escape landing is projected this far from the ball
	EscapeWindMin   = 8.0   // Only wind above this strength bends the escape
	EscapeWindBlend = -0.35 // Weight of the wind direction blended into the escape

	// Spiral Search
	SpiralStep        = 12.0  // Ring spacing and arc length between samples
	SpiralMaxRadius   = 200.0 // Give up beyond this radius
	SpiralMinSamples  = 8     // Samples on the smallest rings
	SpiralPathSamples = 12    // Samples along the path from the search center
	SpiralMaxSand     = 1     // Sand samples tolerated on that path
)

// DetourAnglesDeg are the deflections tried, in order, when the path to a target is blocked.
// Positive angles turn counter-clockwise in screen space (toward the ball's left when
// aiming up the course).
var DetourAnglesDeg = []float64{15, 30, 45, 60, -15, -30, -45, -60}
