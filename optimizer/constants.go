package optimizer

// Optimizer tuning constants
// The quick heuristic table and the evolution strategy settings were tuned against the
// engine's integrator. Changing them shifts where shots land, so tests pin the important ones.

const (
	// Evolution Strategy Defaults
	DefaultPopulation  = 20   // Candidates per generation
	DefaultBudget      = 200  // Total candidate evaluations (10 generations)
	DefaultWindSamples = 5    // Jittered wind realizations per candidate
	DefaultThreshold   = 5.0  // Stop once the best fitness drops below this
	DefaultDecay       = 0.95 // Step-size shrink per generation

	// Initial step sizes for [aim rad, launch deg, power, spin x, spin y]
	SigmaAim    = 0.3
	SigmaLaunch = 10.0
	SigmaPower  = 20.0
	SigmaSpin   = 2.0

	// PowerGuessDivisor turns target distance into the initial mean power
	PowerGuessDivisor = 8.0

	// Fitness Weights
	// Variance is weighted so an erratic shot loses to a slightly less accurate steady one;
	// hazard landings dominate any accuracy gain.
	VarianceWeight = 6.0
	SandWeight     = 2000.0
	WaterWeight    = 5000.0

	// Wind Jitter
	// Per-axis direction noise is WindDirJitter * strength / WindDirJitterRef,
	// strength noise is WindStrengthJitter * strength.
	WindDirJitter      = 0.1
	WindDirJitterRef   = 50.0
	WindStrengthJitter = 0.15

	// Quick Mode Compensation
	WindThreshold     = 0.1 // Wind strength above which quick mode compensates drift
	MinDrift          = 5.0 // Ignore smaller drifts outside sand
	DriftFraction     = 0.5 // Share of the measured drift subtracted from the target
	SandDriftFraction = 1.0
	MaxCompensation   = 0.5 // Compensation never exceeds this share of the shot distance

	// Sand Escape
	SandPower = 150.0
	SandAngle = 75.0

	// degenerateDistance is the ball-to-target distance treated as "already there"
	degenerateDistance = 1e-6
)

// SafetySampleFractions are the points along a compensated path that are re-simulated
// before compensation is accepted
var SafetySampleFractions = []float64{0.2, 0.4, 0.6, 0.8}

// powerBucket is one row of the quick-mode distance table
type powerBucket struct {
	maxDistance float64 // Exclusive upper bound
	angle       float64
	multiplier  float64
}

// quickBuckets maps ball-to-target distance to launch angle and a power multiplier.
// Multipliers shrink with distance because rolling carries long shots further.
var quickBuckets = []powerBucket{
	{10, 2, 0.3},
	{20, 5, 0.35},
	{40, 10, 0.45},
	{70, 18, 0.6},
	{120, 28, 0.85},
	{200, 35, 0.75},
}

// Farthest bucket, power capped at MaxPower
const (
	driveAngle      = 38.0
	driveMultiplier = 0.55
)
