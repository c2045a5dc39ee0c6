// Package optimizer fits launch parameters so the simulated ball lands on a target.
//
// Two modes are available: Quick, a deterministic distance-table heuristic with wind
// compensation, and Optimize, a simplified (mu/lambda) evolution strategy scored against
// several jittered wind realizations.
package optimizer

import (
	"context"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// Options tunes the evolution strategy. Zero fields take the package defaults.
type Options struct {
	Population  int
	Budget      int
	WindSamples int
	Threshold   float64
	Decay       float64
}

// DefaultOptions returns the standard settings
func DefaultOptions() Options {
	return Options{
		Population:  DefaultPopulation,
		Budget:      DefaultBudget,
		WindSamples: DefaultWindSamples,
		Threshold:   DefaultThreshold,
		Decay:       DefaultDecay,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Population <= 1 {
		o.Population = d.Population
	}
	if o.Budget <= 0 {
		o.Budget = d.Budget
	}
	if o.WindSamples <= 0 {
		o.WindSamples = d.WindSamples
	}
	if o.Threshold <= 0 {
		o.Threshold = d.Threshold
	}
	if o.Decay <= 0 || o.Decay > 1 {
		o.Decay = d.Decay
	}
	return o
}

// Request describes one shot to fit
type Request struct {
	Ball      game.Point2D
	Target    game.Point2D
	AngleHint float64 // Launch angle in degrees suggested by the planner
	Wind      game.Wind
	Terrain   game.Terrain // Terrain under the ball
}

// Distance returns the ball-to-target distance
func (r Request) Distance() float64 {
	return r.Ball.DistanceTo(r.Target)
}

// Result is the outcome of fitting a shot. Not reaching the threshold is reported
// through Converged, never as an error.
type Result struct {
	Shot        game.ShotParameters
	Fitness     float64
	Predicted   game.SimulationResult // Nominal-wind simulation of Shot
	Generations int
	Evaluations int
	Converged   bool
	Mode        game.OptimizerMode
}

// Optimizer holds the terrain oracle and random source used to fit shots.
// It is not safe for concurrent use because the random source is shared.
type Optimizer struct {
	oracle oracle.Oracle
	rng    Rand
	opts   Options
}

// New creates an optimizer. A nil oracle is replaced by the permissive one and a nil
// rng by a clock-seeded generator.
func New(o oracle.Oracle, rng Rand, opts Options) *Optimizer {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Optimizer{
		oracle: oracle.OrPermissive(o),
		rng:    rng,
		opts:   opts.withDefaults(),
	}
}

// Options returns the effective settings
func (o *Optimizer) Options() Options {
	return o.opts
}

// Solve fits req with the given mode. The returned shot is always Clamped, so it can be
// sent as is, and Predicted and Fitness describe that clamped shot.
func (o *Optimizer) Solve(ctx context.Context, mode game.OptimizerMode, req Request) Result {
	if mode == game.ModeFull {
		res := o.Optimize(ctx, req)
		res.Shot = res.Shot.Clamped()
		return res
	}

	shot := o.Quick(req).Clamped()
	res := Result{Shot: shot, Mode: game.ModeQuick, Converged: true}
	if shot.Power == 0 {
		res.Predicted = game.SimulationResult{Final: req.Ball, Trajectory: []game.Point2D{req.Ball}, Terrain: req.Terrain}
		return res
	}
	res.Predicted = game.SimulateShot(req.Ball, shot, req.Wind, req.Terrain)
	res.Fitness = res.Predicted.Final.DistanceTo(req.Target)
	res.Evaluations = 1
	return res
}
