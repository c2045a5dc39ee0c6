package optimizer

import (
	"context"
	"math"
	"sort"

	"github.com/lab1702/golf-ai/game"
)

// Parameter vector layout
const (
	dimAim    = iota // Aim bearing in radians
	dimLaunch        // Launch angle in degrees
	dimPower
	dimSpinX
	dimSpinY
	dims
)

// Vector is a point in the search space: [aim rad, launch deg, power, spin x, spin y]
type Vector [dims]float64

// Clamp limits every dimension except the aim bearing to its legal range
func (v Vector) Clamp() Vector {
	v[dimLaunch] = game.Clamp(v[dimLaunch], game.MinLaunchAngle, game.MaxLaunchAngle)
	v[dimPower] = game.Clamp(v[dimPower], game.MinPower, game.MaxPower)
	v[dimSpinX] = game.Clamp(v[dimSpinX], -game.MaxSpin, game.MaxSpin)
	v[dimSpinY] = game.Clamp(v[dimSpinY], -game.MaxSpin, game.MaxSpin)
	return v
}

// Shot converts v to launch parameters
func (v Vector) Shot() game.ShotParameters {
	return game.ShotParameters{
		Direction: game.FromBearing(v[dimAim]),
		Angle:     v[dimLaunch],
		Power:     v[dimPower],
		Spin:      game.Vector2D{X: v[dimSpinX], Y: v[dimSpinY]},
	}
}

// Candidate is one evaluated parameter vector. Lower fitness is better.
type Candidate struct {
	Params  Vector
	Fitness float64
}

// Distribution is the search distribution the population is drawn from
type Distribution struct {
	Mean  Vector
	Sigma Vector
}

// InitialDistribution centers the search on the straight-line bearing, the angle hint,
// and a distance-proportional power guess
func InitialDistribution(req Request) Distribution {
	hint := req.AngleHint
	if math.IsNaN(hint) || math.IsInf(hint, 0) {
		hint = 45.0
	}
	return Distribution{
		Mean: Vector{
			req.Target.Sub(req.Ball).Bearing(),
			game.Clamp(hint, game.MinLaunchAngle, game.MaxLaunchAngle),
			math.Min(req.Distance()/PowerGuessDivisor, game.MaxPower),
			0,
			0,
		},
		Sigma: Vector{SigmaAim, SigmaLaunch, SigmaPower, SigmaSpin, SigmaSpin},
	}
}

// sample draws one clamped candidate vector
func (d Distribution) sample(rng Rand) Vector {
	var v Vector
	for i := range v {
		v[i] = d.Mean[i] + d.Sigma[i]*rng.NormFloat64()
	}
	return v.Clamp()
}

// recenter moves the mean to the average of the elite and shrinks every step size
func (d *Distribution) recenter(elite []Candidate, decay float64) {
	var mean Vector
	for _, c := range elite {
		for i := range mean {
			mean[i] += c.Params[i]
		}
	}
	for i := range mean {
		mean[i] /= float64(len(elite))
		d.Sigma[i] *= decay
	}
	d.Mean = mean
}

// Optimize runs the evolution strategy for req. Each generation samples a population,
// keeps the better half as the elite, recenters on it and shrinks the step sizes.
// The search stops early once the best fitness is under the threshold, when the
// evaluation budget is spent, or at a generation boundary after ctx is cancelled.
func (o *Optimizer) Optimize(ctx context.Context, req Request) Result {
	if req.Distance() < degenerateDistance {
		return Result{
			Shot:      game.NoOpShot(),
			Predicted: game.SimulationResult{Final: req.Ball, Trajectory: []game.Point2D{req.Ball}, Terrain: req.Terrain},
			Converged: true,
			Mode:      game.ModeFull,
		}
	}

	popSize := o.opts.Population
	generations := o.opts.Budget / popSize
	if generations < 1 {
		generations = 1
	}
	eliteSize := popSize / 2

	dist := InitialDistribution(req)
	best := Candidate{Params: dist.Mean.Clamp(), Fitness: math.Inf(1)}
	population := make([]Candidate, popSize)
	res := Result{Mode: game.ModeFull}

	for g := 0; g < generations; g++ {
		if ctx.Err() != nil {
			break
		}

		for i := range population {
			params := dist.sample(o.rng)
			population[i] = Candidate{Params: params, Fitness: o.fitness(req, params)}
			res.Evaluations++
			if population[i].Fitness < best.Fitness {
				best = population[i]
			}
		}

		sort.SliceStable(population, func(a, b int) bool {
			return population[a].Fitness < population[b].Fitness
		})
		dist.recenter(population[:eliteSize], o.opts.Decay)
		res.Generations++

		if best.Fitness < o.opts.Threshold {
			res.Converged = true
			break
		}
	}

	// Cancelled before any evaluation: report the initial guess
	if math.IsInf(best.Fitness, 1) {
		best.Fitness = o.fitness(req, best.Params)
		res.Evaluations++
	}

	res.Shot = best.Params.Shot()
	res.Fitness = best.Fitness
	res.Predicted = game.SimulateShot(req.Ball, res.Shot, req.Wind, req.Terrain)
	return res
}
