package optimizer

import (
	"math"

	"github.com/lab1702/golf-ai/game"
	"github.com/lab1702/golf-ai/oracle"
)

// fitness scores params against WindSamples jittered wind realizations:
// mean error + VarianceWeight*variance + SandWeight*sand landings + WaterWeight*hazard landings.
// Landings the oracle cannot classify add no penalty.
func (o *Optimizer) fitness(req Request, params Vector) float64 {
	shot := params.Shot()
	errs := make([]float64, o.opts.WindSamples)
	var sand, water int

	for k := range errs {
		wind := o.jitterWind(req.Wind)
		res := game.SimulateShot(req.Ball, shot, wind, req.Terrain)
		errs[k] = res.Final.DistanceTo(req.Target)

		terrain, err := oracle.Classify(o.oracle, res.Final)
		if err != nil {
			continue
		}
		switch {
		case terrain == game.TerrainSand:
			sand++
		case terrain.IsHazard():
			water++
		}
	}

	mean, variance := meanVariance(errs)
	return mean + VarianceWeight*variance + SandWeight*float64(sand) + WaterWeight*float64(water)
}

// jitterWind perturbs w in proportion to its strength. Calm wind stays calm.
func (o *Optimizer) jitterWind(w game.Wind) game.Wind {
	s := math.Abs(w.Strength)
	dirSigma := WindDirJitter * s / WindDirJitterRef
	return game.Wind{
		Dir: game.Vector2D{
			X: w.Dir.X + o.rng.NormFloat64()*dirSigma,
			Y: w.Dir.Y + o.rng.NormFloat64()*dirSigma,
		},
		Strength: w.Strength + o.rng.NormFloat64()*WindStrengthJitter*s,
	}
}

// meanVariance returns the mean and population variance of xs
func meanVariance(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, sq / float64(len(xs))
}
