package optimizer

import (
	"math/rand"
	"time"
)

// Rand is the randomness the optimizer consumes. Callers inject it so runs can be
// reproduced from a seed; *rand.Rand satisfies it.
type Rand interface {
	NormFloat64() float64
	Float64() float64
}

// NewRand returns a generator seeded with seed. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
