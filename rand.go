package yuletide

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand is the random source every engine draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests substitute seeded or scripted sources so
// spawn decisions become deterministic.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed derives one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a value in [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// jitter returns a value in [-span/2, span/2).
func jitter(r Rand, span float64) float64 {
	return (r.Float64() - 0.5) * span
}

// chance reports whether a draw succeeds with probability p.
func chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// sign returns +1 or -1 with equal probability.
func sign(r Rand) float64 {
	if r.Float64() < 0.5 {
		return 1
	}
	return -1
}

// randAngle returns a uniformly random angle in [0, 2π).
func randAngle(r Rand) float64 {
	return r.Float64() * 2 * math.Pi
}

// pick returns a random element of colors.
func pick(r Rand, colors []Color) Color {
	return colors[r.IntN(len(colors))]
}
