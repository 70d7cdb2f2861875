package game

import "math/rand/v2"

// Rand is the subset of *rand.Rand the generators draw from. Tests pass a
// seeded *rand.Rand; production code uses the package-level source.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand is safe for concurrent use.
var DefaultRand Rand = globalRand{}

// between returns a uniform integer in [lo, hi].
func between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
