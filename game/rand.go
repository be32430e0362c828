package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// Rand is the random source used for collision responses. Sessions own one
// each and only touch it from their tick loop.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a source seeded with seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeRand returns a source seeded from the wall clock.
func NewTimeRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// between draws uniformly from [lo, hi].
func between(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}
