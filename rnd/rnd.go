// Package rnd provides the process scoped source of randomness shared by
// landmark sampling and sensor noise injection. The source is seeded once at
// init and guarded by a mutex so concurrent filters never race on it.
// Seed allows re-seeding the source for deterministic tests.
package rnd

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	mu  sync.Mutex
	src = rand.NewSource(uint64(time.Now().UnixNano()))
	gen = rand.New(&lockedSource{})
)

// lockedSource serialises access to the shared source.
type lockedSource struct{}

// Uint64 implements rand.Source
func (s *lockedSource) Uint64() uint64 {
	mu.Lock()
	defer mu.Unlock()

	return src.Uint64()
}

// Seed implements rand.Source
func (s *lockedSource) Seed(seed uint64) {
	mu.Lock()
	defer mu.Unlock()

	src.Seed(seed)
}

// Seed re-seeds the shared source.
// All subsequent draws are deterministic in seed.
func Seed(seed uint64) {
	mu.Lock()
	defer mu.Unlock()

	src.Seed(seed)
}

// Intn returns a uniformly random int in [0, n).
// It panics if n is not positive.
func Intn(n int) int {
	return gen.Intn(n)
}

// NormFloat64 returns one draw from a zero mean Gaussian
// with standard deviation sigma.
func NormFloat64(sigma float64) float64 {
	norm := distuv.Normal{Mu: 0, Sigma: sigma, Src: gen}

	return norm.Rand()
}

// Source returns the shared source.
// The returned source is safe for concurrent use.
func Source() rand.Source {
	return &lockedSource{}
}
