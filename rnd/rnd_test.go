package rnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedDeterminism(t *testing.T) {
	assert := assert.New(t)

	Seed(42)
	first := make([]int, 10)
	for i := range first {
		first[i] = Intn(1000)
	}

	Seed(42)
	for i := range first {
		assert.Equal(first[i], Intn(1000))
	}
}

func TestIntn(t *testing.T) {
	assert := assert.New(t)

	Seed(1)
	for i := 0; i < 1000; i++ {
		n := Intn(3)
		assert.GreaterOrEqual(n, 0)
		assert.Less(n, 3)
	}
}

func TestNormFloat64(t *testing.T) {
	assert := assert.New(t)

	Seed(7)

	sigma := 2.0
	n := 10000

	samples := make([]float64, n)
	mean := 0.0
	for i := range samples {
		samples[i] = NormFloat64(sigma)
		mean += samples[i]
	}
	mean /= float64(n)

	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(n)

	// sample moments converge to the configured distribution
	assert.InDelta(0.0, mean, 0.1)
	assert.InDelta(sigma*sigma, variance, 0.3)
}

func TestSource(t *testing.T) {
	assert := assert.New(t)

	src := Source()
	assert.NotNil(src)

	Seed(42)
	a := src.Uint64()
	Seed(42)
	assert.Equal(a, src.Uint64())
}
