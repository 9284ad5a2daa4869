package sensor

import (
	"testing"

	localise "github.com/milosgajdos/go-localise"
	"github.com/milosgajdos/go-localise/rnd"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var _ localise.Sensor = (*Func)(nil)

func TestNewFunc(t *testing.T) {
	assert := assert.New(t)

	measure := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) float64 {
		return 1.0
	}
	jacobian := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) mat.Vector {
		return mat.NewVecDense(x.Len(), nil)
	}

	s, err := NewFunc(measure, jacobian)
	assert.NotNil(s)
	assert.NoError(err)

	s, err = NewFunc(nil, jacobian)
	assert.Nil(s)
	assert.Error(err)

	s, err = NewFunc(measure, nil)
	assert.Nil(s)
	assert.Error(err)
}

func TestFuncMeasureNoiseless(t *testing.T) {
	assert := assert.New(t)

	measure := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) float64 {
		return 100.0
	}
	jacobian := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) mat.Vector {
		return mat.NewVecDense(x.Len(), nil)
	}

	s, err := NewFunc(measure, jacobian)
	assert.NotNil(s)
	assert.NoError(err)

	x := mat.NewVecDense(1, nil)
	cov := mat.NewSymDense(1, []float64{1.0})
	lm := localise.NewLandmark(x)

	// zero noise returns the exact measurement on every call
	for i := 0; i < 10; i++ {
		assert.Equal(100.0, s.Measure(x, cov, lm, 0.0))
	}
}

func TestFuncMeasureNoiseVariance(t *testing.T) {
	assert := assert.New(t)

	rnd.Seed(42)

	measure := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) float64 {
		return 100.0
	}
	jacobian := func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) mat.Vector {
		return mat.NewVecDense(x.Len(), nil)
	}

	s, err := NewFunc(measure, jacobian)
	assert.NotNil(s)
	assert.NoError(err)

	x := mat.NewVecDense(1, nil)
	cov := mat.NewSymDense(1, []float64{1.0})
	lm := localise.NewLandmark(x)

	sigma := 2.0
	n := 5000

	samples := make([]float64, n)
	mean := 0.0
	for i := range samples {
		samples[i] = s.Measure(x, cov, lm, sigma)
		mean += samples[i]
	}
	mean /= float64(n)

	variance := 0.0
	for _, m := range samples {
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(n)

	// sample variance converges to sigma^2
	assert.InDelta(100.0, mean, 0.2)
	assert.InDelta(sigma*sigma, variance, 0.5)
}
