package noise

import (
	"testing"

	"github.com/milosgajdos/go-localise/rnd"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	gCov := g.Cov()
	assert.Equal(cov.SymmetricDim(), gCov.SymmetricDim())
	assert.True(mat.EqualApprox(cov, gCov, 1e-10))
	assert.EqualValues(mean, g.Mean())
}

func TestGaussianSample(t *testing.T) {
	assert := assert.New(t)

	rnd.Seed(42)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	sample := g.Sample()
	r, _ := sample.Dims()
	assert.Equal(len(mean), r)

	// sample mean converges to the configured mean
	n := 5000
	sum := make([]float64, len(mean))
	for i := 0; i < n; i++ {
		s := g.Sample()
		for j := range sum {
			sum[j] += s.AtVec(j)
		}
	}
	for j := range sum {
		assert.InDelta(mean[j], sum[j]/float64(n), 0.1)
	}
}

func TestGaussianReset(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	sample1 := g.Sample()

	err = g.Reset()
	assert.NoError(err)

	sample2 := g.Sample()
	assert.NotEqual(sample1, sample2)
}
