package sim

import (
	"testing"

	localise "github.com/milosgajdos/go-localise"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNew2DPlot(t *testing.T) {
	assert := assert.New(t)

	truth := mat.NewDense(3, 2, nil)
	filter := mat.NewDense(3, 2, nil)
	landmarks := []*localise.Landmark{
		localise.NewLandmark(mat.NewVecDense(2, []float64{1.0, 1.0})),
	}

	plt, err := New2DPlot(truth, filter, landmarks)
	assert.NotNil(plt)
	assert.NoError(err)

	// empty catalogue still plots
	plt, err = New2DPlot(truth, filter, nil)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = New2DPlot(nil, nil, landmarks)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = New2DPlot(mat.NewDense(3, 1, nil), filter, landmarks)
	assert.Nil(plt)
	assert.Error(err)
}
