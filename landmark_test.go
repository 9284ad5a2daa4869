package localise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewLandmark(t *testing.T) {
	assert := assert.New(t)

	pos := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})

	lm := NewLandmark(pos)
	assert.NotNil(lm)
	assert.Equal(3, lm.Dim())

	out := lm.Position()
	for i := 0; i < pos.Len(); i++ {
		assert.Equal(pos.AtVec(i), out.AtVec(i))
	}
}

func TestLandmarkImmutable(t *testing.T) {
	assert := assert.New(t)

	pos := mat.NewVecDense(2, []float64{1.0, 2.0})
	lm := NewLandmark(pos)

	// mutating the source vector must not touch the landmark
	pos.SetVec(0, 100.0)
	assert.Equal(1.0, lm.Position().AtVec(0))

	// mutating the returned position must not touch the landmark
	out := lm.Position()
	out.(*mat.VecDense).SetVec(1, 100.0)
	assert.Equal(2.0, lm.Position().AtVec(1))
}

func TestLandmarkIdentity(t *testing.T) {
	assert := assert.New(t)

	pos := mat.NewVecDense(2, []float64{1.0, 2.0})

	a := NewLandmark(pos)
	b := NewLandmark(pos)

	// identity is by pointer, not by position
	assert.NotSame(a, b)
	assert.Equal(a.Position(), b.Position())
}
