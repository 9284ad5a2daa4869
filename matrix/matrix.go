package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Symmetrize returns the symmetric part (m + m^T)/2 of a square matrix m.
// Covariance updates of the form C - K*Sk*K^T are symmetric in exact
// arithmetic but drift in floating point; Symmetrize folds the drift back.
// It returns error if m is not square.
func Symmetrize(m mat.Matrix) (*mat.SymDense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("invalid matrix dimensions: [%d x %d]", r, c)
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return s, nil
}
