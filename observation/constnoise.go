package observation

import (
	"fmt"

	localise "github.com/milosgajdos/go-localise"
	"gonum.org/v1/gonum/mat"
)

// ConstNoise is an observation model whose sensors all share one constant
// noise standard deviation: its measurement noise covariance is sigma^2 * I.
type ConstNoise struct {
	Base
	// sigma is the per sensor noise standard deviation
	sigma float64
}

// NewConstNoise creates new ConstNoise observation model with the given noise
// standard deviation and returns it. It returns error if sigma is negative.
func NewConstNoise(sigma float64) (*ConstNoise, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("invalid noise standard deviation: %f", sigma)
	}

	return &ConstNoise{sigma: sigma}, nil
}

// Measurement returns the stacked measurement vector of lm, one row per
// sensor in registration order, evaluated at x or at the bound state if x is
// nil. With withNoise true every sensor reading is perturbed by the model
// noise, with false it is the idealised prediction.
func (m *ConstNoise) Measurement(lm *localise.Landmark, x mat.Vector, withNoise bool) (mat.Vector, error) {
	sigma := 0.0
	if withNoise {
		sigma = m.sigma
	}

	return m.measurement(lm, x, sigma)
}

// MeasurementNoiseCov returns the measurement noise covariance Nk = sigma^2 * I.
func (m *ConstNoise) MeasurementNoiseCov() mat.Matrix {
	n := m.Sensors()
	if n == 0 {
		return &mat.Dense{}
	}

	nk := mat.NewDiagDense(n, nil)
	for i := 0; i < n; i++ {
		nk.SetDiag(i, m.sigma*m.sigma)
	}

	return nk
}
