package sensor

import (
	"fmt"

	localise "github.com/milosgajdos/go-localise"
	"github.com/milosgajdos/go-localise/rnd"
	"gonum.org/v1/gonum/mat"
)

// MeasureFunc returns the noiseless reading of landmark lm given state x and covariance cov.
type MeasureFunc func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) float64

// JacobianFunc returns the partial derivatives of the noiseless reading with
// respect to each state component, evaluated at x and lm.
type JacobianFunc func(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) mat.Vector

// Func is a sensor configured from a measurement function and its Jacobian
// row function. It composes Gaussian noise injection itself so arbitrary
// measurement functions can be reused without defining a new sensor type.
type Func struct {
	// measure is the noiseless measurement function
	measure MeasureFunc
	// jacobian is the measurement Jacobian row function
	jacobian JacobianFunc
}

// NewFunc creates new Func sensor from the given measurement and Jacobian row
// functions and returns it. It returns error if either function is nil.
func NewFunc(measure MeasureFunc, jacobian JacobianFunc) (*Func, error) {
	if measure == nil || jacobian == nil {
		return nil, fmt.Errorf("invalid sensor functions: measure: %v, jacobian: %v", measure, jacobian)
	}

	return &Func{
		measure:  measure,
		jacobian: jacobian,
	}, nil
}

// Measure returns the sensor reading of landmark lm given state x and
// covariance cov. If noiseStdDev is positive the reading is perturbed by one
// independent draw from a zero mean Gaussian with that standard deviation.
func (s *Func) Measure(x mat.Vector, cov mat.Matrix, lm *localise.Landmark, noiseStdDev float64) float64 {
	m := s.measure(x, cov, lm)
	if noiseStdDev > 0 {
		m += rnd.NormFloat64(noiseStdDev)
	}

	return m
}

// JacobianRow returns the partial derivatives of the noiseless reading with
// respect to each state component, evaluated at x and lm.
func (s *Func) JacobianRow(x mat.Vector, cov mat.Matrix, lm *localise.Landmark) mat.Vector {
	return s.jacobian(x, cov, lm)
}
