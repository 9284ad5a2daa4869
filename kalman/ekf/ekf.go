// Package ekf implements an Extended Kalman Filter which localises a mobile
// agent against a catalogue of known landmarks.
//
// The filter owns the running state estimate and its covariance. Each Update
// samples a landmark from the observation model, synthesises a noisy
// measurement of it, associates the measurement with the statistically most
// plausible landmark by Mahalanobis distance and fuses the result into the
// posterior state and covariance.
package ekf

import (
	"errors"
	"fmt"
	"math"

	localise "github.com/milosgajdos/go-localise"
	"github.com/milosgajdos/go-localise/estimate"
	"github.com/milosgajdos/go-localise/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoMatch is returned when no landmark can be associated with a
	// measurement: the catalogue is empty or no candidate produced a
	// finite statistical distance.
	ErrNoMatch = errors.New("no landmark matched")
	// ErrSingular is returned when the innovation covariance is singular
	// or too ill conditioned to invert.
	ErrSingular = errors.New("singular innovation covariance")
	// ErrInvalidDims is returned on a dimension mismatch between state,
	// covariance and sensor Jacobians.
	ErrInvalidDims = errors.New("invalid dimensions")
)

// EKF is an Extended Kalman Filter localising against known landmarks.
// The state dimension is fixed for the lifetime of the filter.
// EKF state and covariance are mutated by Update only and an Update which
// fails leaves both untouched.
type EKF struct {
	// x is the committed filter state
	x *mat.VecDense
	// cov is the committed state covariance
	cov *mat.SymDense
	// om is the observation model the filter corrects against
	om localise.ObservationModel
	// dim is the state dimension
	dim int
}

// New creates new EKF with a zero state and zero covariance of the given
// dimension and returns it. It returns error if dim is not positive.
func New(dim int) (*EKF, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid state dimension: %d", dim)
	}

	return &EKF{
		x:   mat.NewVecDense(dim, nil),
		cov: mat.NewSymDense(dim, nil),
		dim: dim,
	}, nil
}

// NewWithState creates new EKF with the given initial state and covariance
// and returns it. Both are copied in. It returns error if cov is not a
// square matrix matching the state dimension.
func NewWithState(x mat.Vector, cov mat.Matrix) (*EKF, error) {
	if x == nil || cov == nil {
		return nil, fmt.Errorf("%w: nil initial state or covariance", ErrInvalidDims)
	}

	r, c := cov.Dims()
	if r != x.Len() || c != x.Len() {
		return nil, fmt.Errorf("%w: state %d, covariance [%d x %d]", ErrInvalidDims, x.Len(), r, c)
	}

	s, err := matrix.Symmetrize(cov)
	if err != nil {
		return nil, err
	}

	state := &mat.VecDense{}
	state.CloneFromVec(x)

	return &EKF{
		x:   state,
		cov: s,
		dim: x.Len(),
	}, nil
}

// SetObservationModel sets the observation model the filter corrects against
func (f *EKF) SetObservationModel(om localise.ObservationModel) {
	f.om = om
}

// State returns the committed filter state
func (f *EKF) State() mat.Vector {
	x := mat.NewVecDense(f.x.Len(), nil)
	x.CopyVec(f.x)

	return x
}

// Cov returns the committed state covariance
func (f *EKF) Cov() mat.Symmetric {
	cov := mat.NewSymDense(f.cov.SymmetricDim(), nil)
	cov.CopySym(f.cov)

	return cov
}

// Dim returns the state dimension of the filter
func (f *EKF) Dim() int {
	return f.dim
}

// Update runs one correction cycle of the filter given the predicted state x
// and predicted covariance cov supplied by an external motion model.
//
// It samples a landmark from the observation model and synthesises a noisy
// measurement of it, associates that measurement with the best matching
// landmark in the catalogue, computes the Kalman correction and commits the
// corrected state and covariance, returning them as the new estimate.
//
// If any step fails the committed state and covariance remain unchanged and
// the returned error wraps one of ErrNoMatch, ErrSingular or ErrInvalidDims.
func (f *EKF) Update(x mat.Vector, cov mat.Matrix) (localise.Estimate, error) {
	if f.om == nil {
		return nil, fmt.Errorf("no observation model set")
	}

	if x == nil || cov == nil {
		return nil, fmt.Errorf("%w: nil predicted state or covariance", ErrInvalidDims)
	}

	if x.Len() != f.dim {
		return nil, fmt.Errorf("%w: predicted state %d, filter %d", ErrInvalidDims, x.Len(), f.dim)
	}

	if r, c := cov.Dims(); r != f.dim || c != f.dim {
		return nil, fmt.Errorf("%w: predicted covariance [%d x %d], filter %d", ErrInvalidDims, r, c, f.dim)
	}

	if r, _ := f.om.MeasurementNoiseCov().Dims(); r == 0 {
		return nil, fmt.Errorf("%w: observation model has no sensors", ErrInvalidDims)
	}

	// simulated real measurement of a randomly sampled landmark
	lm := f.om.Sample()
	if lm == nil {
		return nil, fmt.Errorf("%w: landmark sampling failed", ErrNoMatch)
	}

	zReal, err := f.om.Measurement(lm, nil, true)
	if err != nil {
		return nil, fmt.Errorf("real measurement failed: %v", err)
	}

	match, err := f.Match(zReal, x, cov)
	if err != nil {
		return nil, err
	}

	zHat, err := f.om.Measurement(match, x, false)
	if err != nil {
		return nil, fmt.Errorf("measurement prediction failed: %v", err)
	}

	hk, err := f.om.Jacobian(match, x)
	if err != nil {
		return nil, fmt.Errorf("observation Jacobian failed: %v", err)
	}

	if _, c := hk.Dims(); c != f.dim {
		return nil, fmt.Errorf("%w: observation Jacobian has %d columns, filter %d", ErrInvalidDims, c, f.dim)
	}

	sk, err := InnovationCov(hk, cov, f.om.MeasurementNoiseCov(), f.om.NoiseTransform())
	if err != nil {
		return nil, err
	}

	gain, err := Gain(hk, cov, sk)
	if err != nil {
		return nil, err
	}

	// innovation vector
	inn := &mat.VecDense{}
	inn.SubVec(zReal, zHat)

	// x = x + K*inn
	xNew := mat.NewVecDense(f.dim, nil)
	xNew.MulVec(gain, inn)
	xNew.AddVec(x, xNew)

	// C = cov - K*Sk*K'
	ks := &mat.Dense{}
	ks.Mul(gain, sk)
	ksk := &mat.Dense{}
	ksk.Mul(ks, gain.T())
	cNew := &mat.Dense{}
	cNew.Sub(cov, ksk)

	covNew, err := matrix.Symmetrize(cNew)
	if err != nil {
		return nil, err
	}

	// commit the posterior
	f.x.CopyVec(xNew)
	f.cov.CopySym(covNew)

	return estimate.NewBaseWithCov(f.State(), f.Cov())
}

// Match associates the real measurement zReal with a landmark from the
// observation model catalogue given the predicted state x and predicted
// covariance cov. It scans every landmark and selects the one minimising the
// Mahalanobis distance of the innovation under that landmark's innovation
// covariance; the first minimum encountered in catalogue order wins.
//
// It returns error wrapping ErrNoMatch if the catalogue is empty or no
// candidate produced a finite distance, and error wrapping ErrSingular if a
// candidate innovation covariance can not be inverted.
func (f *EKF) Match(zReal mat.Vector, x mat.Vector, cov mat.Matrix) (*localise.Landmark, error) {
	if f.om == nil {
		return nil, fmt.Errorf("no observation model set")
	}

	lms := f.om.Landmarks()
	if len(lms) == 0 {
		return nil, fmt.Errorf("%w: empty landmark catalogue", ErrNoMatch)
	}

	nk := f.om.MeasurementNoiseCov()
	vk := f.om.NoiseTransform()

	minDist := math.Inf(1)
	var best *localise.Landmark

	for _, lm := range lms {
		zHat, err := f.om.Measurement(lm, x, false)
		if err != nil {
			return nil, fmt.Errorf("measurement prediction failed: %v", err)
		}

		if zHat.Len() != zReal.Len() {
			return nil, fmt.Errorf("%w: measurement %d, model predicts %d", ErrInvalidDims, zReal.Len(), zHat.Len())
		}

		hk, err := f.om.Jacobian(lm, x)
		if err != nil {
			return nil, fmt.Errorf("observation Jacobian failed: %v", err)
		}

		sk, err := InnovationCov(hk, cov, nk, vk)
		if err != nil {
			return nil, err
		}

		inn := &mat.VecDense{}
		inn.SubVec(zReal, zHat)

		dist, err := Mahalanobis(inn, sk)
		if err != nil {
			return nil, err
		}

		if math.IsNaN(dist) {
			continue
		}

		if dist < minDist {
			minDist = dist
			best = lm
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no candidate with finite distance", ErrNoMatch)
	}

	return best, nil
}

// InnovationCov returns the innovation covariance Sk = Hk*C*Hk' + Vk*Nk*Vk'.
// It returns error wrapping ErrInvalidDims if the matrix dimensions do not conform.
func InnovationCov(hk, c, nk, vk mat.Matrix) (*mat.Dense, error) {
	m, n := hk.Dims()

	if r, cc := c.Dims(); r != n || cc != n {
		return nil, fmt.Errorf("%w: covariance [%d x %d], Jacobian has %d columns", ErrInvalidDims, r, cc, n)
	}

	if r, cc := nk.Dims(); r != m || cc != m {
		return nil, fmt.Errorf("%w: noise covariance [%d x %d], Jacobian has %d rows", ErrInvalidDims, r, cc, m)
	}

	if r, cc := vk.Dims(); r != m || cc != m {
		return nil, fmt.Errorf("%w: noise transform [%d x %d], Jacobian has %d rows", ErrInvalidDims, r, cc, m)
	}

	hc := &mat.Dense{}
	hc.Mul(hk, c)
	sk := &mat.Dense{}
	sk.Mul(hc, hk.T())

	vn := &mat.Dense{}
	vn.Mul(vk, nk)
	vnv := &mat.Dense{}
	vnv.Mul(vn, vk.T())

	sk.Add(sk, vnv)

	return sk, nil
}

// Gain returns the Kalman gain K = C*Hk'*Sk^-1.
// It returns error wrapping ErrSingular if sk can not be inverted and error
// wrapping ErrInvalidDims if the matrix dimensions do not conform.
func Gain(hk, c, sk mat.Matrix) (*mat.Dense, error) {
	m, n := hk.Dims()

	if r, cc := c.Dims(); r != n || cc != n {
		return nil, fmt.Errorf("%w: covariance [%d x %d], Jacobian has %d columns", ErrInvalidDims, r, cc, n)
	}

	if r, cc := sk.Dims(); r != m || cc != m {
		return nil, fmt.Errorf("%w: innovation covariance [%d x %d], Jacobian has %d rows", ErrInvalidDims, r, cc, m)
	}

	skInv := &mat.Dense{}
	if err := skInv.Inverse(sk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	cht := &mat.Dense{}
	cht.Mul(c, hk.T())

	gain := &mat.Dense{}
	gain.Mul(cht, skInv)

	return gain, nil
}

// Mahalanobis returns the statistical distance delta'*cov^-1*delta.
// It returns error wrapping ErrSingular if cov can not be inverted and error
// wrapping ErrInvalidDims if cov does not conform with delta.
func Mahalanobis(delta mat.Vector, cov mat.Matrix) (float64, error) {
	r, c := cov.Dims()
	if r != c || r != delta.Len() {
		return 0, fmt.Errorf("%w: delta %d, covariance [%d x %d]", ErrInvalidDims, delta.Len(), r, c)
	}

	covInv := &mat.Dense{}
	if err := covInv.Inverse(cov); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	tmp := mat.NewVecDense(r, nil)
	tmp.MulVec(covInv, delta)

	return mat.Dot(delta, tmp), nil
}
