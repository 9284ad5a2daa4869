// Package observation provides observation models which stack the readings of
// an ordered sequence of sensors over a shared landmark catalogue.
//
// Base carries the machinery shared by every observation model: the sensor
// sequence, the landmark catalogue, the borrowed state and the stacked
// measurement/Jacobian assembly. Concrete models embed Base and supply the
// measurement noise policy.
package observation

import (
	"fmt"

	localise "github.com/milosgajdos/go-localise"
	"github.com/milosgajdos/go-localise/rnd"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Base is the shared core of an observation model. Base is not a complete
// observation model on its own: it has no measurement noise policy.
type Base struct {
	// sensors is the ordered sensor sequence.
	// Registration order fixes the row order of all stacked outputs.
	sensors []localise.Sensor
	// landmarks is the landmark catalogue
	landmarks []*localise.Landmark
	// x and cov are borrowed from the caller via SetState
	x   mat.Vector
	cov mat.Matrix
}

// AddSensor appends s to the sensor sequence.
// It changes the row count of all future stacked outputs.
func (b *Base) AddSensor(s localise.Sensor) {
	b.sensors = append(b.sensors, s)
}

// SetLandmarks replaces the landmark catalogue wholesale
func (b *Base) SetLandmarks(lms []*localise.Landmark) {
	b.landmarks = make([]*localise.Landmark, len(lms))
	copy(b.landmarks, lms)
}

// Landmarks returns the landmark catalogue
func (b *Base) Landmarks() []*localise.Landmark {
	lms := make([]*localise.Landmark, len(b.landmarks))
	copy(lms, b.landmarks)

	return lms
}

// SetState borrows the caller state and covariance for subsequent calls.
// The model keeps references, not copies: the caller must not mutate x or cov
// concurrently with a call into the model.
func (b *Base) SetState(x mat.Vector, cov mat.Matrix) {
	b.x = x
	b.cov = cov
}

// Sample returns a uniformly random landmark from the catalogue.
// It returns nil if the catalogue is empty.
func (b *Base) Sample() *localise.Landmark {
	if len(b.landmarks) == 0 {
		return nil
	}

	return b.landmarks[rnd.Intn(len(b.landmarks))]
}

// Sensors returns the number of registered sensors
func (b *Base) Sensors() int {
	return len(b.sensors)
}

// measurement returns the stacked measurement vector of lm, one row per
// sensor in registration order, each reading perturbed by noiseStdDev.
// The readings are evaluated at x, or at the bound state if x is nil.
func (b *Base) measurement(lm *localise.Landmark, x mat.Vector, noiseStdDev float64) (mat.Vector, error) {
	if lm == nil {
		return nil, fmt.Errorf("invalid landmark: %v", lm)
	}

	if len(b.sensors) == 0 {
		return nil, fmt.Errorf("no sensors registered: call AddSensor first")
	}

	if b.x == nil || b.cov == nil {
		return nil, fmt.Errorf("no state bound: call SetState first")
	}

	if x == nil {
		x = b.x
	}

	z := mat.NewVecDense(len(b.sensors), nil)
	for i, s := range b.sensors {
		z.SetVec(i, s.Measure(x, b.cov, lm, noiseStdDev))
	}

	return z, nil
}

// Jacobian returns the stacked observation Jacobian of lm, one row per sensor
// in registration order. If x is not nil the rows are evaluated at x instead
// of the bound state: the filter evaluates at the predicted state during its
// update cycle.
func (b *Base) Jacobian(lm *localise.Landmark, x mat.Vector) (*mat.Dense, error) {
	if lm == nil {
		return nil, fmt.Errorf("invalid landmark: %v", lm)
	}

	if len(b.sensors) == 0 {
		return nil, fmt.Errorf("no sensors registered: call AddSensor first")
	}

	if b.x == nil || b.cov == nil {
		return nil, fmt.Errorf("no state bound: call SetState first")
	}

	if x == nil {
		x = b.x
	}

	hk := mat.NewDense(len(b.sensors), x.Len(), nil)
	for i, s := range b.sensors {
		row := s.JacobianRow(x, b.cov, lm)
		if row.Len() != x.Len() {
			return nil, fmt.Errorf("invalid Jacobian row %d: %d components, state has %d", i, row.Len(), x.Len())
		}

		for j := 0; j < row.Len(); j++ {
			hk.Set(i, j, row.AtVec(j))
		}
	}

	return hk, nil
}

// NoiseTransform returns the noise transformation matrix Vk.
// The default transform is the (m x m) identity.
func (b *Base) NoiseTransform() mat.Matrix {
	if len(b.sensors) == 0 {
		return &mat.Dense{}
	}

	vk, _ := matrix.NewDenseValIdentity(len(b.sensors), 1.0)

	return vk
}
