package localise

import "gonum.org/v1/gonum/mat"

// Filter is a landmark localisation filter.
type Filter interface {
	// Update corrects the filter state using the predicted state and covariance
	Update(x mat.Vector, cov mat.Matrix) (Estimate, error)
	// State returns the current filter state
	State() mat.Vector
	// Cov returns the current state covariance
	Cov() mat.Symmetric
	// SetObservationModel sets the observation model the filter corrects against
	SetObservationModel(om ObservationModel)
}

// Sensor is a single scalar-output sensor measuring a landmark.
// Sensors are stateless: it is safe to share one sensor across
// any number of models and evaluations.
type Sensor interface {
	// Measure returns the sensor reading of landmark lm given state x and covariance cov.
	// If noiseStdDev is positive the reading is perturbed by one independent draw
	// from a zero mean Gaussian with that standard deviation.
	Measure(x mat.Vector, cov mat.Matrix, lm *Landmark, noiseStdDev float64) float64
	// JacobianRow returns the partial derivatives of the noiseless reading
	// with respect to each state component, evaluated at x and lm.
	// The returned vector has x.Len() components and must be consistent
	// with the noiseless branch of Measure.
	JacobianRow(x mat.Vector, cov mat.Matrix, lm *Landmark) mat.Vector
}

// ObservationModel stacks the readings of an ordered sequence of sensors
// over a shared landmark catalogue.
type ObservationModel interface {
	// AddSensor appends s to the sensor sequence.
	// Sensor registration order fixes the row order of all stacked outputs.
	AddSensor(s Sensor)
	// SetLandmarks replaces the landmark catalogue wholesale
	SetLandmarks(lms []*Landmark)
	// Landmarks returns the landmark catalogue
	Landmarks() []*Landmark
	// SetState borrows the caller state and covariance for subsequent calls.
	// The model keeps references, not copies: the caller must not mutate
	// x or cov concurrently with a call into the model.
	SetState(x mat.Vector, cov mat.Matrix)
	// Sample returns a uniformly random landmark from the catalogue
	// or nil if the catalogue is empty
	Sample() *Landmark
	// Measurement returns the stacked measurement vector of lm, one row per
	// sensor in registration order. If x is not nil the readings are
	// evaluated at x instead of the bound state: the filter predicts
	// landmark readings at the predicted state during update.
	// With withNoise true each sensor reading is perturbed by the
	// model's measurement noise, with false it is the idealised prediction.
	Measurement(lm *Landmark, x mat.Vector, withNoise bool) (mat.Vector, error)
	// Jacobian returns the stacked observation Jacobian of lm, one row per
	// sensor. If x is not nil the rows are evaluated at x instead of the
	// bound state: the filter evaluates at the predicted state during update.
	Jacobian(lm *Landmark, x mat.Vector) (*mat.Dense, error)
	// MeasurementNoiseCov returns the measurement noise covariance Nk (m x m)
	MeasurementNoiseCov() mat.Matrix
	// NoiseTransform returns the noise transformation matrix Vk (m x m)
	NoiseTransform() mat.Matrix
}

// Estimate is a localisation filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}
