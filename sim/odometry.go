// Package sim provides a differential drive odometry model and plotting
// helpers for simulating landmark localisation runs. The odometry model
// supplies the predicted pose and covariance pair the localisation filter
// consumes on every update cycle.
package sim

import (
	"fmt"
	"math"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Odometry is a differential drive path integration model for an
// (x, y, theta) pose. Path integration and error propagation follow
// Siegwart/Nourbakhsh, Introduction to Autonomous Mobile Robots, pp. 188-189.
type Odometry struct {
	// l is the wheel offset from the axle centre
	l float64
	// kl and kr are the left and right wheel slip error gains
	kl, kr float64
}

// NewOdometry creates new Odometry model with wheel offset l and wheel slip
// error gains kl and kr and returns it.
// It returns error if l is not positive or either gain is negative.
func NewOdometry(l, kl, kr float64) (*Odometry, error) {
	if l <= 0 {
		return nil, fmt.Errorf("invalid wheel offset: %f", l)
	}

	if kl < 0 || kr < 0 {
		return nil, fmt.Errorf("invalid slip error gains: %f, %f", kl, kr)
	}

	return &Odometry{l: l, kl: kl, kr: kr}, nil
}

// Step integrates pose under wheel speeds vl and vr over time step dt and
// returns the new pose. It returns error if pose is not 3 dimensional.
func (o *Odometry) Step(pose mat.Vector, vl, vr, dt float64) (mat.Vector, error) {
	if pose == nil || pose.Len() != 3 {
		return nil, fmt.Errorf("invalid pose: %v", pose)
	}

	sl, sr := dt*vl, dt*vr
	b := 2.0 * o.l
	ds := (sl + sr) / 2.0
	dtheta := (sr - sl) / (2.0 * b)

	theta := pose.AtVec(2)
	next := mat.NewVecDense(3, nil)
	next.SetVec(0, pose.AtVec(0)+ds*math.Cos(theta+dtheta))
	next.SetVec(1, pose.AtVec(1)+ds*math.Sin(theta+dtheta))
	next.SetVec(2, theta+2.0*dtheta)

	return next, nil
}

// PoseJacobian returns the 3x3 Jacobian of the pose update with respect to
// the previous pose.
func (o *Odometry) PoseJacobian(theta, vl, vr, dt float64) *mat.Dense {
	sl, sr := dt*vl, dt*vr
	b := 2.0 * o.l
	ds := (sl + sr) / 2.0
	tt := theta + (sr-sl)/b/2.0

	jac, _ := matrix.NewDenseValIdentity(3, 1.0)
	jac.Set(0, 2, -ds*math.Sin(tt))
	jac.Set(1, 2, ds*math.Cos(tt))

	return jac
}

// MotionJacobian returns the 3x2 Jacobian of the pose update with respect to
// the left and right wheel displacements.
func (o *Odometry) MotionJacobian(theta, vl, vr, dt float64) *mat.Dense {
	sl, sr := dt*vl, dt*vr
	b := 2.0 * o.l
	ds := (sl + sr) / 2.0
	tt := theta + (sr-sl)/b/2.0
	ss := ds / b

	c := 0.5 * math.Cos(tt)
	s := 0.5 * math.Sin(tt)

	return mat.NewDense(3, 2, []float64{
		c - ss*s, c + ss*s,
		s + ss*c, s - ss*c,
		1.0 / b, -1.0 / b,
	})
}

// MotionCov returns the 2x2 covariance of the wheel displacements,
// proportional to the travelled distance of each wheel.
func (o *Odometry) MotionCov(vl, vr, dt float64) *mat.Dense {
	sl, sr := dt*vl, dt*vr

	return mat.NewDense(2, 2, []float64{
		o.kr * math.Abs(sr), 0.0,
		0.0, o.kl * math.Abs(sl),
	})
}

// PropagateCov propagates the pose covariance cov one odometry step:
// Fp*cov*Fp' + Fd*Cd*Fd'. It returns error if cov is not 3x3.
func (o *Odometry) PropagateCov(cov mat.Matrix, theta, vl, vr, dt float64) (*mat.Dense, error) {
	if cov == nil {
		return nil, fmt.Errorf("invalid covariance: %v", cov)
	}

	if r, c := cov.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("invalid covariance dimensions: [%d x %d]", r, c)
	}

	fp := o.PoseJacobian(theta, vl, vr, dt)
	fd := o.MotionJacobian(theta, vl, vr, dt)
	cd := o.MotionCov(vl, vr, dt)

	fpc := &mat.Dense{}
	fpc.Mul(fp, cov)
	out := &mat.Dense{}
	out.Mul(fpc, fp.T())

	fdc := &mat.Dense{}
	fdc.Mul(fd, cd)
	fdcf := &mat.Dense{}
	fdcf.Mul(fdc, fd.T())

	out.Add(out, fdcf)

	return out, nil
}
