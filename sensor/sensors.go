package sensor

import (
	"math"

	localise "github.com/milosgajdos/go-localise"
	"gonum.org/v1/gonum/mat"
)

// Distance returns a sensor measuring the Euclidean distance between the
// agent position and the landmark. The landmark dimension selects the leading
// state components, so a 2D landmark measures the position part of an
// (x, y, theta) pose.
func Distance() *Func {
	measure := func(x mat.Vector, _ mat.Matrix, lm *localise.Landmark) float64 {
		return dist(x, lm.Position())
	}

	jacobian := func(x mat.Vector, _ mat.Matrix, lm *localise.Landmark) mat.Vector {
		pos := lm.Position()
		row := mat.NewVecDense(x.Len(), nil)

		d := dist(x, pos)
		if d == 0 {
			return row
		}

		for i := 0; i < pos.Len(); i++ {
			row.SetVec(i, (x.AtVec(i)-pos.AtVec(i))/d)
		}

		return row
	}

	s, _ := NewFunc(measure, jacobian)

	return s
}

// Coordinate returns a sensor reading state component i directly.
// Its Jacobian row is the i-th standard basis vector.
func Coordinate(i int) *Func {
	measure := func(x mat.Vector, _ mat.Matrix, _ *localise.Landmark) float64 {
		return x.AtVec(i)
	}

	jacobian := func(x mat.Vector, _ mat.Matrix, _ *localise.Landmark) mat.Vector {
		row := mat.NewVecDense(x.Len(), nil)
		row.SetVec(i, 1.0)

		return row
	}

	s, _ := NewFunc(measure, jacobian)

	return s
}

// Compass returns a sensor reading the heading theta of an (x, y, theta) pose.
func Compass() *Func {
	return Coordinate(2)
}

// Bearing returns a sensor measuring the bearing of the landmark relative to
// the heading of an (x, y, theta) pose.
func Bearing() *Func {
	measure := func(x mat.Vector, _ mat.Matrix, lm *localise.Landmark) float64 {
		pos := lm.Position()
		dx := pos.AtVec(0) - x.AtVec(0)
		dy := pos.AtVec(1) - x.AtVec(1)

		return math.Atan2(dy, dx) - x.AtVec(2)
	}

	jacobian := func(x mat.Vector, _ mat.Matrix, lm *localise.Landmark) mat.Vector {
		pos := lm.Position()
		dx := pos.AtVec(0) - x.AtVec(0)
		dy := pos.AtVec(1) - x.AtVec(1)
		r2 := dx*dx + dy*dy

		row := mat.NewVecDense(x.Len(), nil)
		if r2 == 0 {
			row.SetVec(2, -1.0)
			return row
		}

		row.SetVec(0, dy/r2)
		row.SetVec(1, -dx/r2)
		row.SetVec(2, -1.0)

		return row
	}

	s, _ := NewFunc(measure, jacobian)

	return s
}

// dist returns the Euclidean distance between the leading components of x and pos.
func dist(x, pos mat.Vector) float64 {
	d := 0.0
	for i := 0; i < pos.Len(); i++ {
		diff := x.AtVec(i) - pos.AtVec(i)
		d += diff * diff
	}

	return math.Sqrt(d)
}
