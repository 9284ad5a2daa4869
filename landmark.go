package localise

import "gonum.org/v1/gonum/mat"

// Landmark is a known fixed point in the environment used as a measurement
// reference. Its position is copied in on construction and never mutated, so
// a landmark may be shared by any number of observation models and filters.
// Landmarks are compared by pointer identity, not by position.
type Landmark struct {
	pos *mat.VecDense
}

// NewLandmark creates new Landmark at position pos and returns it
func NewLandmark(pos mat.Vector) *Landmark {
	p := &mat.VecDense{}
	p.CloneFromVec(pos)

	return &Landmark{pos: p}
}

// Position returns the landmark position
func (l *Landmark) Position() mat.Vector {
	pos := &mat.VecDense{}
	pos.CloneFromVec(l.pos)

	return pos
}

// Dim returns the dimension of the landmark position
func (l *Landmark) Dim() int {
	return l.pos.Len()
}
