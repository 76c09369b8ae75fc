package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Filter is a dynamical system filter.
type Filter interface {
	// Predict estimates the next internal state of the system
	Predict() Estimate
	// Update updates the system state based on external measurement
	Update(Measurement) (Estimate, error)
}

// Estimate is dynamical system filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
}

// Measurement is a scalar sensor reading which is either present or absent.
// The zero value is an absent measurement.
type Measurement struct {
	val float64
	ok  bool
}

// Present returns a measurement holding z.
func Present(z float64) Measurement {
	return Measurement{val: z, ok: true}
}

// Absent returns a measurement which carries no reading.
func Absent() Measurement {
	return Measurement{}
}

// Value returns the reading and true if it is present.
func (m Measurement) Value() (float64, bool) {
	return m.val, m.ok
}

// IsPresent reports whether m carries a reading.
func (m Measurement) IsPresent() bool {
	return m.ok
}

// String implements the Stringer interface.
func (m Measurement) String() string {
	if !m.ok {
		return "absent"
	}

	return fmt.Sprintf("%g", m.val)
}
