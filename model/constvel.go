package model

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-track/matrix"
	"gonum.org/v1/gonum/mat"
)

// ProcessNoise selects the form of process noise covariance matrix Q
type ProcessNoise int

const (
	// QReference is the reference process noise covariance:
	//  Q = [[dt^4/4, dt^3/2], [dt^3/2, dt*2]] * sigmaA^2
	// Note the velocity variance uses dt*2, not dt^2.
	QReference ProcessNoise = iota
	// QWhiteNoiseAccel is the discretized white noise acceleration covariance:
	//  Q = [[dt^4/4, dt^3/2], [dt^3/2, dt^2]] * sigmaA^2
	QWhiteNoiseAccel
)

// String implements the Stringer interface.
func (p ProcessNoise) String() string {
	switch p {
	case QReference:
		return "reference"
	case QWhiteNoiseAccel:
		return "white_noise_accel"
	default:
		return fmt.Sprintf("ProcessNoise(%d)", int(p))
	}
}

// Option configures ConstVel model
type Option func(*ConstVel)

// WithProcessNoise sets the form of process noise covariance matrix
func WithProcessNoise(p ProcessNoise) Option {
	return func(m *ConstVel) {
		m.qForm = p
	}
}

// ConstVel is a discrete-time constant velocity model of a 1D moving object.
// Its internal state is [position, velocity] and its output is position.
//
//  x[n+1] = A*x[n] + w[n],  w ~ N(0, Q)
//  y[n]   = C*x[n] + v[n],  v ~ N(0, R)
type ConstVel struct {
	// dt is time step
	dt float64
	// sigmaA is acceleration standard deviation
	sigmaA float64
	// sigmaZ is measurement standard deviation
	sigmaZ float64
	// qForm is process noise covariance form
	qForm ProcessNoise
	// A is state propagation matrix
	A matrix.Mat2
	// Q is process noise covariance
	Q matrix.Mat2
	// C is observation matrix
	C matrix.Row2
	// R is measurement noise variance
	R float64
}

// NewConstVel creates new constant velocity model and returns it.
// It returns error if dt is not a positive finite number or if either of sigmas is negative or NaN.
func NewConstVel(dt, sigmaA, sigmaZ float64, opts ...Option) (*ConstVel, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	if sigmaA < 0 || sigmaZ < 0 || math.IsNaN(sigmaA) || math.IsNaN(sigmaZ) {
		return nil, fmt.Errorf("invalid noise standard deviation: sigmaA=%v sigmaZ=%v", sigmaA, sigmaZ)
	}

	m := &ConstVel{
		dt:     dt,
		sigmaA: sigmaA,
		sigmaZ: sigmaZ,
	}

	for _, apply := range opts {
		apply(m)
	}

	if m.qForm != QReference && m.qForm != QWhiteNoiseAccel {
		return nil, fmt.Errorf("invalid process noise form: %v", m.qForm)
	}

	m.A = matrix.Mat2{
		{1, dt},
		{0, 1},
	}

	q22 := dt * 2
	if m.qForm == QWhiteNoiseAccel {
		q22 = dt * dt
	}
	m.Q = matrix.Mat2{
		{dt * dt * dt * dt / 4, dt * dt * dt / 2},
		{dt * dt * dt / 2, q22},
	}.Scale(sigmaA * sigmaA)

	m.C = matrix.Row2{1, 0}
	m.R = sigmaZ * sigmaZ

	return m, nil
}

// Propagate propagates internal state x to the next step
func (m *ConstVel) Propagate(x matrix.Vec2) matrix.Vec2 {
	return m.A.MulVec(x)
}

// Observe returns the noiseless output of internal state x
func (m *ConstVel) Observe(x matrix.Vec2) float64 {
	return m.C.Dot(x)
}

// TimeStep returns model time step
func (m *ConstVel) TimeStep() float64 {
	return m.dt
}

// ProcessNoise returns process noise covariance form
func (m *ConstVel) ProcessNoise() ProcessNoise {
	return m.qForm
}

// SystemMatrix returns state propagation matrix A
func (m *ConstVel) SystemMatrix() mat.Matrix {
	return m.A.Dense()
}

// OutputMatrix returns observation matrix C
func (m *ConstVel) OutputMatrix() mat.Matrix {
	return mat.NewDense(1, 2, []float64{m.C[0], m.C[1]})
}

// StateCov returns process noise covariance Q
func (m *ConstVel) StateCov() mat.Symmetric {
	return m.Q.Sym()
}

// OutputCov returns measurement noise covariance R
func (m *ConstVel) OutputCov() mat.Symmetric {
	return mat.NewSymDense(1, []float64{m.R})
}
