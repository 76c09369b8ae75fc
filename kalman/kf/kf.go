package kf

import (
	"errors"
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-track"
	"github.com/milosgajdos/go-track/estimate"
	"github.com/milosgajdos/go-track/matrix"
	"github.com/milosgajdos/go-track/model"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when innovation covariance can not be inverted
var ErrSingular = errors.New("singular innovation covariance")

type options struct {
	cov    mat.Matrix
	joseph bool
}

// Option configures KF
type Option func(*options)

// WithInitCov sets initial state covariance of the filter.
// By default the initial covariance is set to 2*Q.
func WithInitCov(cov mat.Matrix) Option {
	return func(o *options) {
		o.cov = cov
	}
}

// WithJosephForm makes the filter use Joseph form of covariance update:
//  P = (I-K*C)*P*(I-K*C)' + K*R*K'
func WithJosephForm() Option {
	return func(o *options) {
		o.joseph = true
	}
}

// KF is Kalman Filter of a 1D constant velocity model
type KF struct {
	// m is KF system model
	m *model.ConstVel
	// x is state estimate: [position, velocity]
	x matrix.Vec2
	// p is state covariance matrix
	p matrix.Mat2
	// n counts filter updates
	n int
	// k is Kalman gain of the last update
	k matrix.Vec2
	// inn is innovation of the last update
	inn float64
	// s is innovation covariance of the last update
	s float64
	// joseph enables Joseph form covariance update
	joseph bool
}

// New creates new KF and returns it.
// It accepts the following parameters:
//  - m:      constant velocity model
//  - x0:     initial position
//  - v0:     initial velocity
//  - opts:   KF options
// It returns error if either of the following conditions is met:
//  - m is nil
//  - initial covariance is not a 2x2 symmetric positive semi-definite matrix
func New(m *model.ConstVel, x0, v0 float64, opts ...Option) (*KF, error) {
	if m == nil {
		return nil, fmt.Errorf("invalid model: %v", m)
	}

	o := &options{}
	for _, apply := range opts {
		apply(o)
	}

	p := m.Q.Scale(2)
	if o.cov != nil {
		cov, err := model.CovFrom(o.cov)
		if err != nil {
			return nil, fmt.Errorf("invalid initial covariance: %w", err)
		}
		p = cov
	}

	return &KF{
		m:      m,
		x:      matrix.Vec2{x0, v0},
		p:      p,
		joseph: o.joseph,
	}, nil
}

// PredictState calculates the next state estimate and its covariance.
// It does not modify the filter.
func (k *KF) PredictState() (matrix.Vec2, matrix.Mat2) {
	x := k.m.Propagate(k.x)

	// A*P*A' + Q
	p := k.m.A.Mul(k.p).Mul(k.m.A.T()).Add(k.m.Q)

	return x, p
}

// Predict returns the estimate of the next system state.
// It does not modify the filter.
func (k *KF) Predict() filter.Estimate {
	x, p := k.PredictState()

	return estimate.NewFromState(x, p)
}

// Update propagates the filter to the next step and corrects the prediction
// using measurement z if it is present. Absent measurement leaves the prediction
// uncorrected. Filter time advances by one time step on every successful update.
// It returns error wrapping ErrSingular if innovation covariance is singular,
// in which case the filter is left unchanged.
func (k *KF) Update(z filter.Measurement) (filter.Estimate, error) {
	x, p := k.PredictState()

	ym, ok := z.Value()
	if !ok {
		k.x, k.p = x, p
		k.k, k.inn, k.s = matrix.Vec2{}, 0, 0
		k.n++

		return estimate.NewFromState(k.x, k.p), nil
	}

	c := k.m.C

	// C*P*C' + R
	s := c.QuadForm(p) + k.m.R
	if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSingular, s)
	}

	// P*C'/S
	gain := p.MulRowT(c).Scale(1 / s)
	inn := ym - k.m.Observe(x)

	x = x.Add(gain.Scale(inn))

	// I - K*C
	a := matrix.Identity2().Sub(matrix.Outer(gain, c))
	if k.joseph {
		krk := matrix.Outer(gain, matrix.Row2(gain)).Scale(k.m.R)
		p = a.Mul(p).Mul(a.T()).Add(krk)
	} else {
		p = a.Mul(p)
	}

	k.x, k.p = x, p
	k.k, k.inn, k.s = gain, inn, s
	k.n++

	return estimate.NewFromState(k.x, k.p), nil
}

// State returns current state estimate and its covariance
func (k *KF) State() (matrix.Vec2, matrix.Mat2) {
	return k.x, k.p
}

// Model returns KF model
func (k *KF) Model() *model.ConstVel {
	return k.m
}

// Time returns filter time
func (k *KF) Time() float64 {
	return float64(k.n) * k.m.TimeStep()
}

// Cov returns KF covariance
func (k *KF) Cov() mat.Symmetric {
	return k.p.Sym()
}

// SetCov sets KF covariance matrix to cov.
// It returns error if cov is not a 2x2 symmetric positive semi-definite matrix.
func (k *KF) SetCov(cov mat.Matrix) error {
	p, err := model.CovFrom(cov)
	if err != nil {
		return err
	}
	k.p = p

	return nil
}

// Gain returns Kalman gain of the last update as 2x1 matrix.
// Gain is zero after an update without measurement.
func (k *KF) Gain() mat.Matrix {
	return mat.NewDense(2, 1, []float64{k.k[0], k.k[1]})
}

// Innovation returns innovation of the last update
func (k *KF) Innovation() float64 {
	return k.inn
}

// InnovationCov returns innovation covariance of the last update
func (k *KF) InnovationCov() float64 {
	return k.s
}
