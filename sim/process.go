package sim

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-track/matrix"
	"github.com/milosgajdos/go-track/noise"
	"github.com/milosgajdos/go-track/rand"
)

// T0 is the time every simulated component starts at
const T0 = 0.0

// Process is a 1D object moving with random acceleration.
//
// Every step the acceleration is drawn as a sum of zero mean gaussian with
// standard deviation sigmaA and a small time varying drift N(sin(t), sigmaA/10)
// which is not part of the constant velocity filter model.
type Process struct {
	// x is position
	x float64
	// v is velocity
	v float64
	// a is the last drawn acceleration
	a float64
	// n counts advanced steps
	n int
	// dt is time step
	dt float64
	// accel is modeled acceleration noise
	accel *noise.Gaussian
	// drift is unmodeled acceleration
	drift *noise.Gaussian
}

// NewProcess creates new Process with initial position x0 and velocity v0 and returns it.
// Acceleration samples are drawn from stream s which must not be shared with other components.
// It returns error if dt is not positive, sigmaA is negative or s is nil.
func NewProcess(x0, v0, sigmaA, dt float64, s *rand.Stream) (*Process, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	accel, err := noise.NewGaussian(0, sigmaA, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create acceleration noise: %v", err)
	}

	drift, err := noise.NewGaussian(0, sigmaA/10, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create acceleration drift: %v", err)
	}

	return &Process{
		x:     x0,
		v:     v0,
		dt:    dt,
		accel: accel,
		drift: drift,
	}, nil
}

// Advance draws a random acceleration and integrates the kinematics over one time step.
// It draws exactly two samples from the process stream.
func (p *Process) Advance() {
	unmodeled := p.drift.SampleAround(math.Sin(p.Time()))
	a := p.accel.Sample() + unmodeled

	p.x = p.x + p.v*p.dt + 0.5*a*p.dt*p.dt
	p.v = p.v + a*p.dt
	p.a = a
	p.n++
}

// Position returns true position
func (p *Process) Position() float64 {
	return p.x
}

// Velocity returns true velocity
func (p *Process) Velocity() float64 {
	return p.v
}

// Accel returns acceleration drawn in the last step
func (p *Process) Accel() float64 {
	return p.a
}

// State returns true state: [position, velocity]
func (p *Process) State() matrix.Vec2 {
	return matrix.Vec2{p.x, p.v}
}

// Time returns process time
func (p *Process) Time() float64 {
	return T0 + float64(p.n)*p.dt
}
