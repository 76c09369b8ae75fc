package sim

import (
	"errors"
	"fmt"
	"math"

	filter "github.com/milosgajdos/go-track"
	"github.com/milosgajdos/go-track/noise"
	"github.com/milosgajdos/go-track/rand"
)

// ErrInvalidDropout is returned when dropout interval does not end after it starts
var ErrInvalidDropout = errors.New("invalid dropout interval")

// Target is an object whose position can be measured
type Target interface {
	// Position returns current position
	Position() float64
}

// Dropout is a time interval during which sensor produces no readings.
// Both interval ends are excluded from the dropout.
type Dropout struct {
	Start float64
	End   float64
}

// NewDropout creates new Dropout and returns it.
// It returns error if end is not greater than start.
func NewDropout(start, end float64) (Dropout, error) {
	d := Dropout{Start: start, End: end}
	if err := d.Validate(); err != nil {
		return Dropout{}, err
	}

	return d, nil
}

// Validate returns error wrapping ErrInvalidDropout if d is malformed.
func (d Dropout) Validate() error {
	if !(d.End > d.Start) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidDropout, d.Start, d.End)
	}

	return nil
}

// Contains returns true if t lies strictly inside the dropout interval.
func (d Dropout) Contains(t float64) bool {
	return t > d.Start && t < d.End
}

// SensorOption configures Sensor
type SensorOption func(*Sensor)

// WithDropout configures sensor dropout interval
func WithDropout(d Dropout) SensorOption {
	return func(s *Sensor) {
		s.dropout = &d
	}
}

// Sensor measures position of a target with gaussian noise.
// Sensor keeps its own clock which must be advanced in lockstep with the target:
// the target is advanced first, then the sensor.
type Sensor struct {
	// target is measured object
	target Target
	// noise is measurement noise
	noise *noise.Gaussian
	// dropout is optional dropout interval
	dropout *Dropout
	// dt is time step
	dt float64
	// n counts advanced steps
	n int
	// z is the last reading
	z filter.Measurement
}

// NewSensor creates new Sensor of target with measurement standard deviation sigmaZ and returns it.
// Measurement noise is drawn from stream s which must not be shared with other components.
// It returns error if target or s is nil, dt is not positive, sigmaZ is negative or dropout is invalid.
func NewSensor(target Target, sigmaZ, dt float64, s *rand.Stream, opts ...SensorOption) (*Sensor, error) {
	if target == nil {
		return nil, fmt.Errorf("invalid sensor target: %v", target)
	}

	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	n, err := noise.NewGaussian(0, sigmaZ, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create measurement noise: %v", err)
	}

	sensor := &Sensor{
		target: target,
		noise:  n,
		dt:     dt,
	}

	for _, apply := range opts {
		apply(sensor)
	}

	if sensor.dropout != nil {
		if err := sensor.dropout.Validate(); err != nil {
			return nil, err
		}
	}

	return sensor, nil
}

// Advance takes one reading of the target position and advances sensor time.
// The reading is absent when sensor time lies inside the dropout interval,
// in which case no random sample is drawn.
func (s *Sensor) Advance() {
	if s.dropout != nil && s.dropout.Contains(s.Time()) {
		s.z = filter.Absent()
	} else {
		s.z = filter.Present(s.noise.SampleAround(s.target.Position()))
	}
	s.n++
}

// Reading returns the last sensor reading.
// It is absent until the sensor is advanced for the first time.
func (s *Sensor) Reading() filter.Measurement {
	return s.z
}

// Dropout returns sensor dropout interval and true if one is configured.
func (s *Sensor) Dropout() (Dropout, bool) {
	if s.dropout == nil {
		return Dropout{}, false
	}

	return *s.dropout, true
}

// Time returns sensor time
func (s *Sensor) Time() float64 {
	return T0 + float64(s.n)*s.dt
}
