package sim

import (
	"fmt"

	filter "github.com/milosgajdos/go-track"
	"github.com/milosgajdos/go-track/config"
	"github.com/milosgajdos/go-track/kalman/kf"
	"github.com/milosgajdos/go-track/matrix"
	"github.com/milosgajdos/go-track/model"
	"github.com/milosgajdos/go-track/rand"
)

// Sample is a single simulation step record
type Sample struct {
	// T is process time after the step
	T float64
	// X is true position
	X float64
	// V is true velocity
	V float64
	// Z is sensor reading
	Z filter.Measurement
	// Mu is filter state estimate after update
	Mu matrix.Vec2
	// Sigma is filter covariance after update
	Sigma matrix.Mat2
	// SigmaBar is predicted filter covariance before update
	SigmaBar matrix.Mat2
}

// Simulation advances process, sensor and filter in lockstep.
type Simulation struct {
	// proc is simulated process
	proc *Process
	// sens measures proc
	sens *Sensor
	// f estimates proc state from sens readings
	f *kf.KF
	// procSeed and measSeed are the seeds of the process and sensor streams
	procSeed uint64
	measSeed uint64
	// err is the error which halted the simulation
	err error
}

// New creates new Simulation from configuration c and returns it.
// Process and sensor are given their own independent random streams.
// It returns error if any of the simulated components fails to be created.
func New(c *config.Config) (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	procStream := rand.NewStream(c.ProcessSeed)
	measStream := rand.NewStream(c.MeasurementSeed)

	proc, err := NewProcess(c.X0, c.V0, c.SigmaA, c.TimeStep, procStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}

	var opts []SensorOption
	if c.Dropout != nil {
		d, err := NewDropout(c.Dropout.Start, c.Dropout.End)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDropout(d))
	}

	sens, err := NewSensor(proc, c.SigmaZ, c.TimeStep, measStream, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sensor: %w", err)
	}

	qForm, err := c.QForm()
	if err != nil {
		return nil, err
	}

	m, err := model.NewConstVel(c.TimeStep, c.SigmaA, c.SigmaZ, model.WithProcessNoise(qForm))
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	var kfOpts []kf.Option
	cov, err := c.InitCov()
	if err != nil {
		return nil, err
	}
	if cov != nil {
		kfOpts = append(kfOpts, kf.WithInitCov(cov))
	}
	if c.Joseph {
		kfOpts = append(kfOpts, kf.WithJosephForm())
	}

	f, err := kf.New(m, c.X0, c.V0, kfOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}

	return &Simulation{
		proc:     proc,
		sens:     sens,
		f:        f,
		procSeed: procStream.Seed(),
		measSeed: measStream.Seed(),
	}, nil
}

// Step advances the process, then the sensor and finally feeds the sensor
// reading to the filter. It returns the step record.
// It returns error if the filter fails to update. A failed step leaves the
// filter behind the process and the sensor, so the simulation halts and every
// following Step returns the same error without advancing anything.
func (s *Simulation) Step() (Sample, error) {
	if s.err != nil {
		return Sample{}, s.err
	}

	s.proc.Advance()
	s.sens.Advance()

	z := s.sens.Reading()
	_, sigmaBar := s.f.PredictState()

	if _, err := s.f.Update(z); err != nil {
		s.err = fmt.Errorf("filter update failed at t=%v: %w", s.proc.Time(), err)
		return Sample{}, s.err
	}

	mu, sigma := s.f.State()

	return Sample{
		T:        s.proc.Time(),
		X:        s.proc.Position(),
		V:        s.proc.Velocity(),
		Z:        z,
		Mu:       mu,
		Sigma:    sigma,
		SigmaBar: sigmaBar,
	}, nil
}

// Run runs n simulation steps and returns their records.
// It returns error if any of the steps fails.
func (s *Simulation) Run(n int) ([]Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", n)
	}

	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		sample, err := s.Step()
		if err != nil {
			return samples, err
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// Seeds returns seeds of the process and measurement streams.
// Running a simulation with the same seeds reproduces it exactly.
func (s *Simulation) Seeds() (process, measurement uint64) {
	return s.procSeed, s.measSeed
}

// Process returns simulated process
func (s *Simulation) Process() *Process {
	return s.proc
}

// Sensor returns simulated sensor
func (s *Simulation) Sensor() *Sensor {
	return s.sens
}

// Filter returns Kalman filter
func (s *Simulation) Filter() *kf.KF {
	return s.f
}
