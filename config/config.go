package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/milosgajdos/go-track/model"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when configuration is invalid
var ErrInvalid = errors.New("invalid configuration")

// Dropout is sensor dropout interval
type Dropout struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Config is tracking simulation configuration.
// It is fixed once loaded: components copy what they need at construction.
type Config struct {
	// TimeStep is the discrete time step in seconds
	TimeStep float64 `yaml:"time_step"`
	// Steps is number of simulation steps
	Steps int `yaml:"steps"`
	// ProcessSeed seeds process noise; random when nil
	ProcessSeed *uint64 `yaml:"process_seed,omitempty"`
	// MeasurementSeed seeds measurement noise; random when nil
	MeasurementSeed *uint64 `yaml:"measurement_seed,omitempty"`
	// X0 is initial position
	X0 float64 `yaml:"x0"`
	// V0 is initial velocity
	V0 float64 `yaml:"v0"`
	// SigmaA is acceleration standard deviation
	SigmaA float64 `yaml:"sigma_a"`
	// SigmaZ is measurement standard deviation
	SigmaZ float64 `yaml:"sigma_z"`
	// Dropout is optional sensor dropout interval
	Dropout *Dropout `yaml:"dropout,omitempty"`
	// Sigma0 is optional 2x2 initial filter covariance
	Sigma0 [][]float64 `yaml:"sigma0,omitempty"`
	// ProcessNoise is process noise covariance form
	ProcessNoise string `yaml:"process_noise"`
	// Joseph enables Joseph form covariance update
	Joseph bool `yaml:"joseph"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		TimeStep:     0.2,
		Steps:        200,
		X0:           0,
		V0:           1,
		SigmaA:       0.1,
		SigmaZ:       1.0,
		ProcessNoise: model.QReference.String(),
	}
}

// Load reads YAML configuration from path, applies it over defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %v", path, err)
	}

	return Parse(data)
}

// Parse parses YAML configuration data, applies it over defaults and validates it.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate returns error wrapping ErrInvalid if configuration is invalid.
func (c *Config) Validate() error {
	if c.TimeStep <= 0 || math.IsNaN(c.TimeStep) || math.IsInf(c.TimeStep, 0) {
		return fmt.Errorf("%w: time step must be positive: %v", ErrInvalid, c.TimeStep)
	}

	if c.Steps < 0 {
		return fmt.Errorf("%w: negative steps: %d", ErrInvalid, c.Steps)
	}

	if c.SigmaA < 0 || c.SigmaZ < 0 || math.IsNaN(c.SigmaA) || math.IsNaN(c.SigmaZ) {
		return fmt.Errorf("%w: negative noise: sigma_a=%v sigma_z=%v", ErrInvalid, c.SigmaA, c.SigmaZ)
	}

	if c.Dropout != nil && !(c.Dropout.End > c.Dropout.Start) {
		return fmt.Errorf("%w: dropout must end after it starts: [%v, %v]", ErrInvalid, c.Dropout.Start, c.Dropout.End)
	}

	if _, err := c.QForm(); err != nil {
		return err
	}

	if _, err := c.InitCov(); err != nil {
		return err
	}

	return nil
}

// QForm returns process noise covariance form.
// Empty form selects model.QReference.
func (c *Config) QForm() (model.ProcessNoise, error) {
	switch c.ProcessNoise {
	case "", model.QReference.String():
		return model.QReference, nil
	case model.QWhiteNoiseAccel.String():
		return model.QWhiteNoiseAccel, nil
	default:
		return 0, fmt.Errorf("%w: unknown process noise: %q", ErrInvalid, c.ProcessNoise)
	}
}

// InitCov returns initial filter covariance or nil if none is configured.
// It returns error if the configured covariance is not a 2x2 symmetric
// positive semi-definite matrix.
func (c *Config) InitCov() (mat.Matrix, error) {
	if c.Sigma0 == nil {
		return nil, nil
	}

	if len(c.Sigma0) != 2 || len(c.Sigma0[0]) != 2 || len(c.Sigma0[1]) != 2 {
		return nil, fmt.Errorf("%w: sigma0 must be 2x2: %v", ErrInvalid, c.Sigma0)
	}

	cov := mat.NewDense(2, 2, []float64{
		c.Sigma0[0][0], c.Sigma0[0][1],
		c.Sigma0[1][0], c.Sigma0[1][1],
	})

	if _, err := model.CovFrom(cov); err != nil {
		return nil, fmt.Errorf("%w: sigma0: %v", ErrInvalid, err)
	}

	return cov, nil
}
