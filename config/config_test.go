package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milosgajdos/go-track/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	c := Default()
	assert.NoError(c.Validate())
	assert.Equal(0.2, c.TimeStep)
	assert.Equal(200, c.Steps)
	assert.Nil(c.ProcessSeed)
	assert.Nil(c.MeasurementSeed)
	assert.Nil(c.Dropout)

	q, err := c.QForm()
	assert.NoError(err)
	assert.Equal(model.QReference, q)

	cov, err := c.InitCov()
	assert.NoError(err)
	assert.Nil(cov)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	data := []byte(`
time_step: 0.1
steps: 50
process_seed: 1
measurement_seed: 2
x0: 5
sigma_z: 0.5
dropout:
  start: 2.0
  end: 4.0
sigma0: [[1, 0], [0, 2]]
process_noise: white_noise_accel
joseph: true
`)
	c, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(0.1, c.TimeStep)
	assert.Equal(50, c.Steps)
	require.NotNil(t, c.ProcessSeed)
	assert.Equal(uint64(1), *c.ProcessSeed)
	require.NotNil(t, c.MeasurementSeed)
	assert.Equal(uint64(2), *c.MeasurementSeed)
	assert.Equal(5.0, c.X0)
	// defaults are kept
	assert.Equal(1.0, c.V0)
	assert.Equal(0.1, c.SigmaA)
	assert.Equal(0.5, c.SigmaZ)
	assert.Equal(&Dropout{Start: 2, End: 4}, c.Dropout)
	assert.True(c.Joseph)

	q, err := c.QForm()
	assert.NoError(err)
	assert.Equal(model.QWhiteNoiseAccel, q)

	cov, err := c.InitCov()
	assert.NoError(err)
	assert.Equal(2.0, cov.At(1, 1))
}

func TestParseInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, data := range []string{
		"time_step: 0",
		"time_step: -1",
		"steps: -1",
		"sigma_a: -0.1",
		"sigma_z: -1",
		"dropout: {start: 4, end: 2}",
		"dropout: {start: 2, end: 2}",
		"sigma0: [[1, 0]]",
		"sigma0: [[1, 0, 0], [0, 1, 0]]",
		"sigma0: [[1, 2], [2, 1]]",
		"sigma0: [[1, 0.5], [0, 1]]",
		"process_noise: bogus",
		"time_step: [1, 2]",
		"time_step: .nan",
		"time_step: .inf",
		"sigma_a: .nan",
		"sigma_z: .nan",
		"dropout: {start: .nan, end: 2}",
		"sigma0: [[.nan, 0], [0, 1]]",
	} {
		c, err := Parse([]byte(data))
		assert.Nil(c, data)
		assert.Error(err, data)
		assert.True(errors.Is(err, ErrInvalid), data)
	}
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "track.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 10\n"), 0o644))

	c, err := Load(path)
	assert.NoError(err)
	assert.Equal(10, c.Steps)

	c, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Nil(c)
	assert.Error(err)
}
