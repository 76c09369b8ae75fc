package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milosgajdos/go-track/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlags(t *testing.T) {
	assert := assert.New(t)

	cmd := NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--steps", "20",
		"--process-seed", "3",
		"--measurement-seed", "4",
		"--dropout", "1.0,2.5",
	}))

	c, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(20, c.Steps)
	require.NotNil(t, c.ProcessSeed)
	assert.Equal(uint64(3), *c.ProcessSeed)
	require.NotNil(t, c.MeasurementSeed)
	assert.Equal(uint64(4), *c.MeasurementSeed)
	assert.Equal(&config.Dropout{Start: 1, End: 2.5}, c.Dropout)
}

func TestLoadConfigFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "track.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 7\nsigma_z: 2\n"), 0o644))

	cmd := NewCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	c, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(7, c.Steps)
	assert.Equal(2.0, c.SigmaZ)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--dropout", "1.0"},
		{"--dropout", "3.0,1.0"},
		{"--steps=-1"},
	} {
		cmd := NewCmd()
		require.NoError(t, cmd.ParseFlags(args))

		_, err := loadConfig(cmd)
		assert.Error(t, err, args)
		assert.True(t, errors.Is(err, config.ErrInvalid), args)
	}
}

func TestTrackCmd(t *testing.T) {
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "track.png")

	cmd := NewCmd()
	cmd.SetArgs([]string{
		"--steps", "30",
		"--process-seed", "1",
		"--measurement-seed", "2",
		"--plot", name,
	})
	assert.NoError(cmd.Execute())

	_, err := os.Stat(name)
	assert.NoError(err)
}
