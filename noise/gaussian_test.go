package noise

import (
	"math"
	"testing"

	filter "github.com/milosgajdos/go-track"
	"github.com/milosgajdos/go-track/rand"
	"github.com/stretchr/testify/assert"
)

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	for _, test := range []struct {
		mean  float64
		sigma float64
		s     *rand.Stream
		ok    bool
	}{
		{mean: 2, sigma: 1, s: rand.NewSeededStream(1), ok: true},
		{mean: 0, sigma: 0, s: rand.NewSeededStream(1), ok: true},
		{mean: 0, sigma: -1, s: rand.NewSeededStream(1), ok: false},
		{mean: 0, sigma: math.NaN(), s: rand.NewSeededStream(1), ok: false},
		{mean: 0, sigma: 1, s: nil, ok: false},
	} {
		g, err := NewGaussian(test.mean, test.sigma, test.s)
		if test.ok {
			assert.NotNil(g)
			assert.NoError(err)
			continue
		}
		assert.Nil(g)
		assert.Error(err)
	}
}

func TestMeanCov(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(2, 3, rand.NewSeededStream(1))
	assert.NotNil(g)
	assert.NoError(err)

	var _ filter.Noise = g

	assert.EqualValues([]float64{2}, g.Mean())
	assert.Equal(3.0, g.Sigma())
	assert.Equal(9.0, g.Var())

	cov := g.Cov()
	assert.Equal(1, cov.SymmetricDim())
	assert.Equal(9.0, cov.At(0, 0))
}

func TestSample(t *testing.T) {
	assert := assert.New(t)

	s := rand.NewSeededStream(5)
	g, err := NewGaussian(0, 1, s)
	assert.NoError(err)

	ref := rand.NewSeededStream(5)

	assert.Equal(ref.Normal(0, 1), g.Sample())
	assert.Equal(ref.Normal(10, 1), g.SampleAround(10))
	assert.Equal(2, s.Draws())
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	str := `Gaussian{
Mean=[2]
Cov=[4]
}`
	g, err := NewGaussian(2, 2, rand.NewSeededStream(1))
	assert.NotNil(g)
	assert.NoError(err)
	assert.Equal(str, g.String())
}
