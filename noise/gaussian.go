package noise

import (
	"fmt"
	"math"

	"github.com/milosgajdos/go-track/rand"
	"gonum.org/v1/gonum/mat"
)

// Gaussian is scalar gaussian noise drawn from a private random stream
type Gaussian struct {
	// mean is Gaussian mean
	mean float64
	// sigma is Gaussian standard deviation
	sigma float64
	// s is random stream the samples are drawn from
	s *rand.Stream
}

// NewGaussian creates new Gaussian noise with given mean and standard deviation
// whose samples are drawn from stream s.
// It returns error if sigma is negative or s is nil.
func NewGaussian(mean, sigma float64, s *rand.Stream) (*Gaussian, error) {
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("invalid standard deviation: %v", sigma)
	}

	if s == nil {
		return nil, fmt.Errorf("invalid random stream: %v", s)
	}

	return &Gaussian{
		mean:  mean,
		sigma: sigma,
		s:     s,
	}, nil
}

// Sample generates a sample from Gaussian noise and returns it.
func (g *Gaussian) Sample() float64 {
	return g.s.Normal(g.mean, g.sigma)
}

// SampleAround generates a sample from Gaussian noise centered at mean instead
// of the noise mean and returns it. It draws exactly one sample.
func (g *Gaussian) SampleAround(mean float64) float64 {
	return g.s.Normal(mean, g.sigma)
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() []float64 {
	return []float64{g.mean}
}

// Sigma returns Gaussian standard deviation.
func (g *Gaussian) Sigma() float64 {
	return g.sigma
}

// Var returns Gaussian variance.
func (g *Gaussian) Var() float64 {
	return g.sigma * g.sigma
}

// Cov returns 1x1 covariance matrix of Gaussian noise.
func (g *Gaussian) Cov() mat.Symmetric {
	return mat.NewSymDense(1, []float64{g.Var()})
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.Mean(), mat.Formatted(g.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
