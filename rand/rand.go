package rand

import (
	"sync/atomic"
	"time"

	rnd "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// streams counts unseeded streams so that streams created at the same instant differ
var streams uint64

// Stream is a private source of random numbers.
// Stream must not be shared between independent noise processes.
type Stream struct {
	// seed is the seed the stream was created with
	seed uint64
	// src is the underlying source
	src rnd.Source
	// draws counts samples drawn from the stream
	draws int
}

// NewStream creates new Stream and returns it.
// If seed is nil the stream is seeded from the current time.
func NewStream(seed *uint64) *Stream {
	if seed == nil {
		n := atomic.AddUint64(&streams, 1)
		return NewSeededStream(uint64(time.Now().UnixNano()) ^ (n * 0x9e3779b97f4a7c15))
	}

	return NewSeededStream(*seed)
}

// NewSeededStream creates new Stream seeded with seed and returns it.
func NewSeededStream(seed uint64) *Stream {
	return &Stream{
		seed: seed,
		src:  rnd.NewSource(seed),
	}
}

// Seed returns the seed used to create the stream.
// It can be used to replay a stream created without explicit seed.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Normal draws a sample from Normal distribution with mean mu and standard deviation sigma.
func (s *Stream) Normal(mu, sigma float64) float64 {
	s.draws++

	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

// Draws returns the number of samples drawn from the stream so far.
func (s *Stream) Draws() int {
	return s.draws
}
