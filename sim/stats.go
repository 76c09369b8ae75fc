package sim

import (
	"math"

	"github.com/milosgajdos/go-track/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes filter performance over a simulation run
type Stats struct {
	// Steps is number of summarized steps
	Steps int
	// Dropped is number of steps without sensor reading
	Dropped int
	// PosRMSE is root mean squared error of position estimate
	PosRMSE float64
	// VelRMSE is root mean squared error of velocity estimate
	VelRMSE float64
	// MeasRMSE is root mean squared error of raw sensor readings
	MeasRMSE float64
	// MeanNEES is mean normalized estimation error squared over steps
	// with invertible filter covariance
	MeanNEES float64
	// Singular is number of steps left out of MeanNEES
	// because their filter covariance is singular
	Singular int
}

// Summarize calculates filter performance statistics of samples.
// Steps whose filter covariance can not be inverted, e.g. with noiseless
// measurements, are counted in Singular and do not contribute to MeanNEES.
func Summarize(samples []Sample) Stats {
	st := Stats{Steps: len(samples)}
	if len(samples) == 0 {
		return st
	}

	posErr := make([]float64, len(samples))
	velErr := make([]float64, len(samples))
	var nees, measErr []float64

	for i, s := range samples {
		e := s.Mu.Sub(matrix.Vec2{s.X, s.V})
		posErr[i], velErr[i] = e[0], e[1]

		if z, ok := s.Z.Value(); ok {
			measErr = append(measErr, z-s.X)
		} else {
			st.Dropped++
		}

		// e' * inv(P) * e
		pInv := &mat.Dense{}
		if err := pInv.Inverse(s.Sigma.Dense()); err != nil {
			st.Singular++
			continue
		}
		nees = append(nees, mat.Inner(e.Vector(), pInv, e.Vector()))
	}

	st.PosRMSE = rmse(posErr)
	st.VelRMSE = rmse(velErr)
	st.MeasRMSE = rmse(measErr)
	if len(nees) > 0 {
		st.MeanNEES = stat.Mean(nees, nil)
	}

	return st
}

func rmse(e []float64) float64 {
	if len(e) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(e, e) / float64(len(e)))
}
