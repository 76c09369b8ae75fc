package estimate

import (
	"github.com/milosgajdos/go-track/matrix"
	"gonum.org/v1/gonum/mat"
)

// Base is base estimate
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewFromState returns base estimate of 2D state x with covariance p.
// Only the upper triangle of p is used.
func NewFromState(x matrix.Vec2, p matrix.Mat2) *Base {
	return &Base{
		val: x.Vector(),
		cov: p.Sym(),
	}
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}
