package model

import (
	"errors"
	"fmt"

	"github.com/milosgajdos/go-track/matrix"
	"gonum.org/v1/gonum/mat"
)

// covTol is tolerance used when checking covariance symmetry and definiteness
const covTol = 1e-9

// ErrInvalidCov is returned when covariance matrix is not a 2x2 symmetric
// positive semi-definite matrix.
var ErrInvalidCov = errors.New("invalid covariance")

// CheckCov returns error wrapping ErrInvalidCov if cov is not symmetric
// positive semi-definite.
func CheckCov(cov matrix.Mat2) error {
	if !cov.IsSymmetric(covTol) {
		return fmt.Errorf("%w: matrix not symmetric: %v", ErrInvalidCov, cov)
	}

	if !cov.IsPSD(covTol) {
		return fmt.Errorf("%w: matrix not positive semi-definite: %v", ErrInvalidCov, cov)
	}

	return nil
}

// CovFrom copies cov into a 2x2 covariance matrix.
// It returns error wrapping ErrInvalidCov if cov is not a 2x2 symmetric
// positive semi-definite matrix.
func CovFrom(cov mat.Matrix) (matrix.Mat2, error) {
	c, err := matrix.Mat2From(cov)
	if err != nil {
		return matrix.Mat2{}, fmt.Errorf("%w: %v", ErrInvalidCov, err)
	}

	if err := CheckCov(c); err != nil {
		return matrix.Mat2{}, err
	}

	return c, nil
}
