package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec2 is a 2-element column vector
type Vec2 [2]float64

// Row2 is a 1x2 row vector
type Row2 [2]float64

// Mat2 is a 2x2 matrix stored in row-major order
type Mat2 [2][2]float64

// Identity2 returns 2x2 identity matrix
func Identity2() Mat2 {
	return Mat2{{1, 0}, {0, 1}}
}

// Add returns m + n
func (m Mat2) Add(n Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}

	return out
}

// Sub returns m - n
func (m Mat2) Sub(n Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][j] - n[i][j]
		}
	}

	return out
}

// Scale returns f*m
func (m Mat2) Scale(f float64) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = f * m[i][j]
		}
	}

	return out
}

// Mul returns matrix product m*n
func (m Mat2) Mul(n Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}

	return out
}

// MulVec returns m*v
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}

// MulRowT returns m*r' i.e. product of m and transposed row vector r
func (m Mat2) MulRowT(r Row2) Vec2 {
	return m.MulVec(Vec2(r))
}

// T returns transpose of m
func (m Mat2) T() Mat2 {
	return Mat2{
		{m[0][0], m[1][0]},
		{m[0][1], m[1][1]},
	}
}

// Trace returns the sum of the diagonal elements of m
func (m Mat2) Trace() float64 {
	return m[0][0] + m[1][1]
}

// IsSymmetric returns true if m is symmetric within tolerance tol
func (m Mat2) IsSymmetric(tol float64) bool {
	return math.Abs(m[0][1]-m[1][0]) <= tol
}

// Eigenvalues returns eigenvalues of symmetric part of m in ascending order.
// It returns error if the eigen decomposition fails.
func (m Mat2) Eigenvalues() ([]float64, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(m.Sym(), false); !ok {
		return nil, fmt.Errorf("eigen decomposition failed: %v", m)
	}

	return eig.Values(nil), nil
}

// IsPSD returns true if m is symmetric and none of its eigenvalues is
// smaller than -tol or NaN.
func (m Mat2) IsPSD(tol float64) bool {
	if !m.IsSymmetric(tol) {
		return false
	}

	vals, err := m.Eigenvalues()
	if err != nil {
		return false
	}

	for _, v := range vals {
		if v < -tol || math.IsNaN(v) {
			return false
		}
	}

	return true
}

// Dense returns m as gonum Dense matrix
func (m Mat2) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{m[0][0], m[0][1], m[1][0], m[1][1]})
}

// Sym returns m as gonum SymDense matrix.
// Only the upper triangle of m is used.
func (m Mat2) Sym() *mat.SymDense {
	return mat.NewSymDense(2, []float64{m[0][0], m[0][1], m[0][1], m[1][1]})
}

// Mat2From copies m into Mat2.
// It returns error if m is not a 2x2 matrix.
func Mat2From(m mat.Matrix) (Mat2, error) {
	if m == nil {
		return Mat2{}, fmt.Errorf("invalid matrix: %v", m)
	}

	r, c := m.Dims()
	if r != 2 || c != 2 {
		return Mat2{}, fmt.Errorf("invalid matrix dimensions: [%d x %d]", r, c)
	}

	return Mat2{
		{m.At(0, 0), m.At(0, 1)},
		{m.At(1, 0), m.At(1, 1)},
	}, nil
}

// Add returns v + w
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v[0] + w[0], v[1] + w[1]}
}

// Sub returns v - w
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v[0] - w[0], v[1] - w[1]}
}

// Scale returns f*v
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{f * v[0], f * v[1]}
}

// Vector returns v as gonum VecDense
func (v Vec2) Vector() *mat.VecDense {
	return mat.NewVecDense(2, []float64{v[0], v[1]})
}

// Vec2From copies v into Vec2.
// It returns error if v does not have exactly 2 elements.
func Vec2From(v mat.Vector) (Vec2, error) {
	if v == nil || v.Len() != 2 {
		return Vec2{}, fmt.Errorf("invalid vector: %v", v)
	}

	return Vec2{v.AtVec(0), v.AtVec(1)}, nil
}

// Dot returns r*v
func (r Row2) Dot(v Vec2) float64 {
	return r[0]*v[0] + r[1]*v[1]
}

// QuadForm returns r*m*r'
func (r Row2) QuadForm(m Mat2) float64 {
	return r.Dot(m.MulRowT(r))
}

// Outer returns v*r, a 2x2 matrix
func Outer(v Vec2, r Row2) Mat2 {
	return Mat2{
		{v[0] * r[0], v[0] * r[1]},
		{v[1] * r[0], v[1] * r[1]},
	}
}
