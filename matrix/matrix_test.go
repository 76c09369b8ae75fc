package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMat2Ops(t *testing.T) {
	assert := assert.New(t)

	a := Mat2{{1, 0.5}, {0, 1}}
	b := Mat2{{2, 1}, {1, 3}}

	assert.Equal(Mat2{{3, 1.5}, {1, 4}}, a.Add(b))
	assert.Equal(Mat2{{-1, -0.5}, {-1, -2}}, a.Sub(b))
	assert.Equal(Mat2{{4, 2}, {2, 6}}, b.Scale(2))
	assert.Equal(Mat2{{1, 0}, {0.5, 1}}, a.T())
	assert.Equal(5.0, b.Trace())
	assert.Equal(b, Identity2().Mul(b))
	assert.Equal(b, b.Mul(Identity2()))

	// check against gonum
	want := &mat.Dense{}
	want.Mul(a.Dense(), b.Dense())
	assert.True(mat.EqualApprox(want, a.Mul(b).Dense(), 1e-12))

	v := Vec2{1, 2}
	assert.Equal(Vec2{2, 2}, a.MulVec(v))
	assert.Equal(Vec2{2, 1}, b.MulRowT(Row2{1, 0}))
}

func TestVecRowOps(t *testing.T) {
	assert := assert.New(t)

	v := Vec2{1, 2}
	w := Vec2{0.5, -1}

	assert.Equal(Vec2{1.5, 1}, v.Add(w))
	assert.Equal(Vec2{0.5, 3}, v.Sub(w))
	assert.Equal(Vec2{2, 4}, v.Scale(2))

	r := Row2{1, 0}
	assert.Equal(1.0, r.Dot(v))
	assert.Equal(Mat2{{1, 0}, {2, 0}}, Outer(v, r))

	m := Mat2{{4, 1}, {1, 3}}
	assert.Equal(4.0, r.QuadForm(m))
	assert.Equal(3.0, Row2{0, 1}.QuadForm(m))
}

func TestSymmetryPSD(t *testing.T) {
	assert := assert.New(t)

	m := Mat2{{2, 1}, {1, 2}}
	assert.True(m.IsSymmetric(0))
	assert.True(m.IsPSD(1e-12))

	vals, err := m.Eigenvalues()
	assert.NoError(err)
	assert.InDeltaSlice([]float64{1, 3}, vals, 1e-12)

	// indefinite
	m = Mat2{{1, 2}, {2, 1}}
	assert.True(m.IsSymmetric(0))
	assert.False(m.IsPSD(1e-12))

	// asymmetric
	m = Mat2{{1, 0.5}, {0, 1}}
	assert.False(m.IsSymmetric(1e-9))
	assert.False(m.IsPSD(1e-9))

	// zero matrix is PSD
	assert.True(Mat2{}.IsPSD(0))

	assert.False(Mat2{{math.NaN(), 0}, {0, 1}}.IsPSD(1e-9))
}

func TestGonumBridge(t *testing.T) {
	assert := assert.New(t)

	m := Mat2{{1, 2}, {3, 4}}
	d := m.Dense()
	r, c := d.Dims()
	assert.Equal(2, r)
	assert.Equal(2, c)
	assert.Equal(3.0, d.At(1, 0))

	back, err := Mat2From(d)
	assert.NoError(err)
	assert.Equal(m, back)

	// Sym uses the upper triangle
	s := m.Sym()
	assert.Equal(2.0, s.At(1, 0))

	_, err = Mat2From(mat.NewDense(3, 2, nil))
	assert.Error(err)

	_, err = Mat2From(nil)
	assert.Error(err)

	v := Vec2{1, 2}
	vb, err := Vec2From(v.Vector())
	assert.NoError(err)
	assert.Equal(v, vb)

	_, err = Vec2From(mat.NewVecDense(3, nil))
	assert.Error(err)

	_, err = Vec2From(nil)
	assert.Error(err)
}
