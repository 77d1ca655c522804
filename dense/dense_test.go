// SPDX-License-Identifier: MIT

package dense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfield/dense"
	"github.com/katalvlaran/lvfield/vec"
)

func TestNewDense_ShapeValidation(t *testing.T) {
	_, err := dense.NewDense[float64, vec.C1](-1, 2)
	require.ErrorIs(t, err, dense.ErrBadShape)

	m, err := dense.NewDense[float64, vec.C2](0, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 0, r)
	assert.Equal(t, 3, c)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := dense.NewDense[float32, vec.C3](2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, vec.New[float32, vec.C3](1, 2, 3)))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, v.Slice())

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, vec.Vec[float32, vec.C3]{}), dense.ErrOutOfRange)
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := dense.FromRows([][]vec.Vec[float64, vec.C1]{
		{vec.New[float64, vec.C1](1), vec.New[float64, vec.C1](2)},
		{vec.New[float64, vec.C1](3)},
	})
	require.ErrorIs(t, err, dense.ErrBadShape)
	require.NotErrorIs(t, err, dense.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "row 1 has 1 columns, want 2")
}

func TestDense_ResizeZeroes(t *testing.T) {
	m := randDense(t, 1, 2, 2, 0)
	require.NoError(t, m.Resize(3, 1))
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 1, m.Cols())
	for i := 0; i < 3; i++ {
		v, err := m.At(i, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v.LengthSq())
	}
	require.ErrorIs(t, m.Resize(-1, 1), dense.ErrBadShape)
}

func TestDense_CloneIsDeep(t *testing.T) {
	m := randDense(t, 2, 2, 2, 0)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, vec.Fill[float64, vec.C3](42)))
	v, _ := m.At(0, 0)
	assert.NotEqual(t, 42.0, v.At(0))
}

func TestMul_PerChannel(t *testing.T) {
	a := mustRows[vec.C2](t, [][][]float64{
		{{1, 2}, {0, 1}},
		{{0, 3}, {1, 4}},
	})
	b := mustRows[vec.C2](t, [][][]float64{
		{{2, 1}},
		{{3, 1}},
	})
	got := mustMul(t, a, b)
	want := mustRows[vec.C2](t, [][][]float64{
		{{2, 3}},
		{{3, 7}},
	})
	requireClose(t, want, got, 0)

	_, err := dense.Mul(b, b)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestMulVec_MatchesMul(t *testing.T) {
	a := randDense(t, 3, 4, 3, 0)
	x := randVector(4, 3)
	y, err := dense.MulVec(a, x)
	require.NoError(t, err)

	for k := 0; k < 3; k++ {
		ak, err := a.Channel(k)
		require.NoError(t, err)
		xk, _ := x.Plane(k)
		var want mat.VecDense
		want.MulVec(ak, mat.NewVecDense(3, xk))
		yk, _ := y.Plane(k)
		for i := range yk {
			assert.InDelta(t, want.AtVec(i), yk[i], tol)
		}
	}

	_, err = dense.MulVec(a, randVector(5, 4))
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestTranspose(t *testing.T) {
	a := randDense(t, 6, 3, 2, 0)
	at := a.Transpose()
	require.Equal(t, 2, at.Rows())
	require.Equal(t, 3, at.Cols())
	requireClose(t, a, at.Transpose(), 0)
}

func TestChannel_RoundTrip(t *testing.T) {
	a := randDense(t, 7, 3, 3, 0)
	chs := make([]mat.Matrix, 3)
	for k := range chs {
		ch, err := a.Channel(k)
		require.NoError(t, err)
		chs[k] = ch
	}
	back, err := dense.FromChannels[float64, vec.C3](chs...)
	require.NoError(t, err)
	requireClose(t, a, back, 0)

	_, err = a.Channel(3)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = dense.FromChannels[float64, vec.C3](chs[:2]...)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
	_, err = dense.FromChannels[float64, vec.C2](chs[0], mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	assert.PanicsWithValue(t, "dense: WithZeroTolerance: tolerance must be finite and >= 0", func() { dense.WithZeroTolerance(-1) })
	assert.PanicsWithValue(t, "dense: WithMaxSweeps: sweeps must be > 0", func() { dense.WithMaxSweeps(0) })
	assert.PanicsWithValue(t, "dense: WithLogger: logger must not be nil", func() { dense.WithLogger(nil) })
}
