// SPDX-License-Identifier: MIT
// Package dense_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures (seeded random fills).
//   - Compare matrices channel by channel with an absolute tolerance.

package dense_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfield/dense"
	"github.com/katalvlaran/lvfield/vec"
)

const tol = 1e-9

type m3 = dense.Dense[float64, vec.C3]

// mustRows builds a matrix from per-channel scalar rows: rows[i][j] holds the
// C values of element (i, j).
func mustRows[C vec.Arity](t testing.TB, rows [][][]float64) *dense.Dense[float64, C] {
	t.Helper()
	out := make([][]vec.Vec[float64, C], len(rows))
	for i, row := range rows {
		out[i] = make([]vec.Vec[float64, C], len(row))
		for j, v := range row {
			out[i][j] = vec.New[float64, C](v...)
		}
	}
	m, err := dense.FromRows(out)
	require.NoError(t, err)

	return m
}

// randDense fills an r×c matrix with values in [-1, 1). When boost > 0 it is
// added to the diagonal in every channel to keep the matrix well conditioned.
func randDense(t testing.TB, seed int64, r, c int, boost float64) *m3 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := dense.NewDense[float64, vec.C3](r, c)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := vec.New[float64, vec.C3](2*rng.Float64()-1, 2*rng.Float64()-1, 2*rng.Float64()-1)
			if i == j {
				v = v.Add(vec.Fill[float64, vec.C3](boost))
			}
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

func randVector(seed int64, n int) *vec.Vector[float64, vec.C3] {
	rng := rand.New(rand.NewSource(seed))
	x := vec.NewVector[float64, vec.C3](n)
	for i := 0; i < n; i++ {
		x.Set(i, vec.New[float64, vec.C3](2*rng.Float64()-1, 2*rng.Float64()-1, 2*rng.Float64()-1))
	}

	return x
}

// requireClose asserts equal shapes and |want-got| ≤ eps in every channel.
func requireClose[C vec.Arity](t testing.TB, want, got *dense.Dense[float64, C], eps float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, err := want.At(i, j)
			require.NoError(t, err)
			g, err := got.At(i, j)
			require.NoError(t, err)
			for k := 0; k < w.Len(); k++ {
				require.InDeltaf(t, w.At(k), g.At(k), eps, "[%d,%d] channel %d", i, j, k)
			}
		}
	}
}

func requireVectorClose[C vec.Arity](t testing.TB, want, got *vec.Vector[float64, C], eps float64) {
	t.Helper()
	require.Equal(t, want.Size(), got.Size())
	for i := 0; i < want.Size(); i++ {
		w, g := want.At(i), got.At(i)
		for k := 0; k < w.Len(); k++ {
			require.InDeltaf(t, w.At(k), g.At(k), eps, "[%d] channel %d", i, k)
		}
	}
}

func mustMul[C vec.Arity](t testing.TB, a, b *dense.Dense[float64, C]) *dense.Dense[float64, C] {
	t.Helper()
	p, err := dense.Mul(a, b)
	require.NoError(t, err)

	return p
}

func mustIdentity(t testing.TB, n int) *m3 {
	t.Helper()
	id, err := dense.Identity[float64, vec.C3](n)
	require.NoError(t, err)

	return id
}
