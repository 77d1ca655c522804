// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvfield/vec"
)

// QRFactors holds A_k = Q_k·R_k for every channel k.
type QRFactors[T vec.Float, C vec.Arity] struct {
	// Q is rows×rows orthogonal; R is rows×cols upper triangular.
	Q, R *Dense[T, C]
	// RankDeficient is true when some |R[i,i]| (i < cols) is at or below the
	// zero tolerance in any channel.
	RankDeficient     bool
	DeficientChannels []int

	m, n    int
	zeroTol float64
	q, r    [][]float64
}

// QR computes a Householder QR factorization of an m×n matrix, m ≥ n.
//
// Implementation:
//   - Stage 1: validate m ≥ n; copy each channel to float64, Q := I.
//   - Stage 2: for k=0..n-1 build the reflector v that zeroes R[k+1:,k],
//     apply H = I − 2vvᵀ/(vᵀv) to R from the left and to Q from the right.
//   - Stage 3: clear round-off below the diagonal, flag tiny diagonals.
//
// Errors:
//   - ErrBadShape when rows < cols.
//
// Complexity:
//   - Time O(C·m²·n), Space O(C·m²).
func QR[T vec.Float, C vec.Arity](a *Dense[T, C], opts ...Option) (*QRFactors[T, C], error) {
	o := gatherOptions(opts...)
	if a.r < a.c {
		return nil, opErrorf(opQR, fmt.Errorf("%dx%d needs rows >= cols: %w", a.r, a.c, ErrBadShape))
	}
	m, n := a.r, a.c
	nc := vec.Channels[C]()
	f := &QRFactors[T, C]{
		m: m, n: n,
		zeroTol: o.zeroTol,
		q:       make([][]float64, nc),
		r:       make([][]float64, nc),
	}
	deficient := make([]bool, nc)

	_ = forChannels[C](func(k int) error {
		f.q[k], f.r[k] = qrPlane(a.plane(k), m, n)
		for i := 0; i < n; i++ {
			if math.Abs(f.r[k][i*n+i]) <= o.zeroTol {
				deficient[k] = true
				break
			}
		}
		return nil
	})

	for k := 0; k < nc; k++ {
		if deficient[k] {
			f.RankDeficient = true
			f.DeficientChannels = append(f.DeficientChannels, k)
		}
	}
	f.Q = fromPlanes[T, C](m, m, f.q)
	f.R = fromPlanes[T, C](m, n, f.r)

	if f.RankDeficient {
		o.logger.Debug("qr: rank deficient", slog.Int("rows", m), slog.Int("cols", n), slog.Any("channels", f.DeficientChannels))
	}

	return f, nil
}

// qrPlane factorizes one row-major m×n plane. It returns Q (m×m) and R (m×n).
func qrPlane(r []float64, m, n int) (q, rr []float64) {
	q = make([]float64, m*m)
	for i := 0; i < m; i++ {
		q[i*m+i] = 1
	}
	v := make([]float64, m)

	for k := 0; k < n && k < m-1; k++ {
		var norm float64
		for i := k; i < m; i++ {
			norm += r[i*n+k] * r[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha := -math.Copysign(norm, r[k*n+k])
		for i := k; i < m; i++ {
			v[i] = r[i*n+k]
		}
		v[k] -= alpha
		var beta float64
		for i := k; i < m; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau := 2 / beta

		// R := H·R on columns k..n-1.
		for j := k; j < n; j++ {
			var s float64
			for i := k; i < m; i++ {
				s += v[i] * r[i*n+j]
			}
			s *= tau
			for i := k; i < m; i++ {
				r[i*n+j] -= s * v[i]
			}
		}
		// Q := Q·H.
		for i := 0; i < m; i++ {
			row := q[i*m : (i+1)*m]
			var s float64
			for j := k; j < m; j++ {
				s += row[j] * v[j]
			}
			s *= tau
			for j := k; j < m; j++ {
				row[j] -= s * v[j]
			}
		}
	}

	for i := 1; i < m; i++ {
		for j := 0; j < min(i, n); j++ {
			r[i*n+j] = 0
		}
	}

	return q, r
}

// Solve returns the least-squares x minimizing |A·x − b| per channel:
// x = R⁻¹·(Qᵀb)[:n]. Components along a zero diagonal of R are set to 0.
//
// Errors:
//   - ErrDimensionMismatch when b.Size() != rows.
func (f *QRFactors[T, C]) Solve(b *vec.Vector[T, C]) (*vec.Vector[T, C], error) {
	if b.Size() != f.m {
		return nil, opErrorf(opSolve, fmt.Errorf("b has %d elements, want %d: %w", b.Size(), f.m, ErrDimensionMismatch))
	}
	bp := vectorPlanes(b)
	xp := make([][]float64, len(bp))
	_ = forChannels[C](func(k int) error {
		q := f.q[k]
		y := make([]float64, f.n)
		for j := 0; j < f.n; j++ {
			var s float64
			for i := 0; i < f.m; i++ {
				s += q[i*f.m+j] * bp[k][i]
			}
			y[j] = s
		}
		xp[k] = backSubstitute(f.r[k], y, f.n, f.n, f.zeroTol)
		return nil
	})

	return planesVector[T, C](xp), nil
}
