// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvfield/vec"
)

// LUFactors holds P_k·A_k = L_k·U_k for every channel k.
type LUFactors[T vec.Float, C vec.Arity] struct {
	// L is unit lower triangular, U upper triangular.
	L, U *Dense[T, C]
	// Pivots[k][i] is the row of A that became row i of P_k·A for channel k.
	Pivots [][]int
	// Singular is true when any channel met a pivot with magnitude at or
	// below the zero tolerance. L and U are still returned.
	Singular bool
	// SingularChannels lists the flagged channels in ascending order.
	SingularChannels []int

	n       int
	zeroTol float64
	lu      [][]float64 // packed float64 factors per channel (L strictly below diag)
	sing    []bool
}

// LU factorizes a square matrix with partial (row) pivoting, per channel.
//
// Implementation:
//   - Stage 1: validate square shape; copy each channel to float64.
//   - Stage 2: per channel, for k=0..n-1 pick the largest |a[i,k]| (i ≥ k),
//     swap rows, then eliminate below the pivot.
//   - Stage 3: a pivot with |p| ≤ zeroTol marks the channel singular and its
//     column is skipped, so no division by a (near-)zero pivot happens.
//
// Errors:
//   - ErrNonSquare.
//
// Complexity:
//   - Time O(C·n³), Space O(C·n²).
func LU[T vec.Float, C vec.Arity](a *Dense[T, C], opts ...Option) (*LUFactors[T, C], error) {
	o := gatherOptions(opts...)
	if a.r != a.c {
		return nil, opErrorf(opLU, fmt.Errorf("%dx%d: %w", a.r, a.c, ErrNonSquare))
	}
	n := a.r
	nc := vec.Channels[C]()
	f := &LUFactors[T, C]{
		Pivots:  make([][]int, nc),
		n:       n,
		zeroTol: o.zeroTol,
		lu:      make([][]float64, nc),
		sing:    make([]bool, nc),
	}

	_ = forChannels[C](func(k int) error {
		f.lu[k], f.Pivots[k], f.sing[k] = luPlane(a.plane(k), n, o.zeroTol)
		return nil
	})

	lPlanes := make([][]float64, nc)
	uPlanes := make([][]float64, nc)
	for k := 0; k < nc; k++ {
		lPlanes[k], uPlanes[k] = splitLU(f.lu[k], n)
		if f.sing[k] {
			f.Singular = true
			f.SingularChannels = append(f.SingularChannels, k)
		}
	}
	f.L = fromPlanes[T, C](n, n, lPlanes)
	f.U = fromPlanes[T, C](n, n, uPlanes)

	if f.Singular {
		o.logger.Debug("lu: singular pivot", slog.Int("n", n), slog.Any("channels", f.SingularChannels))
	}

	return f, nil
}

// luPlane factorizes one row-major n×n plane in place.
func luPlane(a []float64, n int, zeroTol float64) ([]float64, []int, bool) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	singular := false
	for k := 0; k < n; k++ {
		p := k
		best := math.Abs(a[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(a[i*n+k]); v > best {
				best, p = v, i
			}
		}
		if best <= zeroTol {
			// Column is numerically zero below the diagonal: no elimination.
			singular = true
			for i := k + 1; i < n; i++ {
				a[i*n+k] = 0
			}
			continue
		}
		if p != k {
			rowK, rowP := a[k*n:(k+1)*n], a[p*n:(p+1)*n]
			for j := range rowK {
				rowK[j], rowP[j] = rowP[j], rowK[j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		pivot := a[k*n+k]
		for i := k + 1; i < n; i++ {
			l := a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return a, perm, singular
}

// splitLU unpacks the combined factor into unit-lower L and upper U.
func splitLU(lu []float64, n int) (l, u []float64) {
	l = make([]float64, n*n)
	u = make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case j < i:
				l[i*n+j] = lu[i*n+j]
			case j == i:
				l[i*n+j] = 1
				u[i*n+j] = lu[i*n+j]
			default:
				u[i*n+j] = lu[i*n+j]
			}
		}
	}
	return l, u
}

// Solve returns x with A·x = b using the stored factors. Components along a
// zero pivot are set to 0 rather than divided by it.
//
// Errors:
//   - ErrDimensionMismatch when b.Size() != n.
func (f *LUFactors[T, C]) Solve(b *vec.Vector[T, C]) (*vec.Vector[T, C], error) {
	if b.Size() != f.n {
		return nil, opErrorf(opSolve, fmt.Errorf("b has %d elements, want %d: %w", b.Size(), f.n, ErrDimensionMismatch))
	}
	bp := vectorPlanes(b)
	xp := make([][]float64, len(bp))
	_ = forChannels[C](func(k int) error {
		xp[k] = luSolvePlane(f.lu[k], f.Pivots[k], bp[k], f.n, f.zeroTol)
		return nil
	})

	return planesVector[T, C](xp), nil
}

func luSolvePlane(lu []float64, perm []int, b []float64, n int, zeroTol float64) []float64 {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		s := b[perm[i]]
		for j := 0; j < i; j++ {
			s -= lu[i*n+j] * y[j]
		}
		y[i] = s
	}
	return backSubstitute(lu, y, n, n, zeroTol)
}

// backSubstitute solves the upper-triangular system held in the leading
// n×n block of a row-major matrix with `stride` columns.
func backSubstitute(u []float64, y []float64, n, stride int, zeroTol float64) []float64 {
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		d := u[i*stride+i]
		if math.Abs(d) <= zeroTol {
			x[i] = 0
			continue
		}
		s := y[i]
		for j := i + 1; j < n; j++ {
			s -= u[i*stride+j] * x[j]
		}
		x[i] = s / d
	}
	return x
}
