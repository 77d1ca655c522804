// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfield/vec"
)

// SVDFactors holds A_k = U_k·diag(D_k)·Vt_k for every channel k.
type SVDFactors[T vec.Float, C vec.Arity] struct {
	// U is rows×cols with orthonormal columns.
	U *Dense[T, C]
	// D holds the cols singular values per channel, sorted descending.
	D *vec.Vector[T, C]
	// Vt is cols×cols orthogonal (Vᵀ).
	Vt *Dense[T, C]

	m, n    int
	zeroTol float64
	u, w, v [][]float64 // float64 factors per channel: u m×n, w n, v n×n (V, not Vᵀ)
}

// SVD computes the thin singular value decomposition of an m×n matrix, m ≥ n,
// by Householder bidiagonalization followed by implicitly shifted QR
// (Golub–Reinsch). Each channel is an independent decomposition.
//
// Errors:
//   - ErrBadShape when rows < cols.
//   - ErrNoConvergence when a singular value needs more than MaxSweeps
//     iterations (default 30) in any channel.
//
// Complexity:
//   - Time O(C·m·n²), Space O(C·(m·n + n²)).
func SVD[T vec.Float, C vec.Arity](a *Dense[T, C], opts ...Option) (*SVDFactors[T, C], error) {
	o := gatherOptions(opts...)
	if a.r < a.c {
		return nil, opErrorf(opSVD, fmt.Errorf("%dx%d needs rows >= cols: %w", a.r, a.c, ErrBadShape))
	}
	m, n := a.r, a.c
	nc := vec.Channels[C]()
	f := &SVDFactors[T, C]{
		m: m, n: n,
		zeroTol: o.zeroTol,
		u:       make([][]float64, nc),
		w:       make([][]float64, nc),
		v:       make([][]float64, nc),
	}

	err := forChannels[C](func(k int) error {
		u, w, v, err := svdPlane(a.plane(k), m, n, o.maxSweeps)
		if err != nil {
			return fmt.Errorf("channel %d: %w", k, err)
		}
		f.u[k], f.w[k], f.v[k] = u, w, v
		return nil
	})
	if err != nil {
		o.logger.Warn("svd: no convergence", slog.Int("rows", m), slog.Int("cols", n), slog.Int("max_sweeps", o.maxSweeps))
		return nil, opErrorf(opSVD, err)
	}

	vt := make([][]float64, nc)
	for k := 0; k < nc; k++ {
		vt[k] = transposePlane(f.v[k], n, n)
	}
	f.U = fromPlanes[T, C](m, n, f.u)
	f.D = planesVector[T, C](f.w)
	f.Vt = fromPlanes[T, C](n, n, vt)

	return f, nil
}

// Solve returns x = V·D⁺·Uᵀ·b per channel, the minimum-norm least-squares
// solution. Singular values at or below zeroTol·max(D) are treated as zero.
//
// Errors:
//   - ErrDimensionMismatch when b.Size() != rows.
func (f *SVDFactors[T, C]) Solve(b *vec.Vector[T, C]) (*vec.Vector[T, C], error) {
	if b.Size() != f.m {
		return nil, opErrorf(opSolve, fmt.Errorf("b has %d elements, want %d: %w", b.Size(), f.m, ErrDimensionMismatch))
	}
	bp := vectorPlanes(b)
	xp := make([][]float64, len(bp))
	_ = forChannels[C](func(k int) error {
		u, w, v := f.u[k], f.w[k], f.v[k]
		cut := cutoff(w, f.zeroTol)
		tmp := make([]float64, f.n)
		for j := 0; j < f.n; j++ {
			if w[j] <= cut {
				continue
			}
			var s float64
			for i := 0; i < f.m; i++ {
				s += u[i*f.n+j] * bp[k][i]
			}
			tmp[j] = s / w[j]
		}
		x := make([]float64, f.n)
		for i := 0; i < f.n; i++ {
			var s float64
			for j := 0; j < f.n; j++ {
				s += v[i*f.n+j] * tmp[j]
			}
			x[i] = s
		}
		xp[k] = x
		return nil
	})

	return planesVector[T, C](xp), nil
}

// Singular reports, per channel, whether some singular value falls at or
// below the zero tolerance relative to the largest one.
func (f *SVDFactors[T, C]) Singular() []bool {
	out := make([]bool, len(f.w))
	for k, w := range f.w {
		cut := cutoff(w, f.zeroTol)
		for _, d := range w {
			if d <= cut {
				out[k] = true
				break
			}
		}
	}
	return out
}

// cutoff is the absolute threshold below which a singular value is dropped.
func cutoff(w []float64, zeroTol float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return zeroTol * floats.Max(w)
}

func transposePlane(p []float64, r, c int) []float64 {
	t := make([]float64, len(p))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			t[j*r+i] = p[i*c+j]
		}
	}
	return t
}

// svdPlane decomposes one row-major m×n plane (m ≥ n). It returns U (m×n,
// row-major), the singular values w (descending) and V (n×n, row-major).
func svdPlane(a []float64, m, n, maxSweeps int) (uFlat, w, vFlat []float64, err error) {
	u := make([][]float64, m)
	for i := range u {
		u[i] = a[i*n : (i+1)*n]
	}
	v := make([][]float64, n)
	for i := range v {
		v[i] = make([]float64, n)
	}
	w = make([]float64, n)
	rv1 := make([]float64, n)
	eps := math.Nextafter(1, 2) - 1

	// Householder reduction to bidiagonal form.
	var g, scale, anorm, s, f, h float64
	l := 0
	for i := 0; i < n; i++ {
		l = i + 2
		rv1[i] = scale * g
		g, s, scale = 0, 0, 0
		if i < m {
			for k := i; k < m; k++ {
				scale += math.Abs(u[k][i])
			}
			if scale != 0 {
				for k := i; k < m; k++ {
					u[k][i] /= scale
					s += u[k][i] * u[k][i]
				}
				f = u[i][i]
				g = -math.Copysign(math.Sqrt(s), f)
				h = f*g - s
				u[i][i] = f - g
				for j := l - 1; j < n; j++ {
					s = 0
					for k := i; k < m; k++ {
						s += u[k][i] * u[k][j]
					}
					f = s / h
					for k := i; k < m; k++ {
						u[k][j] += f * u[k][i]
					}
				}
				for k := i; k < m; k++ {
					u[k][i] *= scale
				}
			}
		}
		w[i] = scale * g
		g, s, scale = 0, 0, 0
		if i+1 <= m && i+1 != n {
			for k := l - 1; k < n; k++ {
				scale += math.Abs(u[i][k])
			}
			if scale != 0 {
				for k := l - 1; k < n; k++ {
					u[i][k] /= scale
					s += u[i][k] * u[i][k]
				}
				f = u[i][l-1]
				g = -math.Copysign(math.Sqrt(s), f)
				h = f*g - s
				u[i][l-1] = f - g
				for k := l - 1; k < n; k++ {
					rv1[k] = u[i][k] / h
				}
				for j := l - 1; j < m; j++ {
					s = 0
					for k := l - 1; k < n; k++ {
						s += u[j][k] * u[i][k]
					}
					for k := l - 1; k < n; k++ {
						u[j][k] += s * rv1[k]
					}
				}
				for k := l - 1; k < n; k++ {
					u[i][k] *= scale
				}
			}
		}
		anorm = math.Max(anorm, math.Abs(w[i])+math.Abs(rv1[i]))
	}

	// Accumulate right-hand transformations.
	for i := n - 1; i >= 0; i-- {
		if i < n-1 {
			if g != 0 {
				for j := l; j < n; j++ {
					v[j][i] = (u[i][j] / u[i][l]) / g
				}
				for j := l; j < n; j++ {
					s = 0
					for k := l; k < n; k++ {
						s += u[i][k] * v[k][j]
					}
					for k := l; k < n; k++ {
						v[k][j] += s * v[k][i]
					}
				}
			}
			for j := l; j < n; j++ {
				v[i][j], v[j][i] = 0, 0
			}
		}
		v[i][i] = 1
		g = rv1[i]
		l = i
	}

	// Accumulate left-hand transformations.
	for i := min(m, n) - 1; i >= 0; i-- {
		l = i + 1
		g = w[i]
		for j := l; j < n; j++ {
			u[i][j] = 0
		}
		if g != 0 {
			g = 1 / g
			for j := l; j < n; j++ {
				s = 0
				for k := l; k < m; k++ {
					s += u[k][i] * u[k][j]
				}
				f = (s / u[i][i]) * g
				for k := i; k < m; k++ {
					u[k][j] += f * u[k][i]
				}
			}
			for j := i; j < m; j++ {
				u[j][i] *= g
			}
		} else {
			for j := i; j < m; j++ {
				u[j][i] = 0
			}
		}
		u[i][i]++
	}

	// Diagonalization of the bidiagonal form.
	var c, x, y, z float64
	for k := n - 1; k >= 0; k-- {
		for its := 0; ; its++ {
			flag := true
			nm := 0
			for l = k; l >= 0; l-- {
				nm = l - 1
				if l == 0 || math.Abs(rv1[l]) <= eps*anorm {
					flag = false
					break
				}
				if math.Abs(w[nm]) <= eps*anorm {
					break
				}
			}
			if flag {
				// Cancel rv1[l] when w[l-1] is negligible.
				c, s = 0, 1
				for i := l; i <= k; i++ {
					f = s * rv1[i]
					rv1[i] = c * rv1[i]
					if math.Abs(f) <= eps*anorm {
						break
					}
					g = w[i]
					h = math.Hypot(f, g)
					w[i] = h
					h = 1 / h
					c = g * h
					s = -f * h
					for j := 0; j < m; j++ {
						y = u[j][nm]
						z = u[j][i]
						u[j][nm] = y*c + z*s
						u[j][i] = z*c - y*s
					}
				}
			}
			z = w[k]
			if l == k {
				if z < 0 {
					w[k] = -z
					for j := 0; j < n; j++ {
						v[j][k] = -v[j][k]
					}
				}
				break
			}
			if its >= maxSweeps-1 {
				return nil, nil, nil, fmt.Errorf("singular value %d after %d iterations: %w", k, maxSweeps, ErrNoConvergence)
			}
			// Shift from the bottom 2×2 minor.
			x = w[l]
			nm = k - 1
			y = w[nm]
			g = rv1[nm]
			h = rv1[k]
			f = ((y-z)*(y+z) + (g-h)*(g+h)) / (2 * h * y)
			g = math.Hypot(f, 1)
			f = ((x-z)*(x+z) + h*((y/(f+math.Copysign(g, f)))-h)) / x
			c, s = 1, 1
			for j := l; j <= nm; j++ {
				i := j + 1
				g = rv1[i]
				y = w[i]
				h = s * g
				g = c * g
				z = math.Hypot(f, h)
				rv1[j] = z
				c = f / z
				s = h / z
				f = x*c + g*s
				g = g*c - x*s
				h = y * s
				y *= c
				for jj := 0; jj < n; jj++ {
					x = v[jj][j]
					z = v[jj][i]
					v[jj][j] = x*c + z*s
					v[jj][i] = z*c - x*s
				}
				z = math.Hypot(f, h)
				w[j] = z
				if z != 0 {
					z = 1 / z
					c = f * z
					s = h * z
				}
				f = c*g + s*y
				x = c*y - s*g
				for jj := 0; jj < m; jj++ {
					y = u[jj][j]
					z = u[jj][i]
					u[jj][j] = y*c + z*s
					u[jj][i] = z*c - y*s
				}
			}
			rv1[l] = 0
			rv1[k] = f
			w[k] = x
		}
	}

	return sortSVD(u, w, v, m, n)
}

// sortSVD orders singular values descending, permuting the columns of U and
// V to match, and flattens both to row-major slices.
func sortSVD(u [][]float64, w []float64, v [][]float64, m, n int) (uFlat, wOut, vFlat []float64, err error) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return w[order[a]] > w[order[b]] })

	uFlat = make([]float64, m*n)
	vFlat = make([]float64, n*n)
	wOut = make([]float64, n)
	for dst, src := range order {
		wOut[dst] = w[src]
		for i := 0; i < m; i++ {
			uFlat[i*n+dst] = u[i][src]
		}
		for i := 0; i < n; i++ {
			vFlat[i*n+dst] = v[i][src]
		}
	}

	return uFlat, wOut, vFlat, nil
}
