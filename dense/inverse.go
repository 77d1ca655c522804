// SPDX-License-Identifier: MIT

package dense

import (
	"github.com/katalvlaran/lvfield/vec"
)

// Inverse returns the Moore–Penrose pseudo-inverse A⁺ = V·D⁺·Uᵀ per channel.
// For a square, well-conditioned A this is A⁻¹.
//
// Behavior highlights:
//   - Singular values at or below zeroTol·max(D) are treated as zero: the
//     ill-conditioned direction is dropped instead of inverted to a huge value.
//   - rows < cols is handled through (Aᵀ)⁺ᵀ, so any shape is accepted.
//
// Errors:
//   - ErrNoConvergence from SVD.
//
// Complexity:
//   - Time O(C·m·n²), Space O(C·m·n).
func Inverse[T vec.Float, C vec.Arity](a *Dense[T, C], opts ...Option) (*Dense[T, C], error) {
	if a.r < a.c {
		inv, err := Inverse(a.Transpose(), opts...)
		if err != nil {
			return nil, err
		}
		return inv.Transpose(), nil
	}

	f, err := SVD(a, opts...)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	m, n := f.m, f.n
	planes := make([][]float64, vec.Channels[C]())
	_ = forChannels[C](func(k int) error {
		u, w, v := f.u[k], f.w[k], f.v[k]
		cut := cutoff(w, f.zeroTol)
		p := make([]float64, n*m) // n×m result
		for j := 0; j < n; j++ {
			if w[j] <= cut {
				continue
			}
			inv := 1 / w[j]
			for r := 0; r < n; r++ {
				vr := v[r*n+j] * inv
				if vr == 0 {
					continue
				}
				for c := 0; c < m; c++ {
					p[r*m+c] += vr * u[c*n+j]
				}
			}
		}
		planes[k] = p
		return nil
	})

	return fromPlanes[T, C](n, m, planes), nil
}
