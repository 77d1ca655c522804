// SPDX-License-Identifier: MIT

package sparse

import "github.com/katalvlaran/lvfield/vec"

// axpy and dot wrap the vec kernels for the solver loops. Every operand there
// is allocated at a.rows or checked by validate, so the kernels cannot fail;
// an error would be a bug in this package and panics.

// axpy sets dst = a + alpha ⊙ b.
func axpy[T vec.Float, C vec.Arity](dst, a *vec.Vector[T, C], alpha vec.Vec[float64, C], b *vec.Vector[T, C]) {
	if err := vec.AddScaledTo(dst, a, alpha, b); err != nil {
		panic(err)
	}
}

// dot returns the per-channel inner product of a and b.
func dot[T vec.Float, C vec.Arity](a, b *vec.Vector[T, C]) vec.Vec[float64, C] {
	d, err := vec.Dot(a, b)
	if err != nil {
		panic(err)
	}
	return d
}
