// SPDX-License-Identifier: MIT
// Package vec: elementwise kernels and per-channel reductions over Vector.
//
// Purpose:
//   - Lift Vec arithmetic to whole vectors through Transform/Transform2.
//   - Provide the fused kernels the iterative solvers need (AddScaledTo, Dot).
//
// Determinism & Policy:
//   - Elementwise kernels write dst[i] from a[i], b[i] only, so dst may alias
//     either operand.
//   - Reductions sum per chunk in float64, then combine chunk partials in chunk
//     order. The result does not depend on goroutine scheduling.
//   - Size checks run before any write; on error dst is untouched.

package vec

import (
	"math"

	"github.com/katalvlaran/lvfield/internal/par"
)

// ParallelGrain is the chunk length for data-parallel kernels. Vectors no
// longer than this run on the calling goroutine.
const ParallelGrain = 2048

// Transform sets dst[i] = fn(a[i]) for every i.
//
// Errors:
//   - ErrNilVector when an operand is nil.
//   - ErrDimensionMismatch when dst.Size() != a.Size().
//
// Complexity: O(n) time, no allocation.
func Transform[T Float, C Arity](dst, a *Vector[T, C], fn func(Vec[T, C]) Vec[T, C]) error {
	if dst == nil || a == nil {
		return opErrorf(opTransform, ErrNilVector)
	}
	if dst.Size() != a.Size() {
		return mismatch(opTransform, a.Size(), dst.Size())
	}

	return par.For(a.Size(), ParallelGrain, func(_, lo, hi int) error {
		for i := lo; i < hi; i++ {
			dst.data[i] = fn(a.data[i])
		}
		return nil
	})
}

// Transform2 sets dst[i] = fn(a[i], b[i]) for every i.
// All three vectors must have the same Size().
//
// Complexity: O(n) time, no allocation.
func Transform2[T Float, C Arity](dst, a, b *Vector[T, C], fn func(Vec[T, C], Vec[T, C]) Vec[T, C]) error {
	return transform2(opTransform2, dst, a, b, fn)
}

func transform2[T Float, C Arity](tag string, dst, a, b *Vector[T, C], fn func(Vec[T, C], Vec[T, C]) Vec[T, C]) error {
	if dst == nil || a == nil || b == nil {
		return opErrorf(tag, ErrNilVector)
	}
	if a.Size() != b.Size() {
		return mismatch(tag, b.Size(), a.Size())
	}
	if dst.Size() != a.Size() {
		return mismatch(tag, dst.Size(), a.Size())
	}

	return par.For(a.Size(), ParallelGrain, func(_, lo, hi int) error {
		for i := lo; i < hi; i++ {
			dst.data[i] = fn(a.data[i], b.data[i])
		}
		return nil
	})
}

// AddTo sets dst = a + b.
func AddTo[T Float, C Arity](dst, a, b *Vector[T, C]) error {
	return transform2(opAddTo, dst, a, b, Vec[T, C].Add)
}

// SubTo sets dst = a - b.
func SubTo[T Float, C Arity](dst, a, b *Vector[T, C]) error {
	return transform2(opSubTo, dst, a, b, Vec[T, C].Sub)
}

// Add returns a fresh a + b.
func Add[T Float, C Arity](a, b *Vector[T, C]) (*Vector[T, C], error) {
	if a == nil || b == nil {
		return nil, opErrorf(opAddTo, ErrNilVector)
	}
	dst := NewVector[T, C](a.Size())
	if err := AddTo(dst, a, b); err != nil {
		return nil, err
	}

	return dst, nil
}

// Sub returns a fresh a - b.
func Sub[T Float, C Arity](a, b *Vector[T, C]) (*Vector[T, C], error) {
	if a == nil || b == nil {
		return nil, opErrorf(opSubTo, ErrNilVector)
	}
	dst := NewVector[T, C](a.Size())
	if err := SubTo(dst, a, b); err != nil {
		return nil, err
	}

	return dst, nil
}

// ScaleTo sets dst[i] = s ⊙ a[i], with a separate factor per channel.
func ScaleTo[T Float, C Arity](dst, a *Vector[T, C], s Vec[float64, C]) error {
	if dst == nil || a == nil {
		return opErrorf(opScaleTo, ErrNilVector)
	}
	if dst.Size() != a.Size() {
		return mismatch(opScaleTo, a.Size(), dst.Size())
	}
	nc := Channels[C]()

	return par.For(a.Size(), ParallelGrain, func(_, lo, hi int) error {
		var r Vec[T, C]
		for i := lo; i < hi; i++ {
			for k := 0; k < nc; k++ {
				r.c[k] = T(s.c[k] * float64(a.data[i].c[k]))
			}
			dst.data[i] = r
		}
		return nil
	})
}

// AddScaledTo sets dst = a + alpha ⊙ b, the per-channel axpy used by the
// Krylov solvers. The product is formed in float64 and rounded once to T.
//
// Implementation:
//   - Stage 1: validate non-nil and equal sizes.
//   - Stage 2: chunked loop; per element and channel dst = T(a + alpha*b).
//
// Notes:
//   - dst may alias a or b.
//
// Complexity: O(n·C) time, no allocation.
func AddScaledTo[T Float, C Arity](dst, a *Vector[T, C], alpha Vec[float64, C], b *Vector[T, C]) error {
	if dst == nil || a == nil || b == nil {
		return opErrorf(opAddScaledTo, ErrNilVector)
	}
	if a.Size() != b.Size() {
		return mismatch(opAddScaledTo, b.Size(), a.Size())
	}
	if dst.Size() != a.Size() {
		return mismatch(opAddScaledTo, dst.Size(), a.Size())
	}
	nc := Channels[C]()

	return par.For(a.Size(), ParallelGrain, func(_, lo, hi int) error {
		var r Vec[T, C]
		for i := lo; i < hi; i++ {
			av, bv := a.data[i], b.data[i]
			for k := 0; k < nc; k++ {
				r.c[k] = T(float64(av.c[k]) + alpha.c[k]*float64(bv.c[k]))
			}
			dst.data[i] = r
		}
		return nil
	})
}

// reduce folds every chunk of [0,n) with fn into a float64 partial and sums
// the partials in chunk order.
func reduce[C Arity](n int, fn func(lo, hi int) Vec[float64, C]) Vec[float64, C] {
	partials := make([]Vec[float64, C], par.Chunks(n, ParallelGrain))
	_ = par.For(n, ParallelGrain, func(chunk, lo, hi int) error {
		partials[chunk] = fn(lo, hi)
		return nil
	})
	var total Vec[float64, C]
	for _, p := range partials {
		total = total.Add(p)
	}

	return total
}

// Dot returns the per-channel inner product Σ a[i]_k · b[i]_k.
//
// Errors:
//   - ErrNilVector, ErrDimensionMismatch.
//
// Complexity: O(n·C), one small allocation for chunk partials.
func Dot[T Float, C Arity](a, b *Vector[T, C]) (Vec[float64, C], error) {
	if a == nil || b == nil {
		return Vec[float64, C]{}, opErrorf(opDot, ErrNilVector)
	}
	if a.Size() != b.Size() {
		return Vec[float64, C]{}, mismatch(opDot, b.Size(), a.Size())
	}
	nc := Channels[C]()

	return reduce[C](a.Size(), func(lo, hi int) Vec[float64, C] {
		var s Vec[float64, C]
		for i := lo; i < hi; i++ {
			av, bv := a.data[i], b.data[i]
			for k := 0; k < nc; k++ {
				s.c[k] += float64(av.c[k]) * float64(bv.c[k])
			}
		}
		return s
	}), nil
}

// SumSq returns the per-channel sum of squares.
func SumSq[T Float, C Arity](a *Vector[T, C]) Vec[float64, C] {
	d, _ := Dot(a, a)
	return d
}

// Sum returns the per-channel sum of elements.
func Sum[T Float, C Arity](a *Vector[T, C]) Vec[float64, C] {
	nc := Channels[C]()
	return reduce[C](a.Size(), func(lo, hi int) Vec[float64, C] {
		var s Vec[float64, C]
		for i := lo; i < hi; i++ {
			for k := 0; k < nc; k++ {
				s.c[k] += float64(a.data[i].c[k])
			}
		}
		return s
	})
}

// MaxAbs returns the per-channel infinity norm. Max is order-independent, so
// the chunk combine is exact.
func MaxAbs[T Float, C Arity](a *Vector[T, C]) Vec[float64, C] {
	nc := Channels[C]()
	partials := make([]Vec[float64, C], par.Chunks(a.Size(), ParallelGrain))
	_ = par.For(a.Size(), ParallelGrain, func(chunk, lo, hi int) error {
		var m Vec[float64, C]
		for i := lo; i < hi; i++ {
			for k := 0; k < nc; k++ {
				m.c[k] = math.Max(m.c[k], math.Abs(float64(a.data[i].c[k])))
			}
		}
		partials[chunk] = m
		return nil
	})
	var total Vec[float64, C]
	for _, p := range partials {
		total = total.Max(p)
	}

	return total
}
