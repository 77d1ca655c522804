// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

// validate checks a square system and computes r = b − A·x.
func validate[T vec.Float, C vec.Arity](tag string, a *Matrix[T, C], b, x *vec.Vector[T, C]) (*vec.Vector[T, C], error) {
	if a == nil || b == nil || x == nil {
		return nil, opErrorf(tag, ErrNilOperand)
	}
	if a.rows != a.cols {
		return nil, opErrorf(tag, fmt.Errorf("%dx%d matrix is not square: %w", a.rows, a.cols, ErrDimensionMismatch))
	}
	if b.Size() != a.rows {
		return nil, opErrorf(tag, fmt.Errorf("b has %d elements, want %d: %w", b.Size(), a.rows, ErrDimensionMismatch))
	}
	if x.Size() != a.cols {
		return nil, opErrorf(tag, fmt.Errorf("x has %d elements, want %d: %w", x.Size(), a.cols, ErrDimensionMismatch))
	}
	r := vec.NewVector[T, C](a.rows)
	if err := MultiplyVec(a, x, r); err != nil {
		return nil, opErrorf(tag, err)
	}
	if err := vec.SubTo(r, b, r); err != nil {
		return nil, opErrorf(tag, err)
	}

	return r, nil
}

// SolveCG solves A·x = b with the conjugate gradient method, independently per
// channel. A must be symmetric positive definite in every channel. x holds the
// initial guess on entry and the last iterate on return.
//
// Implementation:
//   - Stage 1: r = b − A·x, p = r; return at once if already converged.
//   - Stage 2: per iteration Ap = A·p, α = |r|²/⟨p,Ap⟩, x += α·p,
//     r −= α·Ap, then β = |r_new|²/|r|², p = r + β·p.
//   - Stage 3: stop when Σr²/N < tolerance in every channel, or at the cap.
//
// Behavior highlights:
//   - Denominators smaller than the zero tolerance are floored to ±eps.
//   - A channel that converges stops moving (α = 0) while the others go on.
//   - Reaching the cap is reported by Result.Status, not by an error.
//
// Errors:
//   - ErrNilOperand, ErrDimensionMismatch (non-square A, or b/x size).
//
// Complexity:
//   - Time O(iters·nnz·C), Space O(N·C).
func SolveCG[T vec.Float, C vec.Arity](a *Matrix[T, C], b, x *vec.Vector[T, C], opts ...Option) (Result[C], error) {
	o := gatherOptions[T](opts...)
	r, err := validate(opCG, a, b, x)
	if err != nil {
		return Result[C]{}, err
	}
	tr := newTracker[C](o, a.rows)
	rr := vec.SumSq(r)
	if tr.update(0, rr) {
		return tr.finish("cg", StatusConverged), nil
	}

	p := r.Clone()
	ap := vec.NewVector[T, C](a.rows)
	for it := 1; it <= o.iterations; it++ {
		if err = MultiplyVec(a, p, ap); err != nil {
			return Result[C]{}, opErrorf(opCG, err)
		}
		pap := dot(p, ap)
		alpha := rr.Div(floor(pap, o.zeroTol)).Mul(tr.active)
		axpy(x, x, alpha, p)
		axpy(r, r, alpha.Neg(), ap)

		next := vec.SumSq(r)
		if tr.update(it, next) {
			return tr.finish("cg", StatusConverged), nil
		}
		beta := next.Div(floor(rr, o.zeroTol)).Mul(tr.active)
		axpy(p, r, beta, p)
		rr = next
	}

	return tr.finish("cg", StatusIterationCap), nil
}
