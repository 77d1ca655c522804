// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/katalvlaran/lvfield/vec"
)

// SolveBiCGStab solves A·x = b with the stabilized bi-conjugate gradient
// method, independently per channel. A only needs to be square and
// non-singular; symmetry is not required.
//
// Implementation:
//   - Stage 1: r = b − A·x, r̂ = r, ρ = α = ω = 1, v = p = 0.
//   - Stage 2: per iteration
//     ρ' = ⟨r̂,r⟩, β = (ρ'/ρ)(α/ω), p = r + β(p − ω·v), v = A·p,
//     α = ρ'/⟨r̂,v⟩, s = r − α·v, t = A·s, ω = ⟨t,s⟩/⟨t,t⟩,
//     x += α·p + ω·s, r = s − ω·t.
//   - Stage 3: same termination as SolveCG.
//
// Every division floors its denominator to ±eps. Converged channels are
// frozen (α = ω = 0).
//
// Errors:
//   - ErrNilOperand, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(iters·nnz·C) with two products per iteration, Space O(N·C).
func SolveBiCGStab[T vec.Float, C vec.Arity](a *Matrix[T, C], b, x *vec.Vector[T, C], opts ...Option) (Result[C], error) {
	o := gatherOptions[T](opts...)
	r, err := validate(opBiCGStab, a, b, x)
	if err != nil {
		return Result[C]{}, err
	}
	tr := newTracker[C](o, a.rows)
	if tr.update(0, vec.SumSq(r)) {
		return tr.finish("bicgstab", StatusConverged), nil
	}

	n := a.rows
	rHat := r.Clone()
	p := vec.NewVector[T, C](n)
	v := vec.NewVector[T, C](n)
	s := vec.NewVector[T, C](n)
	t := vec.NewVector[T, C](n)
	one := vec.Fill[float64, C](1)
	rho, alpha, omega := one, one, one

	for it := 1; it <= o.iterations; it++ {
		rhoNext := dot(rHat, r)
		beta := rhoNext.Div(floor(rho, o.zeroTol)).Mul(alpha.Div(floor(omega, o.zeroTol)))
		axpy(p, p, omega.Neg(), v)
		axpy(p, r, beta, p)
		if err = MultiplyVec(a, p, v); err != nil {
			return Result[C]{}, opErrorf(opBiCGStab, err)
		}

		rv := dot(rHat, v)
		alpha = rhoNext.Div(floor(rv, o.zeroTol)).Mul(tr.active)
		axpy(s, r, alpha.Neg(), v)
		if err = MultiplyVec(a, s, t); err != nil {
			return Result[C]{}, opErrorf(opBiCGStab, err)
		}

		ts := dot(t, s)
		tt := vec.SumSq(t)
		omega = ts.Div(floor(tt, o.zeroTol)).Mul(tr.active)
		axpy(x, x, alpha, p)
		axpy(x, x, omega, s)
		axpy(r, s, omega.Neg(), t)

		if tr.update(it, vec.SumSq(r)) {
			return tr.finish("bicgstab", StatusConverged), nil
		}
		rho = rhoNext
	}

	return tr.finish("bicgstab", StatusIterationCap), nil
}
