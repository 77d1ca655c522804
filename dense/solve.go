// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

// Method selects the factorization used by Solve.
type Method int

const (
	// MethodSVD solves through the SVD pseudo-inverse (most robust).
	MethodSVD Method = iota
	// MethodQR solves through Householder QR.
	MethodQR
	// MethodLU solves through LU with partial pivoting (fastest).
	MethodLU
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodSVD:
		return "svd"
	case MethodQR:
		return "qr"
	case MethodLU:
		return "lu"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Solution is the outcome of Solve.
type Solution[T vec.Float, C vec.Arity] struct {
	// X has Cols() elements.
	X *vec.Vector[T, C]
	// Singular is advisory: the chosen factorization met a (near-)zero pivot,
	// diagonal or singular value, and X has 0 along those directions.
	Singular bool
	// NormalEquations is true when A was not square and AᵀA·x = Aᵀb was solved.
	NormalEquations bool
}

// Solve solves A·x = b per channel with the selected factorization.
//
// Implementation:
//   - Stage 1: validate b.Size() == A.Rows().
//   - Stage 2: if A is not square, form AᵀA and Aᵀb (least squares via the
//     normal equations); this happens for every method.
//   - Stage 3: factor with SVD, QR or LU and back-solve.
//
// Errors:
//   - ErrDimensionMismatch, ErrUnknownMethod, ErrNoConvergence (SVD only).
//
// Complexity:
//   - Time O(C·(m·n² + n³)).
func Solve[T vec.Float, C vec.Arity](a *Dense[T, C], b *vec.Vector[T, C], method Method, opts ...Option) (Solution[T, C], error) {
	if b.Size() != a.r {
		return Solution[T, C]{}, opErrorf(opSolve, fmt.Errorf("b has %d elements, A has %d rows: %w", b.Size(), a.r, ErrDimensionMismatch))
	}

	sys, rhs := a, b
	normal := a.r != a.c
	if normal {
		at := a.Transpose()
		var err error
		if sys, err = Mul(at, a); err != nil {
			return Solution[T, C]{}, opErrorf(opSolve, err)
		}
		if rhs, err = MulVec(at, b); err != nil {
			return Solution[T, C]{}, opErrorf(opSolve, err)
		}
	}

	var (
		x        *vec.Vector[T, C]
		singular bool
		err      error
	)
	switch method {
	case MethodSVD:
		var f *SVDFactors[T, C]
		if f, err = SVD(sys, opts...); err != nil {
			return Solution[T, C]{}, opErrorf(opSolve, err)
		}
		for _, s := range f.Singular() {
			singular = singular || s
		}
		x, err = f.Solve(rhs)
	case MethodQR:
		var f *QRFactors[T, C]
		if f, err = QR(sys, opts...); err != nil {
			return Solution[T, C]{}, opErrorf(opSolve, err)
		}
		singular = f.RankDeficient
		x, err = f.Solve(rhs)
	case MethodLU:
		var f *LUFactors[T, C]
		if f, err = LU(sys, opts...); err != nil {
			return Solution[T, C]{}, opErrorf(opSolve, err)
		}
		singular = f.Singular
		x, err = f.Solve(rhs)
	default:
		return Solution[T, C]{}, opErrorf(opSolve, fmt.Errorf("%v: %w", method, ErrUnknownMethod))
	}
	if err != nil {
		return Solution[T, C]{}, err
	}

	return Solution[T, C]{X: x, Singular: singular, NormalEquations: normal}, nil
}

// SolveSVD is Solve with MethodSVD.
func SolveSVD[T vec.Float, C vec.Arity](a *Dense[T, C], b *vec.Vector[T, C], opts ...Option) (Solution[T, C], error) {
	return Solve(a, b, MethodSVD, opts...)
}

// SolveQR is Solve with MethodQR.
func SolveQR[T vec.Float, C vec.Arity](a *Dense[T, C], b *vec.Vector[T, C], opts ...Option) (Solution[T, C], error) {
	return Solve(a, b, MethodQR, opts...)
}

// SolveLU is Solve with MethodLU.
func SolveLU[T vec.Float, C vec.Arity](a *Dense[T, C], b *vec.Vector[T, C], opts ...Option) (Solution[T, C], error) {
	return Solve(a, b, MethodLU, opts...)
}
