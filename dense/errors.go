// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// Algorithms return these sentinels (optionally wrapped with an operation tag
// by opErrorf) and tests match them with errors.Is.
//
// ERROR CLASSES:
//   - fatal: ErrBadShape, ErrOutOfRange, ErrNonSquare, ErrDimensionMismatch,
//     ErrNoConvergence. The call produced no usable result.
//   - advisory: singular or rank-deficient input is NOT an error. It is
//     reported through LUFactors.Singular, QRFactors.RankDeficient and
//     Solution.Singular next to a best-effort result.

package dense

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

var (
	// ErrBadShape is returned for negative dimensions, or for a shape an
	// algorithm cannot accept (SVD/QR with rows < cols).
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates a row, column or channel index outside bounds.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("dense: matrix is not square")

	// ErrNoConvergence is returned when SVD exceeds its iteration cap for a
	// singular value. There is no partial answer in that case.
	ErrNoConvergence = errors.New("dense: svd did not converge")

	// ErrUnknownMethod is returned by Solve for an unrecognised Method.
	ErrUnknownMethod = errors.New("dense: unknown solve method")
)

// ErrDimensionMismatch is shared with package vec so one errors.Is check
// covers vectors and matrices.
var ErrDimensionMismatch = vec.ErrDimensionMismatch

// Operation tags for error wrapping.
const (
	opNew          = "NewDense"
	opAt           = "At"
	opSet          = "Set"
	opMul          = "Mul"
	opMulVec       = "MulVec"
	opLU           = "LU"
	opQR           = "QR"
	opSVD          = "SVD"
	opInverse      = "Inverse"
	opSolve        = "Solve"
	opChannel      = "Channel"
	opFromChannels = "FromChannels"
)

// opErrorf wraps err with an operation tag. err must be non-nil.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("dense.%s: %w", tag, err)
}
