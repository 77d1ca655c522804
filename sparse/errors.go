// SPDX-License-Identifier: MIT
// Package sparse: sentinel errors.
// Structural problems (bad shape, out-of-range entry, size mismatch) are
// fatal and returned as errors. Hitting the iteration cap is NOT an error: it
// is reported through Result.Status next to the best iterate found.

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

var (
	// ErrBadShape indicates negative dimensions.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNilOperand indicates a nil matrix or vector argument.
	ErrNilOperand = errors.New("sparse: nil operand")
)

// ErrDimensionMismatch is shared with package vec.
var ErrDimensionMismatch = vec.ErrDimensionMismatch

// Operation tags for error wrapping.
const (
	opNew       = "NewMatrix"
	opAppend    = "Append"
	opResizeRow = "ResizeRow"
	opMultiply  = "MultiplyVec"
	opFromDense = "FromDense"
	opCG        = "SolveCG"
	opBiCGStab  = "SolveBiCGStab"
)

func opErrorf(tag string, err error) error {
	return fmt.Errorf("sparse.%s: %w", tag, err)
}
