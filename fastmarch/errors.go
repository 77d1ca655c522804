// SPDX-License-Identifier: MIT

package fastmarch

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

var (
	// ErrEmptyGrid is returned for a nil grid or one with no cells.
	ErrEmptyGrid = errors.New("fastmarch: empty grid")

	// ErrBadShape indicates negative grid dimensions, or data whose length
	// does not match them.
	ErrBadShape = errors.New("fastmarch: invalid grid shape")
)

// ErrDimensionMismatch is returned when the output grid of SolveInto has a
// different shape from the input. It is shared with package vec.
var ErrDimensionMismatch = vec.ErrDimensionMismatch

const (
	opNewGrid  = "NewGrid"
	opGridFrom = "GridFrom"
	opSolve    = "Solve"
)

func opErrorf(tag string, err error) error {
	return fmt.Errorf("fastmarch.%s: %w", tag, err)
}
