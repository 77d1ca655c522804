// SPDX-License-Identifier: MIT

package contour

import (
	"errors"
	"fmt"
)

var (
	// ErrNilGrid is returned when Extract is given a nil grid.
	ErrNilGrid = errors.New("contour: nil grid")

	// ErrNotImage is returned for a grid with more than one slice.
	ErrNotImage = errors.New("contour: grid is not an image")
)

const opExtract = "Extract"

func opErrorf(tag string, err error) error {
	return fmt.Errorf("contour.%s: %w", tag, err)
}
