// SPDX-License-Identifier: MIT

package fastmarch

import (
	"fmt"

	"github.com/katalvlaran/lvfield/vec"
)

// Grid is a rows×cols×slices scalar field with unit spacing. A grid with one
// slice is an image; cell (i, j, k) lives at offset (k·rows + i)·cols + j.
type Grid[T vec.Float] struct {
	rows, cols, slices int
	data               []T
}

// NewGrid allocates a zero grid. Zero extents are allowed (an empty grid);
// negative ones are not.
func NewGrid[T vec.Float](rows, cols, slices int) (*Grid[T], error) {
	if rows < 0 || cols < 0 || slices < 0 {
		return nil, opErrorf(opNewGrid, fmt.Errorf("%dx%dx%d: %w", rows, cols, slices, ErrBadShape))
	}

	return &Grid[T]{rows: rows, cols: cols, slices: slices, data: make([]T, rows*cols*slices)}, nil
}

// NewImage allocates a zero rows×cols grid with a single slice.
func NewImage[T vec.Float](rows, cols int) (*Grid[T], error) {
	return NewGrid[T](rows, cols, 1)
}

// GridFrom copies data, laid out as described on Grid, into a new grid.
func GridFrom[T vec.Float](rows, cols, slices int, data []T) (*Grid[T], error) {
	g, err := NewGrid[T](rows, cols, slices)
	if err != nil {
		return nil, err
	}
	if len(data) != len(g.data) {
		return nil, opErrorf(opGridFrom, fmt.Errorf("%d values for %dx%dx%d: %w", len(data), rows, cols, slices, ErrBadShape))
	}
	copy(g.data, data)

	return g, nil
}

// Dims returns (rows, cols, slices).
func (g *Grid[T]) Dims() (rows, cols, slices int) { return g.rows, g.cols, g.slices }

// Len returns the number of cells.
func (g *Grid[T]) Len() int { return len(g.data) }

// Index returns the flat offset of (i, j, k). It does not bounds-check.
func (g *Grid[T]) Index(i, j, k int) int { return (k*g.rows+i)*g.cols + j }

// Coord is the inverse of Index.
func (g *Grid[T]) Coord(idx int) (i, j, k int) {
	j = idx % g.cols
	idx /= g.cols
	return idx % g.rows, j, idx / g.rows
}

// InBounds reports whether (i, j, k) is a cell of g.
func (g *Grid[T]) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.rows && j >= 0 && j < g.cols && k >= 0 && k < g.slices
}

// At returns the value at (i, j, k). It panics when out of range.
func (g *Grid[T]) At(i, j, k int) T {
	if !g.InBounds(i, j, k) {
		panic(fmt.Sprintf("fastmarch: At(%d,%d,%d) out of range %dx%dx%d", i, j, k, g.rows, g.cols, g.slices))
	}
	return g.data[g.Index(i, j, k)]
}

// Set stores v at (i, j, k). It panics when out of range.
func (g *Grid[T]) Set(i, j, k int, v T) {
	if !g.InBounds(i, j, k) {
		panic(fmt.Sprintf("fastmarch: Set(%d,%d,%d) out of range %dx%dx%d", i, j, k, g.rows, g.cols, g.slices))
	}
	g.data[g.Index(i, j, k)] = v
}

// Data exposes the backing slice.
func (g *Grid[T]) Data() []T { return g.data }

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{rows: g.rows, cols: g.cols, slices: g.slices, data: make([]T, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Dimensionality is the number of axes with extent > 1.
func (g *Grid[T]) Dimensionality() int {
	n := 0
	for _, e := range [3]int{g.rows, g.cols, g.slices} {
		if e > 1 {
			n++
		}
	}
	return n
}

// axis describes one grid direction: its extent and flat stride.
type axis struct {
	extent, stride int
}

// axes lists the directions that have neighbours (extent > 1), in the order
// slices, rows, cols.
func (g *Grid[T]) axes() []axis {
	all := [3]axis{
		{extent: g.slices, stride: g.rows * g.cols},
		{extent: g.rows, stride: g.cols},
		{extent: g.cols, stride: 1},
	}
	out := make([]axis, 0, 3)
	for _, a := range all {
		if a.extent > 1 {
			out = append(out, a)
		}
	}
	return out
}

// neighbours returns the flat offsets of the two cells next to idx along a,
// or -1 for a side that falls outside the grid. pos is idx's coordinate on a.
func (a axis) neighbours(idx, pos int) (lo, hi int) {
	lo, hi = -1, -1
	if pos > 0 {
		lo = idx - a.stride
	}
	if pos < a.extent-1 {
		hi = idx + a.stride
	}
	return lo, hi
}

// position returns idx's coordinate along a.
func (a axis) position(idx int) int {
	return (idx / a.stride) % a.extent
}
