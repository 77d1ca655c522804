// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvfield/dense"
	"github.com/katalvlaran/lvfield/internal/par"
	"github.com/katalvlaran/lvfield/vec"
)

// rowGrain is the number of rows per parallel chunk in MultiplyVec.
const rowGrain = 512

// Entry is one stored value of a row.
type Entry[T vec.Float, C vec.Arity] struct {
	Col int
	Val vec.Vec[T, C]
}

// Matrix is a row-compressed sparse matrix of channelled tuples. Each row is
// an unordered list of entries; repeated columns accumulate.
type Matrix[T vec.Float, C vec.Arity] struct {
	rows, cols int
	data       [][]Entry[T, C]
}

// NewMatrix returns an empty rows×cols matrix.
func NewMatrix[T vec.Float, C vec.Arity](rows, cols int) (*Matrix[T, C], error) {
	if rows < 0 || cols < 0 {
		return nil, opErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return &Matrix[T, C]{rows: rows, cols: cols, data: make([][]Entry[T, C], rows)}, nil
}

// FromDense copies every non-zero tuple of d. A tuple is kept when any of its
// channels is non-zero.
func FromDense[T vec.Float, C vec.Arity](d *dense.Dense[T, C]) (*Matrix[T, C], error) {
	if d == nil {
		return nil, opErrorf(opFromDense, ErrNilOperand)
	}
	m, err := NewMatrix[T, C](d.Rows(), d.Cols())
	if err != nil {
		return nil, err
	}
	var zero vec.Vec[T, C]
	for i := 0; i < d.Rows(); i++ {
		for j := 0; j < d.Cols(); j++ {
			v, _ := d.At(i, j)
			if v != zero {
				m.data[i] = append(m.data[i], Entry[T, C]{Col: j, Val: v})
			}
		}
	}

	return m, nil
}

// Dims returns (rows, cols).
func (m *Matrix[T, C]) Dims() (rows, cols int) { return m.rows, m.cols }

// Append adds v at (i, j). Appending to an occupied position accumulates.
func (m *Matrix[T, C]) Append(i, j int, v vec.Vec[T, C]) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return opErrorf(opAppend, fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, m.rows, m.cols, ErrOutOfRange))
	}
	m.data[i] = append(m.data[i], Entry[T, C]{Col: j, Val: v})

	return nil
}

// Row returns the entries of row i, or nil when i is out of range.
// The slice aliases the matrix.
func (m *Matrix[T, C]) Row(i int) []Entry[T, C] {
	if i < 0 || i >= m.rows {
		return nil
	}
	return m.data[i]
}

// ResizeRow truncates row i to at most n entries and reserves room for n.
func (m *Matrix[T, C]) ResizeRow(i, n int) error {
	if i < 0 || i >= m.rows {
		return opErrorf(opResizeRow, fmt.Errorf("row %d of %d: %w", i, m.rows, ErrOutOfRange))
	}
	if n < 0 {
		return opErrorf(opResizeRow, fmt.Errorf("length %d: %w", n, ErrBadShape))
	}
	row := m.data[i]
	if cap(row) < n {
		grown := make([]Entry[T, C], len(row), n)
		copy(grown, row)
		row = grown
	}
	m.data[i] = row[:min(len(row), n)]

	return nil
}

// NNZ returns the number of stored entries, duplicates included.
func (m *Matrix[T, C]) NNZ() int {
	n := 0
	for _, row := range m.data {
		n += len(row)
	}
	return n
}

// ToDense expands m, summing duplicate entries.
func (m *Matrix[T, C]) ToDense() (*dense.Dense[T, C], error) {
	d, err := dense.NewDense[T, C](m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	for i, row := range m.data {
		for _, e := range row {
			cur, _ := d.At(i, e.Col)
			_ = d.Set(i, e.Col, cur.Add(e.Val))
		}
	}

	return d, nil
}

// MultiplyVec computes dst = A·x per channel, accumulating each row in
// float64. Rows are split into chunks processed concurrently. dst must not
// alias x.
//
// Errors:
//   - ErrNilOperand, ErrDimensionMismatch.
//
// Complexity: O(nnz·C).
func MultiplyVec[T vec.Float, C vec.Arity](a *Matrix[T, C], x, dst *vec.Vector[T, C]) error {
	if a == nil || x == nil || dst == nil {
		return opErrorf(opMultiply, ErrNilOperand)
	}
	if x.Size() != a.cols {
		return opErrorf(opMultiply, fmt.Errorf("x has %d elements, want %d: %w", x.Size(), a.cols, ErrDimensionMismatch))
	}
	if dst.Size() != a.rows {
		return opErrorf(opMultiply, fmt.Errorf("dst has %d elements, want %d: %w", dst.Size(), a.rows, ErrDimensionMismatch))
	}
	xs, ys := x.Data(), dst.Data()

	return par.For(a.rows, rowGrain, func(_, lo, hi int) error {
		for i := lo; i < hi; i++ {
			var s vec.Vec[float64, C]
			for _, e := range a.data[i] {
				s = s.Add(e.Val.Float64().Mul(xs[e.Col].Float64()))
			}
			ys[i] = vec.Convert[T](s)
		}
		return nil
	})
}
