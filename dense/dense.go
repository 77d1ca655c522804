// SPDX-License-Identifier: MIT

// Package dense - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer of channelled tuples with offset i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Transpose: O(r*c); Mul: O(r*n*c*C).
package dense

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvfield/vec"
)

// Dense is a rows×cols grid of vec.Vec[T, C], stored row-major.
//   - r,c hold dimensions (zero allowed, negative rejected).
//   - data is a flat buffer of length r*c.
type Dense[T vec.Float, C vec.Arity] struct {
	r, c int
	data []vec.Vec[T, C]
}

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrBadShape when rows < 0 or cols < 0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense[T vec.Float, C vec.Arity](rows, cols int) (*Dense[T, C], error) {
	if rows < 0 || cols < 0 {
		return nil, opErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return &Dense[T, C]{r: rows, c: cols, data: make([]vec.Vec[T, C], rows*cols)}, nil
}

// Identity returns the n×n identity, with 1 on the diagonal in every channel.
func Identity[T vec.Float, C vec.Arity](n int) (*Dense[T, C], error) {
	m, err := NewDense[T, C](n, n)
	if err != nil {
		return nil, err
	}
	one := vec.Fill[T, C](1)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m, nil
}

// FromRows builds a matrix from a rectangular slice of rows. Ragged rows
// yield ErrBadShape.
func FromRows[T vec.Float, C vec.Arity](rows [][]vec.Vec[T, C]) (*Dense[T, C], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	m, err := NewDense[T, C](r, c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, opErrorf(opNew, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), c, ErrBadShape))
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense[T, C]) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense[T, C]) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense[T, C]) Shape() (rows, cols int) { return m.r, m.c }

// indexOf bounds-checks (row,col) and returns the flat offset.
func (m *Dense[T, C]) indexOf(tag string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("dense.%s(%d,%d): %w", tag, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At returns the tuple at (row, col).
func (m *Dense[T, C]) At(row, col int) (vec.Vec[T, C], error) {
	idx, err := m.indexOf(opAt, row, col)
	if err != nil {
		return vec.Vec[T, C]{}, err
	}

	return m.data[idx], nil
}

// Set stores v at (row, col).
func (m *Dense[T, C]) Set(row, col int, v vec.Vec[T, C]) error {
	idx, err := m.indexOf(opSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Resize reallocates to rows×cols. Content is NOT preserved: the result is
// all zeros even when the shape is unchanged.
func (m *Dense[T, C]) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return opErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	m.r, m.c = rows, cols
	m.data = make([]vec.Vec[T, C], rows*cols)

	return nil
}

// Clone returns a deep copy.
func (m *Dense[T, C]) Clone() *Dense[T, C] {
	buf := make([]vec.Vec[T, C], len(m.data))
	copy(buf, m.data)

	return &Dense[T, C]{r: m.r, c: m.c, data: buf}
}

// Transpose returns mᵀ as a new matrix.
func (m *Dense[T, C]) Transpose() *Dense[T, C] {
	t := &Dense[T, C]{r: m.c, c: m.r, data: make([]vec.Vec[T, C], len(m.data))}
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[base+j]
		}
	}

	return t
}

// Mul computes the channel-wise product C = A × B.
// Implementation:
//   - Stage 1: validate inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop with float64 accumulators per output row.
//
// Errors:
//   - ErrDimensionMismatch on inner mismatch.
//
// Complexity:
//   - Time O(r*n*c*C), Space O(r*c).
func Mul[T vec.Float, C vec.Arity](a, b *Dense[T, C]) (*Dense[T, C], error) {
	if a.c != b.r {
		return nil, opErrorf(opMul, fmt.Errorf("%dx%d × %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	res, _ := NewDense[T, C](a.r, b.c)
	acc := make([]vec.Vec[float64, C], b.c)
	for i := 0; i < a.r; i++ {
		clear(acc)
		for k := 0; k < a.c; k++ {
			av := a.data[i*a.c+k].Float64()
			rowB := b.data[k*b.c : (k+1)*b.c]
			for j := range rowB {
				acc[j] = acc[j].Add(av.Mul(rowB[j].Float64()))
			}
		}
		for j := range acc {
			res.data[i*b.c+j] = vec.Convert[T](acc[j])
		}
	}

	return res, nil
}

// MulVec computes y = A·x per channel.
//
// Errors:
//   - ErrDimensionMismatch when x.Size() != A.Cols().
func MulVec[T vec.Float, C vec.Arity](a *Dense[T, C], x *vec.Vector[T, C]) (*vec.Vector[T, C], error) {
	if x.Size() != a.c {
		return nil, opErrorf(opMulVec, fmt.Errorf("x has %d elements, want %d: %w", x.Size(), a.c, ErrDimensionMismatch))
	}
	y := vec.NewVector[T, C](a.r)
	xs := x.Data()
	for i := 0; i < a.r; i++ {
		var s vec.Vec[float64, C]
		row := a.data[i*a.c : (i+1)*a.c]
		for j := range row {
			s = s.Add(row[j].Float64().Mul(xs[j].Float64()))
		}
		y.Set(i, vec.Convert[T](s))
	}

	return y, nil
}

// String implements fmt.Stringer for debugging.
func (m *Dense[T, C]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i*m.c+j].String())
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
