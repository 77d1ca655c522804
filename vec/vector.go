// SPDX-License-Identifier: MIT

package vec

import "fmt"

// Vector is an ordered, resizable sequence of channelled tuples.
//
// A Vector either owns its backing slice (NewVector, Clone) or aliases storage
// supplied by the caller (ViewVector). Writes through a view are visible to the
// caller; Resize on a view detaches it into owned storage first.
// Size() equals the backing length after every mutating call.
type Vector[T Float, C Arity] struct {
	data []Vec[T, C]
	view bool
}

// NewVector allocates n zero tuples. Negative n is treated as 0.
func NewVector[T Float, C Arity](n int) *Vector[T, C] {
	return &Vector[T, C]{data: make([]Vec[T, C], max(n, 0))}
}

// ViewVector wraps buf without copying.
func ViewVector[T Float, C Arity](buf []Vec[T, C]) *Vector[T, C] {
	return &Vector[T, C]{data: buf, view: true}
}

// FromScalars builds a vector from interleaved lanes: element i channel k is
// vals[i*C+k]. len(vals) must be a multiple of C.
func FromScalars[T Float, C Arity](vals []T) (*Vector[T, C], error) {
	nc := Channels[C]()
	if len(vals)%nc != 0 {
		return nil, opErrorf(opFromScalars, fmt.Errorf("%d values for %d channels: %w", len(vals), nc, ErrDimensionMismatch))
	}
	x := NewVector[T, C](len(vals) / nc)
	for i := range x.data {
		x.data[i] = New[T, C](vals[i*nc : (i+1)*nc]...)
	}

	return x, nil
}

// Size returns the number of tuples.
func (x *Vector[T, C]) Size() int { return len(x.data) }

// IsView reports whether x aliases caller storage.
func (x *Vector[T, C]) IsView() bool { return x.view }

// Data exposes the backing slice. Mutations are visible through x.
func (x *Vector[T, C]) Data() []Vec[T, C] { return x.data }

// At returns element i. It panics when i is out of range, like a slice index.
func (x *Vector[T, C]) At(i int) Vec[T, C] { return x.data[i] }

// Set stores v at i.
func (x *Vector[T, C]) Set(i int, v Vec[T, C]) { x.data[i] = v }

// Resize changes the length to n, keeping the common prefix and zeroing new
// elements. A view is detached into owned storage.
func (x *Vector[T, C]) Resize(n int) {
	n = max(n, 0)
	if !x.view && n <= cap(x.data) {
		old := len(x.data)
		x.data = x.data[:n]
		for i := old; i < n; i++ {
			x.data[i] = Vec[T, C]{}
		}
		return
	}
	buf := make([]Vec[T, C], n)
	copy(buf, x.data)
	x.data = buf
	x.view = false
}

// Fill sets every element to v.
func (x *Vector[T, C]) Fill(v Vec[T, C]) {
	for i := range x.data {
		x.data[i] = v
	}
}

// Zero sets every element to the zero tuple.
func (x *Vector[T, C]) Zero() { x.Fill(Vec[T, C]{}) }

// Clone returns an owning deep copy.
func (x *Vector[T, C]) Clone() *Vector[T, C] {
	buf := make([]Vec[T, C], len(x.data))
	copy(buf, x.data)

	return &Vector[T, C]{data: buf}
}

// CopyFrom copies src into x. Sizes must match.
func (x *Vector[T, C]) CopyFrom(src *Vector[T, C]) error {
	if len(x.data) != len(src.data) {
		return mismatch(opCopyFrom, len(src.data), len(x.data))
	}
	copy(x.data, src.data)

	return nil
}

// Plane extracts channel k as a float64 slice, the layout gonum's floats and
// mat packages expect.
func (x *Vector[T, C]) Plane(k int) ([]float64, error) {
	if k < 0 || k >= Channels[C]() {
		return nil, opErrorf(opPlane, fmt.Errorf("channel %d: %w", k, ErrOutOfRange))
	}
	p := make([]float64, len(x.data))
	for i, v := range x.data {
		p[i] = float64(v.c[k])
	}

	return p, nil
}

// SetPlane writes p into channel k. len(p) must equal Size().
func (x *Vector[T, C]) SetPlane(k int, p []float64) error {
	if k < 0 || k >= Channels[C]() {
		return opErrorf(opSetPlane, fmt.Errorf("channel %d: %w", k, ErrOutOfRange))
	}
	if len(p) != len(x.data) {
		return mismatch(opSetPlane, len(p), len(x.data))
	}
	for i := range x.data {
		x.data[i].c[k] = T(p[i])
	}

	return nil
}
