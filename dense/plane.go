// SPDX-License-Identifier: MIT

package dense

import (
	"github.com/katalvlaran/lvfield/internal/par"
	"github.com/katalvlaran/lvfield/vec"
)

// plane copies channel k into a row-major float64 slice.
func (m *Dense[T, C]) plane(k int) []float64 {
	p := make([]float64, len(m.data))
	for i, v := range m.data {
		p[i] = float64(v.At(k))
	}
	return p
}

// setPlane writes a row-major float64 slice into channel k.
// Callers must not run setPlane for different channels of the same matrix
// concurrently: a lane write rewrites the whole tuple.
func (m *Dense[T, C]) setPlane(k int, p []float64) {
	for i := range m.data {
		m.data[i] = m.data[i].With(k, T(p[i]))
	}
}

// fromPlanes assembles an r×c matrix from one row-major plane per channel.
func fromPlanes[T vec.Float, C vec.Arity](r, c int, planes [][]float64) *Dense[T, C] {
	m := &Dense[T, C]{r: r, c: c, data: make([]vec.Vec[T, C], r*c)}
	for k, p := range planes {
		m.setPlane(k, p)
	}
	return m
}

// vectorPlanes splits x into one float64 slice per channel.
func vectorPlanes[T vec.Float, C vec.Arity](x *vec.Vector[T, C]) [][]float64 {
	nc := vec.Channels[C]()
	out := make([][]float64, nc)
	for k := 0; k < nc; k++ {
		out[k], _ = x.Plane(k)
	}
	return out
}

// planesVector joins per-channel slices of equal length into a Vector.
func planesVector[T vec.Float, C vec.Arity](planes [][]float64) *vec.Vector[T, C] {
	n := 0
	if len(planes) > 0 {
		n = len(planes[0])
	}
	x := vec.NewVector[T, C](n)
	for k, p := range planes {
		_ = x.SetPlane(k, p)
	}
	return x
}

// forChannels runs fn once per channel, concurrently. Channels are independent
// problems; fn must only touch state owned by its channel.
func forChannels[C vec.Arity](fn func(k int) error) error {
	return par.For(vec.Channels[C](), 1, func(k, _, _ int) error {
		return fn(k)
	})
}
