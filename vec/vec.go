// SPDX-License-Identifier: MIT

package vec

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// MaxChannels is the widest supported tuple.
const MaxChannels = 4

// Float is the set of scalar element types.
type Float interface {
	constraints.Float
}

// Arity fixes the channel count of a tuple at compile time.
// Only C1, C2, C3 and C4 satisfy it.
type Arity interface {
	C1 | C2 | C3 | C4
	Channels() int
}

// Channel-count markers. They carry no data.
type (
	C1 struct{}
	C2 struct{}
	C3 struct{}
	C4 struct{}
)

func (C1) Channels() int { return 1 }
func (C2) Channels() int { return 2 }
func (C3) Channels() int { return 3 }
func (C4) Channels() int { return 4 }

// Channels returns the channel count of arity C.
func Channels[C Arity]() int {
	var c C
	return c.Channels()
}

// Vec is a fixed-length tuple of C scalars of type T.
// Lanes beyond C are always zero; the zero value is the zero tuple.
type Vec[T Float, C Arity] struct {
	c [MaxChannels]T
}

// New builds a tuple from up to C values. Missing lanes are zero and extra
// values are ignored.
func New[T Float, C Arity](vals ...T) Vec[T, C] {
	var v Vec[T, C]
	n := min(len(vals), v.Len())
	copy(v.c[:n], vals[:n])

	return v
}

// Fill returns a tuple with every lane set to x.
func Fill[T Float, C Arity](x T) Vec[T, C] {
	var v Vec[T, C]
	for k := 0; k < v.Len(); k++ {
		v.c[k] = x
	}

	return v
}

// Convert changes the scalar type, keeping the arity.
func Convert[U Float, T Float, C Arity](v Vec[T, C]) Vec[U, C] {
	var r Vec[U, C]
	for k := 0; k < v.Len(); k++ {
		r.c[k] = U(v.c[k])
	}

	return r
}

// Len returns the channel count C.
func (v Vec[T, C]) Len() int { return Channels[C]() }

// At returns lane k. It panics when k is outside [0, C), like an array index.
func (v Vec[T, C]) At(k int) T {
	if k < 0 || k >= v.Len() {
		panic(fmt.Sprintf("vec: channel %d out of range [0,%d)", k, v.Len()))
	}
	return v.c[k]
}

// With returns a copy of v with lane k replaced by x.
func (v Vec[T, C]) With(k int, x T) Vec[T, C] {
	if k < 0 || k >= v.Len() {
		panic(fmt.Sprintf("vec: channel %d out of range [0,%d)", k, v.Len()))
	}
	v.c[k] = x
	return v
}

// Slice returns the C lanes as a fresh slice.
func (v Vec[T, C]) Slice() []T {
	out := make([]T, v.Len())
	copy(out, v.c[:])
	return out
}

// Float64 widens every lane to float64.
func (v Vec[T, C]) Float64() Vec[float64, C] { return Convert[float64](v) }

// ---------- component-wise arithmetic ----------

func (v Vec[T, C]) Add(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] += w.c[k]
	}
	return v
}

func (v Vec[T, C]) Sub(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] -= w.c[k]
	}
	return v
}

// Mul is the component-wise (Hadamard) product.
func (v Vec[T, C]) Mul(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] *= w.c[k]
	}
	return v
}

// Div is component-wise division. Division by zero follows IEEE-754.
func (v Vec[T, C]) Div(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] /= w.c[k]
	}
	return v
}

// Scale multiplies every lane by s.
func (v Vec[T, C]) Scale(s T) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] *= s
	}
	return v
}

func (v Vec[T, C]) Neg() Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] = -v.c[k]
	}
	return v
}

func (v Vec[T, C]) Abs() Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] = T(math.Abs(float64(v.c[k])))
	}
	return v
}

// Min is the component-wise minimum.
func (v Vec[T, C]) Min(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] = min(v.c[k], w.c[k])
	}
	return v
}

// Max is the component-wise maximum.
func (v Vec[T, C]) Max(w Vec[T, C]) Vec[T, C] {
	for k := 0; k < v.Len(); k++ {
		v.c[k] = max(v.c[k], w.c[k])
	}
	return v
}

// ---------- reductions (float64 accumulation) ----------

// Sum adds the lanes.
func (v Vec[T, C]) Sum() float64 {
	var s float64
	for k := 0; k < v.Len(); k++ {
		s += float64(v.c[k])
	}
	return s
}

// Dot is the inner product of two tuples.
func (v Vec[T, C]) Dot(w Vec[T, C]) float64 {
	var s float64
	for k := 0; k < v.Len(); k++ {
		s += float64(v.c[k]) * float64(w.c[k])
	}
	return s
}

func (v Vec[T, C]) LengthSq() float64 { return v.Dot(v) }

// Length is the Euclidean norm.
func (v Vec[T, C]) Length() float64 { return math.Sqrt(v.LengthSq()) }

// MinComponent returns the smallest lane.
func (v Vec[T, C]) MinComponent() T {
	m := v.c[0]
	for k := 1; k < v.Len(); k++ {
		m = min(m, v.c[k])
	}
	return m
}

// MaxComponent returns the largest lane.
func (v Vec[T, C]) MaxComponent() T {
	m := v.c[0]
	for k := 1; k < v.Len(); k++ {
		m = max(m, v.c[k])
	}
	return m
}

// String formats as "(a, b, c)".
func (v Vec[T, C]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for k := 0; k < v.Len(); k++ {
		if k > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", float64(v.c[k]))
	}
	sb.WriteByte(')')

	return sb.String()
}
