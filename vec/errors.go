// SPDX-License-Identifier: MIT
// Package vec: sentinel errors.
// Every message is prefixed with "vec: ". Kernels wrap the sentinel with the
// operation tag via opErrorf; callers match with errors.Is.

package vec

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operands whose Size() (or shape) disagree.
	// Other packages of this module alias it so a single errors.Is check works
	// for vectors, dense and sparse matrices alike.
	ErrDimensionMismatch = errors.New("vec: dimension mismatch")

	// ErrOutOfRange indicates an element or channel index outside valid bounds.
	ErrOutOfRange = errors.New("vec: index out of range")

	// ErrNilVector indicates a nil *Vector operand.
	ErrNilVector = errors.New("vec: nil vector")
)

// Operation tags used in error wrapping.
const (
	opTransform   = "Transform"
	opTransform2  = "Transform2"
	opAddTo       = "AddTo"
	opSubTo       = "SubTo"
	opScaleTo     = "ScaleTo"
	opAddScaledTo = "AddScaledTo"
	opDot         = "Dot"
	opPlane       = "Plane"
	opSetPlane    = "SetPlane"
	opCopyFrom    = "CopyFrom"
	opFromScalars = "FromScalars"
)

// opErrorf wraps err with an operation tag, preserving it for errors.Is.
// Only call with a non-nil err.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("vec.%s: %w", tag, err)
}

// mismatch builds the canonical size-mismatch error for op.
func mismatch(tag string, got, want int) error {
	return opErrorf(tag, fmt.Errorf("size %d, want %d: %w", got, want, ErrDimensionMismatch))
}
