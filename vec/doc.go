// Package vec provides channelled numeric tuples and dynamic vectors of them.
//
// A channel is one lane of a fixed-width tuple. A Vec[float32, C3] is either a
// geometric 3-vector or three independent scalar problems packed side by side;
// every operation in this package is component-wise, so the two readings never
// conflict. The channel count is part of the static type (C1..C4), which lets
// one generic implementation replace per-width copies of the same arithmetic.
//
// The package provides:
//
//   - Vec[T, C]: an immutable-arity tuple with value-semantics arithmetic.
//   - Vector[T, C]: a resizable sequence of Vec that either owns its storage or
//     is a view over caller-supplied storage (ViewVector).
//   - Elementwise kernels (Transform, AddTo, AddScaledTo, ...) and per-channel
//     reductions (Dot, SumSq, MaxAbs) over Vector.
//
// Numeric policy:
//
//   - Reductions accumulate in float64 regardless of the storage type T.
//   - Large vectors are processed in fixed chunks on several goroutines. Chunk
//     partials are combined in chunk order, so a given input and
//     ParallelGrain always yield the same bits.
//   - Binary operations require equal Size(); a mismatch returns an error
//     matching ErrDimensionMismatch and leaves dst untouched.
//
// Quick example:
//
//	a := vec.NewVector[float64, vec.C2](3)
//	b := vec.NewVector[float64, vec.C2](3)
//	a.Fill(vec.New[float64, vec.C2](1, 2))
//	b.Fill(vec.New[float64, vec.C2](3, 4))
//	d, _ := vec.Dot(a, b) // per-channel: {9, 24}
package vec
