// Package lvfield is a numerical toolkit for per-pixel fields: channelled
// vectors and matrices, the direct and iterative solvers that work on them,
// and a fast-marching distance transform for images and volumes.
//
// 🚀 What is lvfield?
//
//	A generic, pure-Go library where the channel count is part of the type:
//		• Channelled tuples: Vec[float32, C3] is three scalars moving in lockstep
//		• Dense solvers: LU, Householder QR, SVD, pseudo-inverse, least squares
//		• Sparse solvers: conjugate gradient and BiCGStab, one system per channel
//		• Distance fields: fast marching with an indexed min-heap
//		• Iso-lines: marching squares over the same grids
//
// ✨ Why choose lvfield?
//
//   - One implementation for every width: C1..C4 share the same code
//   - float32 storage, float64 arithmetic: reductions never lose the low bits
//   - Deterministic parallelism: fixed chunks combined in a fixed order
//   - Errors you can match: sentinel errors wrapped with the operation name
//
// Under the hood, everything is organized under five subpackages:
//
//	vec/        Vec, Vector and the elementwise kernels
//	dense/      Dense matrices, factorizations, Inverse and Solve
//	sparse/     row-compressed Matrix, SolveCG, SolveBiCGStab
//	fastmarch/  Grid, Heap and the signed distance Solver
//	contour/    Extract, marching squares on images
//
// Quick example:
//
//	mask, _ := fastmarch.GridFrom(1, 5, 1, []float64{1, 1, 0, 1, 1})
//	sdf, _ := fastmarch.Solve(mask)
//	// sdf.Data() == [2 1 0 1 2]
//
//	go get github.com/katalvlaran/lvfield
package lvfield
