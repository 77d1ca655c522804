// Package dense provides a row-major matrix of channelled tuples and the
// classic direct solvers over it: LU with partial pivoting, Householder QR,
// Golub–Reinsch SVD, the SVD pseudo-inverse and a least-squares Solve.
//
// Channels are independent problems. Every factorization runs once per
// channel in float64, whatever the storage type, and channels may be
// processed concurrently. Because pivoting is per channel, LU keeps one
// permutation per channel.
//
// Fatal conditions (bad shapes, size mismatches, SVD non-convergence) are
// returned as errors. A singular or rank-deficient input is advisory: the
// factorization still returns, flagged, and solves drop the degenerate
// directions instead of dividing by zero.
//
// Each channel can be exported to and imported from gonum's mat.Dense, so a
// single problem can be handed to gonum when a routine this package lacks is
// needed.
package dense
