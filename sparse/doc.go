// Package sparse provides a row-compressed sparse matrix of channelled tuples
// and two Krylov solvers over it: conjugate gradient (SolveCG) for symmetric
// positive-definite systems and BiCGStab (SolveBiCGStab) for general square
// ones. A dense matrix is never formed.
//
// Every channel is an independent system. Step lengths and direction updates
// are computed per channel in float64, whatever the storage type.
//
// Termination:
//
//   - A channel has converged when its mean squared residual Σr²/N drops below
//     the tolerance (WithTolerance, default 1e-6). The solve stops as soon as
//     all channels have converged; converged channels stop moving meanwhile.
//   - Reaching the iteration cap (WithIterations, default 100) is not an
//     error. Result.Status says which way the solve ended and x holds the last
//     iterate either way.
//   - Denominators whose magnitude falls below the zero tolerance are replaced
//     by ±eps (WithZeroTolerance; 1e-16 for float64, 1e-12 for float32), so a
//     degenerate direction degrades precision instead of producing NaN.
//
// Observability: WithMonitor receives the per-channel residual after each
// iteration; WithLogger gets Debug lines per iteration and one Info (Warn at
// the cap) line per solve.
//
// Quick example:
//
//	a, _ := sparse.NewMatrix[float64, vec.C1](2, 2)
//	_ = a.Append(0, 0, vec.New[float64, vec.C1](4))
//	_ = a.Append(1, 1, vec.New[float64, vec.C1](2))
//	x := vec.NewVector[float64, vec.C1](2)
//	res, err := sparse.SolveCG(a, b, x)
package sparse
