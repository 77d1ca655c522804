// SPDX-License-Identifier: MIT

package sparse_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfield/dense"
	"github.com/katalvlaran/lvfield/sparse"
	"github.com/katalvlaran/lvfield/vec"
)

// pentadiagonal builds the n×n symmetric positive-definite matrix with 2.2 on
// the diagonal, 0.2 on the first and -0.2 on the second off-diagonals. Channel
// k is scaled by k+1 so the three channels are different problems.
func pentadiagonal(n int) *sparse.Matrix[float64, vec.C3] {
	m, _ := sparse.NewMatrix[float64, vec.C3](n, n)
	put := func(i, j int, x float64) {
		if j >= 0 && j < n {
			_ = m.Append(i, j, vec.New[float64, vec.C3](x, 2*x, 3*x))
		}
	}
	for i := 0; i < n; i++ {
		put(i, i, 2.2)
		put(i, i-1, 0.2)
		put(i, i+1, 0.2)
		put(i, i-2, -0.2)
		put(i, i+2, -0.2)
	}
	return m
}

// convection builds a non-symmetric, strictly diagonally dominant n×n matrix.
func convection(n int) *sparse.Matrix[float64, vec.C3] {
	m, _ := sparse.NewMatrix[float64, vec.C3](n, n)
	for i := 0; i < n; i++ {
		_ = m.Append(i, i, vec.New[float64, vec.C3](4, 5, 6))
		if i+1 < n {
			_ = m.Append(i, i+1, vec.New[float64, vec.C3](1, -1, 2))
		}
		if i > 0 {
			_ = m.Append(i, i-1, vec.New[float64, vec.C3](-0.5, 0.25, -1))
		}
		if i+3 < n {
			_ = m.Append(i, i+3, vec.New[float64, vec.C3](0.3, 0.3, -0.3))
		}
	}
	return m
}

func ones(n int) *vec.Vector[float64, vec.C3] {
	b := vec.NewVector[float64, vec.C3](n)
	b.Fill(vec.Fill[float64, vec.C3](1))
	return b
}

// directSolve solves the same system densely with the SVD solver.
func directSolve(t *testing.T, m *sparse.Matrix[float64, vec.C3], b *vec.Vector[float64, vec.C3]) *vec.Vector[float64, vec.C3] {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)
	sol, err := dense.Solve(d, b, dense.MethodSVD)
	require.NoError(t, err)
	return sol.X
}

// SolverSuite groups the CG and BiCGStab scenarios.
type SolverSuite struct {
	suite.Suite
}

// TestCGPentadiagonal: 4×4 SPD system converges within 20 iterations and
// matches the direct solve.
func (s *SolverSuite) TestCGPentadiagonal() {
	a := pentadiagonal(4)
	b := ones(4)
	x := vec.NewVector[float64, vec.C3](4)

	res, err := sparse.SolveCG(a, b, x, sparse.WithIterations(20))
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)
	s.Require().LessOrEqual(res.Iterations, 20)
	for k := 0; k < 3; k++ {
		s.Require().Less(res.Residual.At(k), 1e-6)
		s.Require().GreaterOrEqual(res.ChannelIterations[k], 1)
	}

	want := directSolve(s.T(), a, b)
	for i := 0; i < 4; i++ {
		for k := 0; k < 3; k++ {
			s.Require().InDelta(want.At(i).At(k), x.At(i).At(k), 1e-6*4)
		}
	}
}

// TestCGLarger: a longer SPD chain reaches a tight tolerance.
func (s *SolverSuite) TestCGLarger() {
	const n = 200
	a := pentadiagonal(n)
	b := ones(n)
	x := vec.NewVector[float64, vec.C3](n)

	res, err := sparse.SolveCG(a, b, x, sparse.WithTolerance(1e-20), sparse.WithIterations(200))
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)

	// Residual recomputed independently, per channel, with gonum floats.
	ax := vec.NewVector[float64, vec.C3](n)
	s.Require().NoError(sparse.MultiplyVec(a, x, ax))
	for k := 0; k < 3; k++ {
		axk, _ := ax.Plane(k)
		bk, _ := b.Plane(k)
		floats.Sub(axk, bk)
		s.Require().Less(floats.Norm(axk, 2), 1e-8)
	}
}

// TestBiCGStabNonSymmetric: diagonally dominant non-symmetric system.
func (s *SolverSuite) TestBiCGStabNonSymmetric() {
	const n = 20
	a := convection(n)
	b := ones(n)
	x := vec.NewVector[float64, vec.C3](n)

	res, err := sparse.SolveBiCGStab(a, b, x, sparse.WithTolerance(1e-18))
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)
	for k := 0; k < 3; k++ {
		s.Require().Less(res.Residual.At(k), 1e-18)
	}

	want := directSolve(s.T(), a, b)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			s.Require().InDelta(want.At(i).At(k), x.At(i).At(k), 1e-6)
		}
	}
}

// TestBiCGStabDefaultTolerance: default settings reach residual < 1e-6.
func (s *SolverSuite) TestBiCGStabDefaultTolerance() {
	a := convection(50)
	x := vec.NewVector[float64, vec.C3](50)
	res, err := sparse.SolveBiCGStab(a, ones(50), x)
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)
	s.Require().Less(res.Residual.At(0), sparse.DefaultTolerance)
}

// TestIterationCapIsNotAnError: the best iterate comes back with a status.
func (s *SolverSuite) TestIterationCapIsNotAnError() {
	a := convection(20)
	for _, solve := range []func(*sparse.Matrix[float64, vec.C3], *vec.Vector[float64, vec.C3], *vec.Vector[float64, vec.C3], ...sparse.Option) (sparse.Result[vec.C3], error){
		sparse.SolveCG[float64, vec.C3],
		sparse.SolveBiCGStab[float64, vec.C3],
	} {
		x := vec.NewVector[float64, vec.C3](20)
		res, err := solve(a, ones(20), x, sparse.WithIterations(1), sparse.WithTolerance(1e-30))
		s.Require().NoError(err)
		s.Require().Equal(sparse.StatusIterationCap, res.Status)
		s.Require().Equal(1, res.Iterations)
		s.Require().Equal([]int{-1, -1, -1}, res.ChannelIterations)
		s.Require().NotEqual(0.0, x.At(0).LengthSq(), "x must hold the last iterate")
	}
}

// TestInitialGuessAlreadyConverged: zero iterations, x untouched.
func (s *SolverSuite) TestInitialGuessAlreadyConverged() {
	a := pentadiagonal(4)
	b := ones(4)
	x := directSolve(s.T(), a, b)
	before := x.Clone()

	res, err := sparse.SolveCG(a, b, x)
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)
	s.Require().Equal(0, res.Iterations)
	s.Require().Equal([]int{0, 0, 0}, res.ChannelIterations)
	s.Require().Equal(before.Data(), x.Data())
}

// TestZeroDenominatorStaysFinite: a zero operator never produces NaN.
func (s *SolverSuite) TestZeroDenominatorStaysFinite() {
	a, _ := sparse.NewMatrix[float64, vec.C3](3, 3)
	x := vec.NewVector[float64, vec.C3](3)
	res, err := sparse.SolveCG(a, ones(3), x, sparse.WithIterations(10))
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusIterationCap, res.Status)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			v := x.At(i).At(k)
			s.Require().False(math.IsNaN(v) || math.IsInf(v, 0))
		}
	}

	x2 := vec.NewVector[float64, vec.C3](3)
	_, err = sparse.SolveBiCGStab(a, ones(3), x2, sparse.WithIterations(4))
	s.Require().NoError(err)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			v := x2.At(i).At(k)
			s.Require().False(math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

// TestMonitorAndLogger: the monitor sees every iteration; logs carry status.
func (s *SolverSuite) TestMonitorAndLogger() {
	var (
		calls []int
		buf   bytes.Buffer
	)
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	x := vec.NewVector[float64, vec.C3](4)
	res, err := sparse.SolveCG(pentadiagonal(4), ones(4), x,
		sparse.WithMonitor(func(iter int, residual []float64) {
			s.Require().Len(residual, 3)
			calls = append(calls, iter)
		}),
		sparse.WithLogger(logger))
	s.Require().NoError(err)
	s.Require().Len(calls, res.Iterations)
	for i, it := range calls {
		s.Require().Equal(i+1, it)
	}
	s.Require().Contains(buf.String(), "status=converged")
	s.Require().Contains(buf.String(), "iter=1")
}

// TestShapeErrors: non-square A and size mismatches are fatal.
func (s *SolverSuite) TestShapeErrors() {
	rect, _ := sparse.NewMatrix[float64, vec.C3](3, 4)
	_, err := sparse.SolveCG(rect, ones(3), vec.NewVector[float64, vec.C3](4))
	s.Require().ErrorIs(err, sparse.ErrDimensionMismatch)

	sq := pentadiagonal(4)
	_, err = sparse.SolveBiCGStab(sq, ones(3), vec.NewVector[float64, vec.C3](4))
	s.Require().ErrorIs(err, sparse.ErrDimensionMismatch)
	_, err = sparse.SolveCG(sq, ones(4), vec.NewVector[float64, vec.C3](5))
	s.Require().ErrorIs(err, sparse.ErrDimensionMismatch)
	_, err = sparse.SolveCG(sq, nil, vec.NewVector[float64, vec.C3](4))
	s.Require().ErrorIs(err, sparse.ErrNilOperand)
}

// TestFloat32Storage: float32 vectors use the float32 denominator floor.
func (s *SolverSuite) TestFloat32Storage() {
	m, _ := sparse.NewMatrix[float32, vec.C1](4, 4)
	for i := 0; i < 4; i++ {
		_ = m.Append(i, i, vec.New[float32, vec.C1](2.2))
		if i > 0 {
			_ = m.Append(i, i-1, vec.New[float32, vec.C1](0.2))
			_ = m.Append(i-1, i, vec.New[float32, vec.C1](0.2))
		}
	}
	b := vec.NewVector[float32, vec.C1](4)
	b.Fill(vec.New[float32, vec.C1](1))
	x := vec.NewVector[float32, vec.C1](4)

	res, err := sparse.SolveCG(m, b, x)
	s.Require().NoError(err)
	s.Require().Equal(sparse.StatusConverged, res.Status)
	s.Require().Less(res.Residual.At(0), 1e-6)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	require.PanicsWithValue(t, "sparse: WithIterations: iterations must be > 0", func() { sparse.WithIterations(0) })
	require.PanicsWithValue(t, "sparse: WithTolerance: tolerance must be finite and > 0", func() { sparse.WithTolerance(math.NaN()) })
	require.PanicsWithValue(t, "sparse: WithZeroTolerance: floor must be finite and > 0", func() { sparse.WithZeroTolerance(0) })
	require.PanicsWithValue(t, "sparse: WithMonitor: monitor must not be nil", func() { sparse.WithMonitor(nil) })
	require.PanicsWithValue(t, "sparse: WithLogger: logger must not be nil", func() { sparse.WithLogger(nil) })
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "converged", sparse.StatusConverged.String())
	require.Equal(t, "iteration cap", sparse.StatusIterationCap.String())
	require.Equal(t, "Status(9)", sparse.Status(9).String())
}
