// SPDX-License-Identifier: MIT

package sparse

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvfield/vec"
)

// Status is the terminal state of an iterative solve.
type Status int

const (
	// StatusConverged means every channel reached the tolerance.
	StatusConverged Status = iota
	// StatusIterationCap means the iteration cap was reached first. The
	// returned iterate is the last one computed.
	StatusIterationCap
)

// String returns a short status name.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationCap:
		return "iteration cap"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result reports how a solve ended.
type Result[C vec.Arity] struct {
	Status Status
	// Iterations is the number of completed iterations (0 when the initial
	// guess already satisfied the tolerance).
	Iterations int
	// Residual is the final per-channel mean squared residual Σr²/N.
	Residual vec.Vec[float64, C]
	// ChannelIterations[k] is the iteration at which channel k first met the
	// tolerance, or -1 if it never did.
	ChannelIterations []int
}

// tracker holds the convergence bookkeeping shared by CG and BiCGStab.
type tracker[C vec.Arity] struct {
	o       Options
	n       float64
	res     vec.Vec[float64, C]
	active  vec.Vec[float64, C] // 1 for channels still iterating, 0 once converged
	scratch []float64
	result  Result[C]
}

func newTracker[C vec.Arity](o Options, n int) *tracker[C] {
	nc := vec.Channels[C]()
	t := &tracker[C]{
		o:       o,
		n:       float64(max(n, 1)),
		active:  vec.Fill[float64, C](1),
		scratch: make([]float64, nc),
		result:  Result[C]{ChannelIterations: make([]int, nc)},
	}
	for k := range t.result.ChannelIterations {
		t.result.ChannelIterations[k] = -1
	}
	return t
}

// update records the squared residual sum rr after iteration it and reports
// whether every channel is now converged. Converged channels are frozen.
func (t *tracker[C]) update(it int, rr vec.Vec[float64, C]) bool {
	t.res = rr.Scale(1 / t.n)
	t.result.Iterations = it
	t.result.Residual = t.res
	done := true
	for k := 0; k < t.res.Len(); k++ {
		if t.res.At(k) < t.o.tolerance {
			if t.result.ChannelIterations[k] < 0 {
				t.result.ChannelIterations[k] = it
			}
			t.active = t.active.With(k, 0)
		} else {
			done = false
		}
	}
	if it > 0 {
		if t.o.monitor != nil {
			copy(t.scratch, t.res.Slice())
			t.o.monitor(it, t.scratch)
		}
		t.o.logger.Debug("sparse: iteration", slog.Int("iter", it), slog.String("residual", t.res.String()))
	}
	return done
}

func (t *tracker[C]) finish(tag string, st Status) Result[C] {
	t.result.Status = st
	lvl := slog.LevelInfo
	if st == StatusIterationCap {
		lvl = slog.LevelWarn
	}
	t.o.logger.Log(context.Background(), lvl, "sparse: "+tag+" finished",
		slog.String("status", st.String()),
		slog.Int("iterations", t.result.Iterations),
		slog.String("residual", t.res.String()))
	return t.result
}

// floor replaces every channel of d with magnitude below eps by ±eps, keeping
// the sign; an exact zero becomes +eps.
func floor[C vec.Arity](d vec.Vec[float64, C], eps float64) vec.Vec[float64, C] {
	for k := 0; k < d.Len(); k++ {
		v := d.At(k)
		if math.Abs(v) >= eps {
			continue
		}
		if v < 0 {
			d = d.With(k, -eps)
		} else {
			d = d.With(k, eps)
		}
	}
	return d
}
