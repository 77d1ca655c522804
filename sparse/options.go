// SPDX-License-Identifier: MIT

package sparse

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvfield/vec"
)

// Defaults (single source of truth).
const (
	// DefaultIterations caps the Krylov iterations of one solve.
	DefaultIterations = 100

	// DefaultTolerance is the per-channel mean squared residual Σr²/N below
	// which a channel counts as converged.
	DefaultTolerance = 1e-6

	// DefaultZeroTolerance64 floors denominators for float64 storage.
	DefaultZeroTolerance64 = 1e-16

	// DefaultZeroTolerance32 floors denominators for float32 storage.
	DefaultZeroTolerance32 = 1e-12
)

const (
	panicIterationsInvalid = "sparse: WithIterations: iterations must be > 0"
	panicToleranceInvalid  = "sparse: WithTolerance: tolerance must be finite and > 0"
	panicZeroTolInvalid    = "sparse: WithZeroTolerance: floor must be finite and > 0"
	panicNilMonitor        = "sparse: WithMonitor: monitor must not be nil"
	panicNilLogger         = "sparse: WithLogger: logger must not be nil"
)

// Monitor observes one iteration. residual holds the per-channel mean squared
// residual; it is reused between calls and must not be retained.
// A monitor never influences the solve.
type Monitor func(iter int, residual []float64)

// Option configures SolveCG and SolveBiCGStab.
type Option func(*Options)

// Options is the resolved solver configuration.
type Options struct {
	iterations int
	tolerance  float64
	zeroTol    float64 // 0 selects the storage-type default
	monitor    Monitor
	logger     *slog.Logger
}

// WithIterations overrides DefaultIterations.
func WithIterations(n int) Option {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}
	return func(o *Options) { o.iterations = n }
}

// WithTolerance overrides DefaultTolerance.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) { o.tolerance = tol }
}

// WithZeroTolerance sets the magnitude below which a denominator is replaced
// by ±eps.
func WithZeroTolerance(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicZeroTolInvalid)
	}
	return func(o *Options) { o.zeroTol = eps }
}

// WithMonitor installs a per-iteration callback.
func WithMonitor(m Monitor) Option {
	if m == nil {
		panic(panicNilMonitor)
	}
	return func(o *Options) { o.monitor = m }
}

// WithLogger routes iteration diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

func gatherOptions[T vec.Float](opts ...Option) Options {
	o := Options{
		iterations: DefaultIterations,
		tolerance:  DefaultTolerance,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.zeroTol == 0 {
		o.zeroTol = DefaultZeroTolerance64
		var zero T
		if _, ok := any(zero).(float32); ok {
			o.zeroTol = DefaultZeroTolerance32
		}
	}

	return o
}
