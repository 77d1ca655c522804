// SPDX-License-Identifier: MIT

// Package dense: functional configuration for factorizations.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: option constructors panic on nonsensical values
//     (programmer error); algorithms never panic on user data.
package dense

import (
	"io"
	"log/slog"
	"math"
)

// Defaults (single source of truth).
const (
	// DefaultZeroTolerance is the magnitude at or below which an LU pivot or a
	// QR diagonal counts as zero, and (relative to the largest singular value)
	// below which a singular value is dropped by Inverse and SVD solves.
	DefaultZeroTolerance = 1e-12

	// DefaultMaxSweeps caps the implicit-QR iterations spent on one singular value.
	DefaultMaxSweeps = 30
)

const (
	panicZeroTolInvalid   = "dense: WithZeroTolerance: tolerance must be finite and >= 0"
	panicMaxSweepsInvalid = "dense: WithMaxSweeps: sweeps must be > 0"
	panicNilLogger        = "dense: WithLogger: logger must not be nil"
)

// Option mutates Options.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; build it with
// Option setters.
type Options struct {
	zeroTol   float64
	maxSweeps int
	logger    *slog.Logger
}

// WithZeroTolerance overrides DefaultZeroTolerance.
func WithZeroTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicZeroTolInvalid)
	}
	return func(o *Options) { o.zeroTol = eps }
}

// WithMaxSweeps overrides DefaultMaxSweeps.
func WithMaxSweeps(n int) Option {
	if n <= 0 {
		panic(panicMaxSweepsInvalid)
	}
	return func(o *Options) { o.maxSweeps = n }
}

// WithLogger routes diagnostics (singular channels, SVD sweeps) to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

func defaultOptions() Options {
	return Options{
		zeroTol:   DefaultZeroTolerance,
		maxSweeps: DefaultMaxSweeps,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
