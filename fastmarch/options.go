// SPDX-License-Identifier: MIT

package fastmarch

import (
	"io"
	"log/slog"
	"math"
)

// DefaultMaxDistance is the propagation radius, in cells, used when
// WithMaxDistance is not given.
const DefaultMaxDistance = 16.0

const (
	panicMaxDistanceInvalid = "fastmarch: WithMaxDistance: distance must be finite and > 0"
	panicWorkersInvalid     = "fastmarch: WithWorkers: workers must be >= 0"
	panicNilLogger          = "fastmarch: WithLogger: logger must not be nil"
)

// Option configures a Solver.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	maxDistance float64
	workers     int // 0 means GOMAXPROCS
	logger      *slog.Logger
}

// WithMaxDistance bounds propagation: cells farther than d from the interface
// are never finalized and come out as ±d.
func WithMaxDistance(d float64) Option {
	if !(d > 0) || math.IsInf(d, 0) {
		panic(panicMaxDistanceInvalid)
	}
	return func(o *Options) { o.maxDistance = d }
}

// WithWorkers bounds the goroutines used by the initial interface scan.
// 0 selects GOMAXPROCS, 1 runs the scan serially.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithLogger routes solve diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		maxDistance: DefaultMaxDistance,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
