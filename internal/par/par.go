// SPDX-License-Identifier: MIT

// Package par runs data-parallel loops over independent index ranges.
//
// The range [0,n) is cut into fixed chunks of `grain` elements. Chunk
// boundaries depend only on (n, grain), never on GOMAXPROCS, so callers that
// reduce per chunk and combine partials in chunk order get the same result
// bit-for-bit on every run.
package par

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultGrain is the chunk length used when callers pass grain <= 0.
const DefaultGrain = 4096

// Chunks returns the number of chunks For will split n elements into.
func Chunks(n, grain int) int {
	if grain <= 0 {
		grain = DefaultGrain
	}
	if n <= 0 {
		return 0
	}

	return (n + grain - 1) / grain
}

// For calls fn(chunk, lo, hi) for every chunk of [0,n).
// A single chunk runs on the calling goroutine; more chunks fan out over an
// errgroup bounded by GOMAXPROCS. The first non-nil error is returned.
func For(n, grain int, fn func(chunk, lo, hi int) error) error {
	return ForLimit(n, grain, 0, fn)
}

// ForLimit is For with at most limit chunks in flight. limit <= 0 means
// GOMAXPROCS; limit == 1 runs every chunk in order on the calling goroutine.
func ForLimit(n, grain, limit int, fn func(chunk, lo, hi int) error) error {
	if grain <= 0 {
		grain = DefaultGrain
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	chunks := Chunks(n, grain)
	if chunks == 0 {
		return nil
	}
	if chunks == 1 || limit == 1 {
		for c := 0; c < chunks; c++ {
			lo := c * grain
			if err := fn(c, lo, min(lo+grain, n)); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for c := 0; c < chunks; c++ {
		c := c
		lo := c * grain
		hi := min(lo+grain, n)
		g.Go(func() error { return fn(c, lo, hi) })
	}

	return g.Wait()
}
