// SPDX-License-Identifier: MIT

package fastmarch

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvfield/internal/par"
	"github.com/katalvlaran/lvfield/vec"
)

// scanGrain is the number of cells per chunk of the parallel interface scan.
const scanGrain = 4096

// Stats summarizes one solve.
type Stats struct {
	// Alive is the number of cells holding a final distance.
	Alive int
	// Interface is the number of cells seeded analytically from a sign change
	// (zero-valued cells are not counted).
	Interface int
	// Clamped is the number of non-zero cells written as ±maxDistance.
	Clamped int
	// HeapPeak is the largest narrow band seen.
	HeapPeak int
}

// Solver computes signed distance fields by Sethian's fast marching method.
// A Solver holds only configuration and may be shared between goroutines.
type Solver[T vec.Float] struct {
	o Options
}

// NewSolver returns a Solver configured by opts.
func NewSolver[T vec.Float](opts ...Option) *Solver[T] {
	return &Solver[T]{o: gatherOptions(opts...)}
}

// Solve is NewSolver(opts...).Solve(in).
func Solve[T vec.Float](in *Grid[T], opts ...Option) (*Grid[T], error) {
	return NewSolver[T](opts...).Solve(in)
}

// Solve returns the signed distance field of in in a new grid.
func (s *Solver[T]) Solve(in *Grid[T]) (*Grid[T], error) {
	if in == nil {
		return nil, opErrorf(opSolve, ErrEmptyGrid)
	}
	out, err := NewGrid[T](in.rows, in.cols, in.slices)
	if err != nil {
		return nil, err
	}
	if _, err = s.SolveInto(in, out); err != nil {
		return nil, err
	}

	return out, nil
}

// SolveInto writes the signed distance field of in to out. out may be in.
//
// The zero level set of in is the interface. Every output cell keeps the sign
// of its input cell and holds its distance to the interface, in cells, capped
// at maxDistance.
//
// Implementation:
//   - Stage 1 (parallel): zero cells become Alive at 0. A cell with an
//     axis neighbour of strictly opposite sign becomes Alive at r with
//     1/r² = Σ_axis 1/f², f = min over sides of v/(v − v_n).
//   - Stage 2: every FarAway neighbour of an Alive cell gets a march
//     estimate and enters the narrow band (heap).
//   - Stage 3: pop the smallest estimate; stop once it exceeds maxDistance.
//     Otherwise mark it Alive and re-march its non-Alive neighbours (Add for
//     FarAway, Change for NarrowBand).
//   - Stage 4: Alive cells get sign·min(d, maxDistance), all others
//     sign·maxDistance, zero cells 0.
//
// Errors:
//   - ErrEmptyGrid for a nil or empty input.
//   - ErrDimensionMismatch when out's shape differs from in's.
//
// Complexity:
//   - Time O(N log N) for N cells within the radius, Space O(N).
func (s *Solver[T]) SolveInto(in, out *Grid[T]) (Stats, error) {
	if in == nil || in.Len() == 0 {
		return Stats{}, opErrorf(opSolve, ErrEmptyGrid)
	}
	if out == nil || out.rows != in.rows || out.cols != in.cols || out.slices != in.slices {
		return Stats{}, opErrorf(opSolve, fmt.Errorf("output shape differs from %dx%dx%d: %w", in.rows, in.cols, in.slices, ErrDimensionMismatch))
	}

	m, st := newMarcher(in, s.o.workers)
	m.seed()
	st.HeapPeak = m.propagate(s.o.maxDistance)

	maxD := s.o.maxDistance
	for i := range m.dist {
		sg := float64(m.sign[i])
		if m.label[i] == Alive {
			st.Alive++
		}
		switch {
		case sg == 0:
			out.data[i] = 0
		case m.label[i] == Alive && m.dist[i] < maxD:
			out.data[i] = T(sg * m.dist[i])
		default:
			out.data[i] = T(sg * maxD)
			st.Clamped++
		}
	}

	s.o.logger.Debug("fastmarch: solved",
		slog.Int("rows", in.rows), slog.Int("cols", in.cols), slog.Int("slices", in.slices),
		slog.Int("alive", st.Alive), slog.Int("interface", st.Interface),
		slog.Int("clamped", st.Clamped), slog.Int("heap_peak", st.HeapPeak))

	return st, nil
}

// marcher is the per-solve state. Nothing in it is shared between solves.
type marcher struct {
	axes  []axis
	dist  []float64
	label []Label
	sign  []int8
	heap  *Heap[float64]
}

// newMarcher allocates the per-solve state, runs the interface scan and
// reserves the heap for the first band: every initial Alive cell can put at
// most 2·dim neighbours into it.
func newMarcher[T vec.Float](in *Grid[T], workers int) (*marcher, Stats) {
	n := in.Len()
	m := &marcher{
		axes:  in.axes(),
		dist:  make([]float64, n),
		label: make([]Label, n),
		sign:  make([]int8, n),
		heap:  NewHeap[float64](n),
	}
	iface, zeros := scan(m, in.data, workers)
	m.heap.Reserve(min(n, (iface+zeros)*2*len(m.axes)))

	return m, Stats{Interface: iface}
}

// scan initializes sign, dist and label for every cell and returns the
// number of interface cells and of zero cells. Each chunk writes only its
// own cells.
func scan[T vec.Float](m *marcher, data []T, workers int) (iface, zeros int) {
	counts := make([]int, par.Chunks(len(data), scanGrain))
	zeroCounts := make([]int, len(counts))
	_ = par.ForLimit(len(data), scanGrain, workers, func(chunk, lo, hi int) error {
		for idx := lo; idx < hi; idx++ {
			v := float64(data[idx])
			m.dist[idx] = math.Inf(1)
			switch {
			case v > 0:
				m.sign[idx] = 1
			case v < 0:
				m.sign[idx] = -1
			default:
				m.dist[idx] = 0
				m.label[idx] = Alive
				zeroCounts[chunk]++
				continue
			}

			var inv float64
			for _, a := range m.axes {
				before, after := a.neighbours(idx, a.position(idx))
				f := math.Inf(1)
				for _, nb := range [2]int{before, after} {
					if nb < 0 {
						continue
					}
					if vn := float64(data[nb]); (v > 0 && vn < 0) || (v < 0 && vn > 0) {
						f = math.Min(f, v/(v-vn))
					}
				}
				if !math.IsInf(f, 1) {
					inv += 1 / (f * f)
				}
			}
			if inv > 0 {
				m.dist[idx] = 1 / math.Sqrt(inv)
				m.label[idx] = Alive
				counts[chunk]++
			}
		}
		return nil
	})

	for c := range counts {
		iface += counts[c]
		zeros += zeroCounts[c]
	}
	return iface, zeros
}

// seed puts every FarAway neighbour of an Alive cell into the narrow band.
func (m *marcher) seed() {
	for idx, l := range m.label {
		if l != Alive {
			continue
		}
		m.eachNeighbour(idx, func(nb int) {
			if m.label[nb] == FarAway {
				m.heap.Add(nb, m.march(nb))
				m.label[nb] = NarrowBand
			}
		})
	}
}

// propagate runs the marching loop and returns the peak heap size.
func (m *marcher) propagate(maxD float64) int {
	peak := m.heap.Len()
	for {
		e, ok := m.heap.Remove()
		if !ok || e.Value > maxD {
			return peak
		}
		m.label[e.Index] = Alive
		m.dist[e.Index] = e.Value
		m.eachNeighbour(e.Index, func(nb int) {
			switch m.label[nb] {
			case FarAway:
				m.heap.Add(nb, m.march(nb))
				m.label[nb] = NarrowBand
			case NarrowBand:
				m.heap.Change(nb, m.march(nb))
			}
		})
		peak = max(peak, m.heap.Len())
	}
}

func (m *marcher) eachNeighbour(idx int, fn func(nb int)) {
	for _, a := range m.axes {
		lo, hi := a.neighbours(idx, a.position(idx))
		if lo >= 0 {
			fn(lo)
		}
		if hi >= 0 {
			fn(hi)
		}
	}
}

// march solves the upwind Eikonal update at idx from its Alive neighbours:
// per axis a = min of the Alive neighbours' distances, then
// Σ (d − a)² = 1, i.e. d = (s + √(s² − n(s₂ − 1)))/n with s = Σa, s₂ = Σa².
// A negative discriminant falls back to min(a) + 1.
func (m *marcher) march(idx int) float64 {
	var s, s2 float64
	n := 0
	amin := math.Inf(1)
	for _, a := range m.axes {
		lo, hi := a.neighbours(idx, a.position(idx))
		best := math.Inf(1)
		if lo >= 0 && m.label[lo] == Alive {
			best = m.dist[lo]
		}
		if hi >= 0 && m.label[hi] == Alive {
			best = math.Min(best, m.dist[hi])
		}
		if math.IsInf(best, 1) {
			continue
		}
		s += best
		s2 += best * best
		amin = math.Min(amin, best)
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	nf := float64(n)
	disc := s*s - nf*(s2-1)
	if disc < 0 {
		return amin + 1
	}
	return (s + math.Sqrt(disc)) / nf
}
