// SPDX-License-Identifier: MIT

package fastmarch

import "github.com/katalvlaran/lvfield/vec"

// Indexable is a heap entry: a cell index and its key.
type Indexable[T vec.Float] struct {
	Index int
	Value T
}

// Heap is a binary min-heap over cell indices with decrease-key.
//
// Entries live in an arena; the heap array and the per-cell position table
// hold integer indices only:
//
//	arena[slot]  -> Indexable{Index: cell, Value}
//	heap[i]      -> slot, ordered by arena[slot].Value
//	pos[cell]    -> i such that arena[heap[i]].Index == cell, or -1
//
// Slots freed by Remove are recycled by later Adds. Adding a cell that is
// already present is a caller error and is not detected.
type Heap[T vec.Float] struct {
	arena []Indexable[T]
	free  []int
	heap  []int
	pos   []int
}

// NewHeap returns an empty heap for cell indices in [0, cells).
func NewHeap[T vec.Float](cells int) *Heap[T] {
	h := &Heap[T]{pos: make([]int, max(cells, 0))}
	for i := range h.pos {
		h.pos[i] = -1
	}
	return h
}

// Reserve makes room for n entries without further allocation. Past the
// reservation, storage grows by doubling.
func (h *Heap[T]) Reserve(n int) {
	if cap(h.heap) < n {
		grown := make([]int, len(h.heap), n)
		copy(grown, h.heap)
		h.heap = grown
	}
	if cap(h.arena) < n {
		grown := make([]Indexable[T], len(h.arena), n)
		copy(grown, h.arena)
		h.arena = grown
	}
}

// Cap returns the number of entries the heap holds before it next grows.
func (h *Heap[T]) Cap() int { return min(cap(h.heap), cap(h.arena)) }

// Len returns the number of entries.
func (h *Heap[T]) Len() int { return len(h.heap) }

// Contains reports whether cell is in the heap.
func (h *Heap[T]) Contains(cell int) bool {
	return cell >= 0 && cell < len(h.pos) && h.pos[cell] >= 0
}

// Add inserts cell with key v.
func (h *Heap[T]) Add(cell int, v T) {
	var slot int
	if n := len(h.free); n > 0 {
		slot = h.free[n-1]
		h.free = h.free[:n-1]
		h.arena[slot] = Indexable[T]{Index: cell, Value: v}
	} else {
		if len(h.arena) == cap(h.arena) {
			h.Reserve(max(2*cap(h.arena), 1))
		}
		slot = len(h.arena)
		h.arena = append(h.arena, Indexable[T]{Index: cell, Value: v})
	}
	if len(h.heap) == cap(h.heap) {
		h.Reserve(max(2*cap(h.heap), 1))
	}
	h.heap = append(h.heap, slot)
	h.pos[cell] = len(h.heap) - 1
	h.siftUp(len(h.heap) - 1)
}

// Peek returns the minimum entry without removing it.
func (h *Heap[T]) Peek() (Indexable[T], bool) {
	if len(h.heap) == 0 {
		return Indexable[T]{}, false
	}
	return h.arena[h.heap[0]], true
}

// Remove extracts the minimum entry.
func (h *Heap[T]) Remove() (Indexable[T], bool) {
	n := len(h.heap)
	if n == 0 {
		return Indexable[T]{}, false
	}
	slot := h.heap[0]
	top := h.arena[slot]
	h.pos[top.Index] = -1
	h.free = append(h.free, slot)

	last := h.heap[n-1]
	h.heap = h.heap[:n-1]
	if n-1 > 0 {
		h.heap[0] = last
		h.pos[h.arena[last].Index] = 0
		h.siftDown(0)
	}

	return top, true
}

// Change sets the key of cell to v and restores heap order, sifting up when
// the key decreased and down when it increased. It reports false when cell
// is not in the heap.
func (h *Heap[T]) Change(cell int, v T) bool {
	if !h.Contains(cell) {
		return false
	}
	i := h.pos[cell]
	e := &h.arena[h.heap[i]]
	old := e.Value
	e.Value = v
	switch {
	case v < old:
		h.siftUp(i)
	case v > old:
		h.siftDown(i)
	}
	return true
}

// Reset empties the heap, keeping its storage.
func (h *Heap[T]) Reset() {
	for _, slot := range h.heap {
		h.pos[h.arena[slot].Index] = -1
	}
	h.heap = h.heap[:0]
	h.arena = h.arena[:0]
	h.free = h.free[:0]
}

func (h *Heap[T]) less(i, j int) bool {
	return h.arena[h.heap[i]].Value < h.arena[h.heap[j]].Value
}

func (h *Heap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.arena[h.heap[i]].Index] = i
	h.pos[h.arena[h.heap[j]].Index] = j
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.swap(i, p)
		i = p
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.heap)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.swap(i, best)
		i = best
	}
}
