// SPDX-License-Identifier: MIT

package fastmarch

import "fmt"

// Label is the per-cell state of a fast-marching solve. A cell only moves
// forward: FarAway → NarrowBand → Alive.
type Label uint8

const (
	// FarAway cells have no estimate yet.
	FarAway Label = iota
	// NarrowBand cells hold a tentative distance in the heap.
	NarrowBand
	// Alive cells hold their final distance.
	Alive
)

// String returns the label name.
func (l Label) String() string {
	switch l {
	case FarAway:
		return "far-away"
	case NarrowBand:
		return "narrow-band"
	case Alive:
		return "alive"
	default:
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
}
