// Package fastmarch converts a sampled scalar field into a signed distance
// field with Sethian's fast marching method.
//
// The zero level set of the input is the interface. Each output cell keeps the
// sign of its input cell; its magnitude is the distance, in cells, to the
// interface, capped at a maximum distance (WithMaxDistance, default 16).
// Images (one slice) and volumes are handled alike: only axes with more than
// one cell take part.
//
// Stages:
//
//   - Cells that are zero, or that have an axis neighbour of strictly
//     opposite sign, are final from the start. The crossing along an axis is
//     placed by linear interpolation and the per-axis offsets f combine as
//     1/√(Σ 1/f²). This scan runs in parallel (WithWorkers).
//   - The rest of the field is swept outward in order of increasing distance
//     with a narrow band kept in Heap, an indexed min-heap with decrease-key.
//     Each update solves the first-order upwind Eikonal equation |∇d| = 1.
//   - Propagation stops once the smallest tentative distance exceeds the
//     maximum; everything not reached is written as ±maximum.
//
// Grid stores cells in a flat slice, column fastest, then row, then slice.
//
// Quick example:
//
//	in, _ := fastmarch.GridFrom(1, 5, 1, []float64{1, 1, 0, 1, 1})
//	out, err := fastmarch.Solve(in)
//	// out.Data() == [2 1 0 1 2]
package fastmarch
