// SPDX-License-Identifier: MIT

package contour

import (
	"fmt"

	"github.com/katalvlaran/lvfield/fastmarch"
	"github.com/katalvlaran/lvfield/internal/par"
	"github.com/katalvlaran/lvfield/vec"
)

// rowGrain is the number of cell rows per parallel chunk.
const rowGrain = 64

// Point is a position in grid coordinates: X along columns, Y along rows.
type Point struct {
	X, Y float64
}

// Segment is one piece of an iso-line, crossing a single grid cell.
type Segment struct {
	A, B Point
}

// Cell edges, in the order they are tested.
const (
	edgeTop    = iota // (i,j) – (i,j+1)
	edgeRight         // (i,j+1) – (i+1,j+1)
	edgeBottom        // (i+1,j) – (i+1,j+1)
	edgeLeft          // (i,j) – (i+1,j)
)

// Extract traces the iso-line {v = level} of an image with marching squares.
//
// A corner is above the level when its value is strictly greater. Each edge
// joining an above corner to a non-above one is cut at the linearly
// interpolated crossing. Cells with two cut edges give one segment; saddle
// cells (four cut edges) give two, paired by comparing the mean of the four
// corners with the level.
//
// Segments come out row by row, left to right, with A on the earlier edge in
// the order top, right, bottom, left. Grids with fewer than two rows or
// columns have no cells and yield no segments.
//
// Errors:
//   - ErrNilGrid for a nil grid.
//   - ErrNotImage when the grid has more than one slice.
func Extract[T vec.Float](g *fastmarch.Grid[T], level T) ([]Segment, error) {
	if g == nil {
		return nil, opErrorf(opExtract, ErrNilGrid)
	}
	rows, cols, slices := g.Dims()
	if slices != 1 {
		return nil, opErrorf(opExtract, fmt.Errorf("%d slices: %w", slices, ErrNotImage))
	}
	if rows < 2 || cols < 2 {
		return nil, nil
	}

	data := g.Data()
	lv := float64(level)
	parts := make([][]Segment, par.Chunks(rows-1, rowGrain))
	_ = par.For(rows-1, rowGrain, func(chunk, lo, hi int) error {
		var out []Segment
		for i := lo; i < hi; i++ {
			for j := 0; j < cols-1; j++ {
				c := cell{
					i: i, j: j,
					v: [4]float64{
						float64(data[i*cols+j]),
						float64(data[i*cols+j+1]),
						float64(data[(i+1)*cols+j+1]),
						float64(data[(i+1)*cols+j]),
					},
				}
				out = c.segments(lv, out)
			}
		}
		parts[chunk] = out
		return nil
	})

	var segs []Segment
	for _, p := range parts {
		segs = append(segs, p...)
	}
	return segs, nil
}

// cell is one grid square. v holds the corner values clockwise from the
// top-left: (i,j), (i,j+1), (i+1,j+1), (i+1,j).
type cell struct {
	i, j int
	v    [4]float64
}

// edgeCorners maps an edge to its two corners in v.
var edgeCorners = [4][2]int{
	edgeTop:    {0, 1},
	edgeRight:  {1, 2},
	edgeBottom: {3, 2},
	edgeLeft:   {0, 3},
}

// cornerOffsets is (dx, dy) of each corner relative to (j, i).
var cornerOffsets = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func (c cell) segments(level float64, out []Segment) []Segment {
	var cut [4]int
	n := 0
	for e, ab := range edgeCorners {
		if (c.v[ab[0]] > level) != (c.v[ab[1]] > level) {
			cut[n] = e
			n++
		}
	}

	switch n {
	case 2:
		return append(out, Segment{A: c.crossing(cut[0], level), B: c.crossing(cut[1], level)})
	case 4:
		mean := (c.v[0] + c.v[1] + c.v[2] + c.v[3]) / 4
		// Pair the cut edges around the corners that are on the other side
		// of the level from the centre.
		if (c.v[0] > level) != (mean > level) {
			// Corners 0 and 2 are isolated.
			return append(out,
				Segment{A: c.crossing(edgeTop, level), B: c.crossing(edgeLeft, level)},
				Segment{A: c.crossing(edgeRight, level), B: c.crossing(edgeBottom, level)})
		}
		// Corners 1 and 3 are isolated.
		return append(out,
			Segment{A: c.crossing(edgeTop, level), B: c.crossing(edgeRight, level)},
			Segment{A: c.crossing(edgeBottom, level), B: c.crossing(edgeLeft, level)})
	default:
		return out
	}
}

// crossing returns the point on edge e where the linear interpolant between
// its corners equals level. The corners lie on opposite sides of level.
func (c cell) crossing(e int, level float64) Point {
	a, b := edgeCorners[e][0], edgeCorners[e][1]
	t := (level - c.v[a]) / (c.v[b] - c.v[a])
	pa, pb := cornerOffsets[a], cornerOffsets[b]
	return Point{
		X: float64(c.j) + pa[0] + t*(pb[0]-pa[0]),
		Y: float64(c.i) + pa[1] + t*(pb[1]-pa[1]),
	}
}
