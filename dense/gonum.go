// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfield/vec"
)

// Channel exports channel k as a gonum matrix (float64, row-major copy).
//
// Errors:
//   - ErrOutOfRange for k outside [0, C).
//   - ErrBadShape for an empty matrix (gonum has no 0×n matrices).
func (m *Dense[T, C]) Channel(k int) (*mat.Dense, error) {
	if k < 0 || k >= vec.Channels[C]() {
		return nil, opErrorf(opChannel, fmt.Errorf("channel %d: %w", k, ErrOutOfRange))
	}
	if m.r == 0 || m.c == 0 {
		return nil, opErrorf(opChannel, fmt.Errorf("%dx%d: %w", m.r, m.c, ErrBadShape))
	}

	return mat.NewDense(m.r, m.c, m.plane(k)), nil
}

// FromChannels builds a Dense from one gonum matrix per channel. Exactly C
// matrices of identical shape are required.
func FromChannels[T vec.Float, C vec.Arity](chs ...mat.Matrix) (*Dense[T, C], error) {
	nc := vec.Channels[C]()
	if len(chs) != nc {
		return nil, opErrorf(opFromChannels, fmt.Errorf("%d channels, want %d: %w", len(chs), nc, ErrDimensionMismatch))
	}
	r, c := chs[0].Dims()
	planes := make([][]float64, nc)
	for k, ch := range chs {
		cr, cc := ch.Dims()
		if cr != r || cc != c {
			return nil, opErrorf(opFromChannels, fmt.Errorf("channel %d is %dx%d, want %dx%d: %w", k, cr, cc, r, c, ErrDimensionMismatch))
		}
		p := make([]float64, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				p[i*c+j] = ch.At(i, j)
			}
		}
		planes[k] = p
	}

	return fromPlanes[T, C](r, c, planes), nil
}
