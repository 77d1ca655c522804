// SPDX-License-Identifier: MIT

package fastmarch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarcher_ReservesFirstBand(t *testing.T) {
	point, err := NewImage[float64](8, 8)
	require.NoError(t, err)
	for i := range point.data {
		point.data[i] = 1
	}
	point.Set(4, 4, 0, 0)

	m, st := newMarcher(point, 1)
	assert.Equal(t, 0, st.Interface)
	assert.Equal(t, 0, m.heap.Len())
	assert.Equal(t, 4, m.heap.Cap(), "one zero cell, four neighbours")

	m.seed()
	assert.Equal(t, 4, m.heap.Len())
	assert.Equal(t, 4, m.heap.Cap(), "seeding fits the reservation")

	// A vertical interface: two columns of 8 cells, capped at the grid size.
	plane, err := NewImage[float64](8, 8)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			plane.Set(i, j, 0, float64(j)-3.5)
		}
	}
	m, st = newMarcher(plane, 0)
	assert.Equal(t, 16, st.Interface)
	assert.Equal(t, 64, m.heap.Cap())
}
