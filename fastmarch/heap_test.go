// SPDX-License-Identifier: MIT

package fastmarch_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfield/fastmarch"
)

func TestHeap_Basic(t *testing.T) {
	h := fastmarch.NewHeap[float64](10)
	h.Reserve(2)

	_, ok := h.Peek()
	assert.False(t, ok)
	_, ok = h.Remove()
	assert.False(t, ok)

	assert.Equal(t, 2, h.Cap())

	h.Add(3, 5)
	h.Add(7, 1)
	h.Add(1, 3) // grows past the reservation
	require.Equal(t, 3, h.Len())
	assert.Equal(t, 4, h.Cap())
	assert.True(t, h.Contains(7))
	assert.False(t, h.Contains(2))
	assert.False(t, h.Contains(-1))
	assert.False(t, h.Contains(99))

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, fastmarch.Indexable[float64]{Index: 7, Value: 1}, top)

	// Decrease-key moves 3 to the front; increase-key sends 7 to the back.
	require.True(t, h.Change(3, 0.5))
	require.True(t, h.Change(7, 9))
	assert.False(t, h.Change(2, 1))

	var order []int
	for h.Len() > 0 {
		e, _ := h.Remove()
		order = append(order, e.Index)
	}
	assert.Equal(t, []int{3, 1, 7}, order)
	assert.False(t, h.Contains(3))
}

func TestHeap_RecyclesSlotsAndReset(t *testing.T) {
	h := fastmarch.NewHeap[float32](4)
	for round := 0; round < 3; round++ {
		for c := 0; c < 4; c++ {
			h.Add(c, float32(4-c))
		}
		e, _ := h.Remove()
		assert.Equal(t, 3, e.Index)
		h.Reset()
		assert.Equal(t, 0, h.Len())
		for c := 0; c < 4; c++ {
			assert.False(t, h.Contains(c))
		}
	}
}

// TestHeap_RandomizedAgainstBruteForce drives random Add/Remove/Change and
// checks every Remove against a linear scan of the live keys.
func TestHeap_RandomizedAgainstBruteForce(t *testing.T) {
	const cells = 500
	rng := rand.New(rand.NewSource(7))
	h := fastmarch.NewHeap[float64](cells)
	h.Reserve(16)
	live := map[int]float64{}
	adds, removes := 0, 0

	for step := 0; step < 20000; step++ {
		switch op := rng.Intn(10); {
		case op < 5:
			c := rng.Intn(cells)
			if _, ok := live[c]; ok {
				continue
			}
			v := rng.Float64() * 100
			h.Add(c, v)
			live[c] = v
			adds++
		case op < 8:
			e, ok := h.Remove()
			require.Equal(t, len(live) > 0, ok)
			if !ok {
				continue
			}
			want := math.Inf(1)
			for _, v := range live {
				want = math.Min(want, v)
			}
			require.Equal(t, want, e.Value, "step %d", step)
			require.Equal(t, live[e.Index], e.Value)
			delete(live, e.Index)
			removes++
		default:
			c := rng.Intn(cells)
			v := rng.Float64() * 100
			_, present := live[c]
			require.Equal(t, present, h.Change(c, v))
			if present {
				live[c] = v
			}
		}
		require.Equal(t, adds-removes, h.Len())
	}
}
