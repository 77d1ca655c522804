package par_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfield/internal/par"
)

func TestChunks(t *testing.T) {
	require.Equal(t, 0, par.Chunks(0, 10))
	require.Equal(t, 1, par.Chunks(10, 10))
	require.Equal(t, 2, par.Chunks(11, 10))
	require.Equal(t, 1, par.Chunks(10, 0))
}

func TestFor_CoversEveryIndexOnce(t *testing.T) {
	const n = 10007
	hits := make([]int32, n)
	err := par.For(n, 100, func(_, lo, hi int) error {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
		return nil
	})
	require.NoError(t, err)
	for i, h := range hits {
		require.Equalf(t, int32(1), h, "index %d", i)
	}
}

func TestFor_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := par.For(1000, 10, func(chunk, _, _ int) error {
		if chunk == 7 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestFor_SingleChunkRunsInline(t *testing.T) {
	calls := 0
	err := par.For(5, 10, func(chunk, lo, hi int) error {
		calls++
		require.Equal(t, 0, chunk)
		require.Equal(t, 0, lo)
		require.Equal(t, 5, hi)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestForLimit_OneWorkerRunsInOrder(t *testing.T) {
	var order []int
	err := par.ForLimit(35, 10, 1, func(chunk, lo, hi int) error {
		order = append(order, chunk)
		require.Equal(t, chunk*10, lo)
		require.LessOrEqual(t, hi, 35)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, order)
}
