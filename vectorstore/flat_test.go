package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatIndexAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("positions follow insertion order", func(t *testing.T) {
		idx := NewFlatIndex(2)

		pos, err := idx.Add(ctx, []float64{1, 0})
		require.NoError(t, err)
		assert.Equal(t, 0, pos)

		pos, err = idx.Add(ctx, []float64{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, pos)

		assert.Equal(t, 2, idx.Len())
	})

	t.Run("dimension mismatch is rejected", func(t *testing.T) {
		idx := NewFlatIndex(3)

		_, err := idx.Add(ctx, []float64{1, 2})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("zero dim adopts first vector", func(t *testing.T) {
		idx := NewFlatIndex(0)

		_, err := idx.Add(ctx, []float64{1, 2, 3, 4})
		require.NoError(t, err)
		assert.Equal(t, 4, idx.Dimensions())

		_, err = idx.Add(ctx, []float64{1, 2})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("empty vector is rejected", func(t *testing.T) {
		idx := NewFlatIndex(2)

		_, err := idx.Add(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyVector)
	})

	t.Run("stored vector is copied", func(t *testing.T) {
		idx := NewFlatIndex(2)

		v := []float64{1, 0}
		_, err := idx.Add(ctx, v)
		require.NoError(t, err)
		v[0] = 99

		res, err := idx.Search(ctx, []float64{1, 0}, 1)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, res.Distances[0], 1e-9)
	})
}

func TestFlatIndexSearch(t *testing.T) {
	ctx := context.Background()

	newIndex := func(t *testing.T) *FlatIndex {
		t.Helper()
		idx := NewFlatIndex(2)
		for _, v := range [][]float64{{0, 0}, {3, 4}, {1, 0}, {10, 10}} {
			_, err := idx.Add(ctx, v)
			require.NoError(t, err)
		}
		return idx
	}

	t.Run("results ascend by distance", func(t *testing.T) {
		idx := newIndex(t)

		res, err := idx.Search(ctx, []float64{0, 0}, 4)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 1, 3}, res.Positions)
		for i := 1; i < len(res.Distances); i++ {
			assert.GreaterOrEqual(t, res.Distances[i], res.Distances[i-1])
		}
		assert.InDelta(t, 0.0, res.Distances[0], 1e-9)
		assert.InDelta(t, 1.0, res.Distances[1], 1e-9)
		assert.InDelta(t, 5.0, res.Distances[2], 1e-9)
	})

	t.Run("k larger than store size is clamped", func(t *testing.T) {
		idx := newIndex(t)

		res, err := idx.Search(ctx, []float64{0, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, res.Positions, 4)
		assert.Len(t, res.Distances, 4)
	})

	t.Run("k must be positive", func(t *testing.T) {
		idx := newIndex(t)

		_, err := idx.Search(ctx, []float64{0, 0}, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("empty index returns empty result", func(t *testing.T) {
		idx := NewFlatIndex(2)

		res, err := idx.Search(ctx, []float64{0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, res.Positions)
		assert.Empty(t, res.Distances)
	})

	t.Run("query dimension mismatch is rejected", func(t *testing.T) {
		idx := newIndex(t)

		_, err := idx.Search(ctx, []float64{0, 0, 0}, 1)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("ties rank by insertion position", func(t *testing.T) {
		idx := NewFlatIndex(1)
		for _, v := range [][]float64{{1}, {1}, {1}} {
			_, err := idx.Add(ctx, v)
			require.NoError(t, err)
		}

		res, err := idx.Search(ctx, []float64{1}, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, res.Positions)
	})
}
