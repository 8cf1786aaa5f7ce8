package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromemIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("add and search in memory", func(t *testing.T) {
		idx, err := NewChromemIndex("", "test", 2)
		require.NoError(t, err)

		pos, err := idx.Add(ctx, []float64{1, 0})
		require.NoError(t, err)
		assert.Equal(t, 0, pos)

		pos, err = idx.Add(ctx, []float64{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, pos)

		res, err := idx.Search(ctx, []float64{1, 0.1}, 1)
		require.NoError(t, err)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 0, res.Positions[0])
	})

	t.Run("distances ascend", func(t *testing.T) {
		idx, err := NewChromemIndex("", "test", 2)
		require.NoError(t, err)

		for _, v := range [][]float64{{1, 0}, {0, 1}, {0.9, 0.1}} {
			_, err := idx.Add(ctx, v)
			require.NoError(t, err)
		}

		res, err := idx.Search(ctx, []float64{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, res.Distances, 3)
		for i := 1; i < len(res.Distances); i++ {
			assert.GreaterOrEqual(t, res.Distances[i], res.Distances[i-1])
		}
		assert.InDelta(t, 0.0, res.Distances[0], 1e-6)
	})

	t.Run("k larger than store size is clamped", func(t *testing.T) {
		idx, err := NewChromemIndex("", "test", 2)
		require.NoError(t, err)

		_, err = idx.Add(ctx, []float64{1, 0})
		require.NoError(t, err)

		res, err := idx.Search(ctx, []float64{1, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, res.Positions, 1)
	})

	t.Run("dimension mismatch is rejected", func(t *testing.T) {
		idx, err := NewChromemIndex("", "test", 2)
		require.NoError(t, err)

		_, err = idx.Add(ctx, []float64{1, 0, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("empty index returns empty result", func(t *testing.T) {
		idx, err := NewChromemIndex("", "test", 2)
		require.NoError(t, err)

		res, err := idx.Search(ctx, []float64{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, res.Positions)
	})

	t.Run("persistent index reopens with positions intact", func(t *testing.T) {
		dir := t.TempDir()

		idx, err := NewChromemIndex(dir, "persist", 2)
		require.NoError(t, err)
		_, err = idx.Add(ctx, []float64{1, 0})
		require.NoError(t, err)
		_, err = idx.Add(ctx, []float64{0, 1})
		require.NoError(t, err)

		reopened, err := NewChromemIndex(dir, "persist", 2)
		require.NoError(t, err)
		assert.Equal(t, 2, reopened.Len())

		pos, err := reopened.Add(ctx, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 2, pos)

		res, err := reopened.Search(ctx, []float64{0, 1}, 1)
		require.NoError(t, err)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 1, res.Positions[0])
	})
}
