package optimizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygriggs1/llm-chatbot-optimizer/embedding"
	"github.com/ygriggs1/llm-chatbot-optimizer/vectorstore"
)

func newMockOptimizer(byText map[string][]float64) *Optimizer {
	embed := &embedding.MockEmbeddingModel{
		Embedding: []float64{0, 0, 0},
		ByText:    byText,
	}
	return NewWithComponents(embed, vectorstore.NewFlatIndex(3))
}

func TestNew(t *testing.T) {
	t.Run("missing API key fails fast", func(t *testing.T) {
		o, err := New(Config{})
		assert.Nil(t, o)
		assert.ErrorIs(t, err, embedding.ErrMissingAPIKey)
	})

	t.Run("valid config constructs", func(t *testing.T) {
		o, err := New(Config{APIKey: "test-key", Dimensions: 1536})
		require.NoError(t, err)
		assert.Equal(t, 0, o.Len())
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("positions follow insertion order", func(t *testing.T) {
		o := newMockOptimizer(nil)

		for i := 0; i < 5; i++ {
			pos, err := o.Add(ctx, "some text")
			require.NoError(t, err)
			assert.Equal(t, i, pos)
		}
		assert.Equal(t, 5, o.Len())
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		embed := &embedding.MockEmbeddingModel{Err: errors.New("provider down")}
		o := NewWithComponents(embed, vectorstore.NewFlatIndex(3))

		_, err := o.Add(ctx, "text")
		assert.ErrorContains(t, err, "provider down")
		assert.Equal(t, 0, o.Len())
	})

	t.Run("dimension mismatch surfaces", func(t *testing.T) {
		o := newMockOptimizer(map[string][]float64{
			"short": {1, 0},
		})

		_, err := o.Add(ctx, "short")
		assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
	})

	t.Run("added text is retrievable by position", func(t *testing.T) {
		o := newMockOptimizer(nil)

		pos, err := o.Add(ctx, "remember me")
		require.NoError(t, err)

		text, ok := o.Text(pos)
		assert.True(t, ok)
		assert.Equal(t, "remember me", text)

		_, ok = o.Text(pos + 1)
		assert.False(t, ok)
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	capitals := map[string][]float64{
		"Paris is the capital of France":   {1, 0, 0},
		"Tokyo is the capital of Japan":    {0, 1, 0},
		"What is the capital of France?":   {0.9, 0.1, 0},
		"Paris is the capital of France 2": {1, 0, 0.01},
	}

	t.Run("closest entry ranks first", func(t *testing.T) {
		o := newMockOptimizer(capitals)

		_, err := o.Add(ctx, "Paris is the capital of France")
		require.NoError(t, err)
		_, err = o.Add(ctx, "Tokyo is the capital of Japan")
		require.NoError(t, err)

		res, err := o.Query(ctx, "What is the capital of France?", 1)
		require.NoError(t, err)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 0, res.Positions[0])
		assert.Equal(t, "Paris is the capital of France", res.Texts[0])
	})

	t.Run("exact text returns near-zero distance", func(t *testing.T) {
		o := newMockOptimizer(capitals)

		_, err := o.Add(ctx, "Paris is the capital of France")
		require.NoError(t, err)
		_, err = o.Add(ctx, "Tokyo is the capital of Japan")
		require.NoError(t, err)

		res, err := o.Query(ctx, "Paris is the capital of France", 2)
		require.NoError(t, err)
		require.Len(t, res.Positions, 2)
		assert.Equal(t, 0, res.Positions[0])
		assert.InDelta(t, 0.0, res.Distances[0], 1e-9)
	})

	t.Run("distances are non-decreasing", func(t *testing.T) {
		o := newMockOptimizer(capitals)

		for _, text := range []string{
			"Paris is the capital of France",
			"Tokyo is the capital of Japan",
			"Paris is the capital of France 2",
		} {
			_, err := o.Add(ctx, text)
			require.NoError(t, err)
		}

		res, err := o.Query(ctx, "What is the capital of France?", 3)
		require.NoError(t, err)
		require.Len(t, res.Distances, 3)
		for i := 1; i < len(res.Distances); i++ {
			assert.GreaterOrEqual(t, res.Distances[i], res.Distances[i-1])
		}
	})

	t.Run("k larger than store returns all entries", func(t *testing.T) {
		o := newMockOptimizer(capitals)

		_, err := o.Add(ctx, "Paris is the capital of France")
		require.NoError(t, err)

		res, err := o.Query(ctx, "What is the capital of France?", 10)
		require.NoError(t, err)
		assert.Len(t, res.Positions, 1)
		assert.Len(t, res.Distances, 1)
	})

	t.Run("query on empty store returns empty result", func(t *testing.T) {
		o := newMockOptimizer(capitals)

		res, err := o.Query(ctx, "anything", 5)
		require.NoError(t, err)
		assert.Empty(t, res.Positions)
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		embed := &embedding.MockEmbeddingModel{Err: errors.New("provider down")}
		o := NewWithComponents(embed, vectorstore.NewFlatIndex(3))

		_, err := o.Query(ctx, "text", 1)
		assert.ErrorContains(t, err, "provider down")
	})
}

func TestEmbedText(t *testing.T) {
	o := newMockOptimizer(map[string][]float64{"hello": {1, 2, 3}})

	v, err := o.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)
}
