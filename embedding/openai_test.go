package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *openai.Client {
	config := openai.DefaultConfig("test-key")
	config.BaseURL = serverURL
	return openai.NewClientWithConfig(config)
}

func TestOpenAIEmbedding(t *testing.T) {
	t.Run("NewOpenAIEmbedding requires API key", func(t *testing.T) {
		e, err := NewOpenAIEmbedding("", "")
		assert.Nil(t, e)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("NewOpenAIEmbedding with defaults", func(t *testing.T) {
		e, err := NewOpenAIEmbedding("test-key", "")
		require.NoError(t, err)
		assert.Equal(t, openai.AdaEmbeddingV2, e.model)
	})

	t.Run("Info returns correct values", func(t *testing.T) {
		tests := []struct {
			model      string
			dimensions int
		}{
			{"text-embedding-ada-002", 1536},
			{"text-embedding-3-small", 1536},
			{"text-embedding-3-large", 3072},
			{"some-unknown-model", 1536},
		}

		for _, tt := range tests {
			e, err := NewOpenAIEmbedding("test-key", tt.model)
			require.NoError(t, err)
			info := e.Info()
			assert.Equal(t, tt.dimensions, info.Dimensions)
		}
	})

	t.Run("GetTextEmbedding with mock server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/embeddings", r.URL.Path)

			var req openai.EmbeddingRequest
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, openai.AdaEmbeddingV2, req.Model)

			resp := openai.EmbeddingResponse{
				Data: []openai.Embedding{
					{Embedding: []float32{0.1, 0.2, 0.3}},
				},
			}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		e := NewOpenAIEmbeddingWithClient(newTestClient(server.URL), "")

		emb, err := e.GetTextEmbedding(context.Background(), "test text")
		require.NoError(t, err)
		require.Len(t, emb, 3)
		assert.InDelta(t, 0.1, emb[0], 1e-6)
		assert.InDelta(t, 0.3, emb[2], 1e-6)
	})

	t.Run("GetQueryEmbedding with mock server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := openai.EmbeddingResponse{
				Data: []openai.Embedding{
					{Embedding: []float32{0.5, 0.4}},
				},
			}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		e := NewOpenAIEmbeddingWithClient(newTestClient(server.URL), "")

		emb, err := e.GetQueryEmbedding(context.Background(), "test query")
		require.NoError(t, err)
		assert.Len(t, emb, 2)
	})

	t.Run("empty response data is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(openai.EmbeddingResponse{})
		}))
		defer server.Close()

		e := NewOpenAIEmbeddingWithClient(newTestClient(server.URL), "")

		_, err := e.GetTextEmbedding(context.Background(), "test")
		assert.ErrorContains(t, err, "no embeddings")
	})

	t.Run("server error surfaces to caller", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		e := NewOpenAIEmbeddingWithClient(newTestClient(server.URL), "")

		_, err := e.GetTextEmbedding(context.Background(), "test")
		assert.Error(t, err)
	})
}

func TestMockEmbeddingModel(t *testing.T) {
	m := &MockEmbeddingModel{
		Embedding: []float64{0, 0},
		ByText: map[string][]float64{
			"hello": {1, 0},
		},
	}

	emb, err := m.GetTextEmbedding(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, emb)

	emb, err = m.GetQueryEmbedding(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, emb)

	assert.Equal(t, []string{"hello", "other"}, m.Calls)
}
