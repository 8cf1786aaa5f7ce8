package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when an embedding provider is constructed
// without a credential. No network call is attempted in that case.
var ErrMissingAPIKey = errors.New("embedding: missing API key")

// OpenAIEmbedding generates embeddings using the OpenAI embeddings endpoint.
type OpenAIEmbedding struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *slog.Logger
}

// NewOpenAIEmbedding creates an OpenAI embedding model with an explicit API
// key. The key is required; callers that want to source it from the
// environment must resolve it before constructing the model.
func NewOpenAIEmbedding(apiKey string, modelName string) (*OpenAIEmbedding, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewOpenAIEmbeddingWithClient(openai.NewClient(apiKey), modelName), nil
}

// NewOpenAIEmbeddingWithClient creates an OpenAI embedding model from a
// pre-configured client. Useful for custom base URLs and tests.
func NewOpenAIEmbeddingWithClient(client *openai.Client, modelName string) *OpenAIEmbedding {
	var model openai.EmbeddingModel
	if modelName == "" {
		model = openai.AdaEmbeddingV2
	} else {
		model = openai.EmbeddingModel(modelName)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAIEmbedding{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIEmbedding) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	return o.getEmbedding(ctx, text, "text")
}

func (o *OpenAIEmbedding) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	return o.getEmbedding(ctx, query, "query")
}

func (o *OpenAIEmbedding) getEmbedding(ctx context.Context, input string, typeLabel string) ([]float64, error) {
	resp, err := o.client.CreateEmbeddings(
		ctx,
		openai.EmbeddingRequest{
			Input: []string{input},
			Model: o.model,
		},
	)

	if err != nil {
		o.logger.Error("GetEmbedding failed", "type", typeLabel, "error", err)
		return nil, fmt.Errorf("openai embedding failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embeddings")
	}

	// Convert float32 to float64
	embedding32 := resp.Data[0].Embedding
	embedding64 := make([]float64, len(embedding32))
	for i, v := range embedding32 {
		embedding64[i] = float64(v)
	}

	return embedding64, nil
}

// Info returns information about the model's capabilities.
func (o *OpenAIEmbedding) Info() EmbeddingInfo {
	switch o.model {
	case openai.SmallEmbedding3:
		return OpenAISmallEmbedding3Info()
	case openai.LargeEmbedding3:
		return OpenAILargeEmbedding3Info()
	case openai.AdaEmbeddingV2:
		return OpenAIAdaEmbeddingInfo()
	default:
		return DefaultEmbeddingInfo(string(o.model))
	}
}

// Ensure OpenAIEmbedding implements the interfaces.
var _ EmbeddingModel = (*OpenAIEmbedding)(nil)
var _ EmbeddingModelWithInfo = (*OpenAIEmbedding)(nil)
