// Package optimizer bridges a text-embedding provider and an in-memory
// similarity index: texts are embedded remotely, stored by insertion
// position, and queried by k-nearest-neighbor distance.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ygriggs1/llm-chatbot-optimizer/embedding"
	"github.com/ygriggs1/llm-chatbot-optimizer/vectorstore"
)

// Config holds the explicit configuration for a provider-backed Optimizer.
// The API key is passed in here and never stored in any global state.
type Config struct {
	// APIKey is the embedding provider credential. Required.
	APIKey string
	// EmbedModel is the embedding model name. Empty selects the provider
	// default (text-embedding-ada-002).
	EmbedModel string
	// Dimensions fixes the index dimensionality. 0 adopts the first
	// embedding's length.
	Dimensions int
}

// QueryResult pairs stored positions with their distances to a query,
// ranked ascending by distance. Texts carries the originally added text for
// each position when the Optimizer has it (entries loaded from a reopened
// persistent index have none).
type QueryResult struct {
	Positions []int     `json:"positions"`
	Distances []float64 `json:"distances"`
	Texts     []string  `json:"texts,omitempty"`
}

// Optimizer wraps an embedding model and a similarity index.
//
// All operations are synchronous and block until the provider or index
// returns. The Optimizer serializes its own bookkeeping, but callers that
// need a deterministic insertion order across goroutines must serialize Add
// themselves.
type Optimizer struct {
	embed  embedding.EmbeddingModel
	index  vectorstore.SimilarityIndex
	logger *slog.Logger

	mu    sync.Mutex
	texts map[int]string
}

// New creates an Optimizer backed by the OpenAI embeddings endpoint and a
// flat Euclidean index. It fails fast with embedding.ErrMissingAPIKey before
// any network call if the credential is absent.
func New(cfg Config) (*Optimizer, error) {
	embedModel, err := embedding.NewOpenAIEmbedding(cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return nil, err
	}
	return NewWithComponents(embedModel, vectorstore.NewFlatIndex(cfg.Dimensions)), nil
}

// NewWithComponents creates an Optimizer from an explicit embedding model
// and index. Useful for alternate backends and tests.
func NewWithComponents(embed embedding.EmbeddingModel, index vectorstore.SimilarityIndex) *Optimizer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &Optimizer{
		embed:  embed,
		index:  index,
		logger: logger,
		texts:  make(map[int]string),
	}
}

// EmbedText generates an embedding for the given text. The provider call is
// made once, with no retry; failures surface directly to the caller.
func (o *Optimizer) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vector, err := o.embed.GetTextEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	return vector, nil
}

// Add embeds the text and appends the vector to the index, returning the
// assigned position (insertion order).
func (o *Optimizer) Add(ctx context.Context, text string) (int, error) {
	vector, err := o.EmbedText(ctx, text)
	if err != nil {
		return 0, err
	}

	position, err := o.index.Add(ctx, vector)
	if err != nil {
		return 0, fmt.Errorf("add to index: %w", err)
	}

	o.mu.Lock()
	o.texts[position] = text
	o.mu.Unlock()

	o.logger.Debug("added text to index", "position", position, "text_len", len(text))
	return position, nil
}

// Query embeds the text and returns the k stored entries closest to it,
// ascending by distance. If fewer than k entries are stored, all are
// returned.
func (o *Optimizer) Query(ctx context.Context, text string, k int) (QueryResult, error) {
	vector, err := o.embed.GetQueryEmbedding(ctx, text)
	if err != nil {
		return QueryResult{}, fmt.Errorf("embed query: %w", err)
	}

	res, err := o.index.Search(ctx, vector, k)
	if err != nil {
		return QueryResult{}, fmt.Errorf("search index: %w", err)
	}

	result := QueryResult{
		Positions: res.Positions,
		Distances: res.Distances,
		Texts:     make([]string, len(res.Positions)),
	}

	o.mu.Lock()
	for i, pos := range res.Positions {
		result.Texts[i] = o.texts[pos]
	}
	o.mu.Unlock()

	return result, nil
}

// Len returns the number of stored entries.
func (o *Optimizer) Len() int {
	return o.index.Len()
}

// Text returns the originally added text for a position, if known.
func (o *Optimizer) Text(position int) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	text, ok := o.texts[position]
	return text, ok
}
