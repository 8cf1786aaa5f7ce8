package vectorstore

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
)

// ChromemIndex is a SimilarityIndex backed by chromem-go. Unlike FlatIndex
// it ranks by cosine distance (1 - cosine similarity) and can optionally
// persist to disk. Positions are carried in document metadata so they
// survive reopening a persistent collection.
type ChromemIndex struct {
	mu         sync.Mutex
	db         *chromem.DB
	collection *chromem.Collection
	dim        int
	count      int
}

// NewChromemIndex creates a ChromemIndex. If persistPath is empty the index
// is in-memory only. If dim is 0, the index adopts the dimensionality of the
// first added vector.
func NewChromemIndex(persistPath string, collectionName string, dim int) (*ChromemIndex, error) {
	var db *chromem.DB
	if persistPath != "" {
		var err error
		db, err = chromem.NewPersistentDB(persistPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create persistent chromem db: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are computed externally and passed in explicitly, so no
	// embedding function is registered with the collection.
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create collection: %w", err)
	}

	return &ChromemIndex{
		db:         db,
		collection: collection,
		dim:        dim,
		count:      collection.Count(),
	}, nil
}

// Add appends a vector and returns its position.
func (c *ChromemIndex) Add(ctx context.Context, vector []float64) (int, error) {
	if len(vector) == 0 {
		return 0, ErrEmptyVector
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dim == 0 {
		c.dim = len(vector)
	} else if len(vector) != c.dim {
		return 0, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), c.dim)
	}

	embedding32 := make([]float32, len(vector))
	for i, v := range vector {
		embedding32[i] = float32(v)
	}

	position := c.count
	doc := chromem.Document{
		ID:        uuid.NewString(),
		Metadata:  map[string]string{"position": strconv.Itoa(position)},
		Embedding: embedding32,
		// chromem requires non-empty content when no embedding func is set.
		Content: strconv.Itoa(position),
	}

	if err := c.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return 0, fmt.Errorf("failed to add document to chromem collection: %w", err)
	}

	c.count++
	return position, nil
}

// Search returns the k nearest stored vectors, ascending by cosine distance.
// k is clamped to the store size.
func (c *ChromemIndex) Search(ctx context.Context, vector []float64, k int) (SearchResult, error) {
	if k < 1 {
		return SearchResult{}, ErrInvalidK
	}
	if len(vector) == 0 {
		return SearchResult{}, ErrEmptyVector
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 {
		return SearchResult{Positions: []int{}, Distances: []float64{}}, nil
	}
	if c.dim != 0 && len(vector) != c.dim {
		return SearchResult{}, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), c.dim)
	}
	if k > c.count {
		k = c.count
	}

	embedding32 := make([]float32, len(vector))
	for i, v := range vector {
		embedding32[i] = float32(v)
	}

	results, err := c.collection.QueryEmbedding(ctx, embedding32, k, nil, nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("failed to query chromem collection: %w", err)
	}

	out := SearchResult{
		Positions: make([]int, len(results)),
		Distances: make([]float64, len(results)),
	}
	for i, res := range results {
		position, err := strconv.Atoi(res.Metadata["position"])
		if err != nil {
			return SearchResult{}, fmt.Errorf("document %s has no position metadata: %w", res.ID, err)
		}
		out.Positions[i] = position
		out.Distances[i] = 1 - float64(res.Similarity)
	}
	return out, nil
}

// Len returns the number of stored vectors.
func (c *ChromemIndex) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Dimensions returns the index dimensionality, or 0 if not yet fixed.
func (c *ChromemIndex) Dimensions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dim
}

// Ensure ChromemIndex implements SimilarityIndex.
var _ SimilarityIndex = (*ChromemIndex)(nil)
