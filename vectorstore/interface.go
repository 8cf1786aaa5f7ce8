package vectorstore

import (
	"context"
	"errors"
)

// SearchResult holds the outcome of a nearest-neighbor search: stored
// positions and their distances to the query vector, ranked ascending by
// distance. Positions reference insertion order, starting at 0.
type SearchResult struct {
	Positions []int     `json:"positions"`
	Distances []float64 `json:"distances"`
}

// SimilarityIndex is the interface for in-memory nearest-neighbor indexes
// over fixed-dimension vectors. Entries are append-only and addressed by
// insertion position; there is no update or delete.
type SimilarityIndex interface {
	// Add appends a vector and returns its position.
	Add(ctx context.Context, vector []float64) (int, error)
	// Search returns the k stored vectors closest to the query vector.
	// If fewer than k vectors are stored, all of them are returned.
	Search(ctx context.Context, vector []float64, k int) (SearchResult, error)
	// Len returns the number of stored vectors.
	Len() int
	// Dimensions returns the index dimensionality, or 0 if not yet fixed.
	Dimensions() int
}

var (
	// ErrDimensionMismatch is returned when a vector's length differs from
	// the index's fixed dimensionality.
	ErrDimensionMismatch = errors.New("vectorstore: vector dimension mismatch")
	// ErrEmptyVector is returned when an empty vector is added or searched.
	ErrEmptyVector = errors.New("vectorstore: vector must not be empty")
	// ErrInvalidK is returned when a search is requested with k < 1.
	ErrInvalidK = errors.New("vectorstore: k must be positive")
)
