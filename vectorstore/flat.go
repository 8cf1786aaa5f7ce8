package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// FlatIndex is a flat in-memory index that ranks by exact Euclidean (L2)
// distance with no approximation. Every search scans all stored vectors.
type FlatIndex struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float64
}

// NewFlatIndex creates a FlatIndex with a fixed dimensionality.
// If dim is 0, the index adopts the dimensionality of the first added vector.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

// Add appends a vector and returns its position (insertion order).
func (f *FlatIndex) Add(ctx context.Context, vector []float64) (int, error) {
	if len(vector) == 0 {
		return 0, ErrEmptyVector
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dim == 0 {
		f.dim = len(vector)
	} else if len(vector) != f.dim {
		return 0, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), f.dim)
	}

	stored := make([]float64, len(vector))
	copy(stored, vector)
	f.vectors = append(f.vectors, stored)
	return len(f.vectors) - 1, nil
}

// Search returns the k nearest stored vectors, ascending by distance.
// k is clamped to the store size; ties rank by insertion position.
func (f *FlatIndex) Search(ctx context.Context, vector []float64, k int) (SearchResult, error) {
	if k < 1 {
		return SearchResult{}, ErrInvalidK
	}
	if len(vector) == 0 {
		return SearchResult{}, ErrEmptyVector
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.vectors) == 0 {
		return SearchResult{Positions: []int{}, Distances: []float64{}}, nil
	}
	if f.dim != 0 && len(vector) != f.dim {
		return SearchResult{}, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), f.dim)
	}

	type scored struct {
		position int
		distSq   float64
	}
	scores := make([]scored, len(f.vectors))
	for i, v := range f.vectors {
		var sum float64
		for j := range v {
			diff := v[j] - vector[j]
			sum += diff * diff
		}
		scores[i] = scored{position: i, distSq: sum}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].distSq < scores[j].distSq
	})

	if k > len(scores) {
		k = len(scores)
	}

	result := SearchResult{
		Positions: make([]int, k),
		Distances: make([]float64, k),
	}
	for i := 0; i < k; i++ {
		result.Positions[i] = scores[i].position
		result.Distances[i] = math.Sqrt(scores[i].distSq)
	}
	return result, nil
}

// Len returns the number of stored vectors.
func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// Dimensions returns the index dimensionality, or 0 if not yet fixed.
func (f *FlatIndex) Dimensions() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dim
}

// Ensure FlatIndex implements SimilarityIndex.
var _ SimilarityIndex = (*FlatIndex)(nil)
