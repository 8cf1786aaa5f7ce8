package embedding

import "context"

// MockEmbeddingModel is a mock implementation of the EmbeddingModel interface.
// ByText maps specific inputs to vectors; unmatched inputs fall back to
// Embedding. Calls records every input the mock received.
type MockEmbeddingModel struct {
	Embedding []float64
	ByText    map[string][]float64
	Err       error
	Calls     []string
}

func (m *MockEmbeddingModel) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	return m.embed(text)
}

func (m *MockEmbeddingModel) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	return m.embed(query)
}

func (m *MockEmbeddingModel) embed(input string) ([]float64, error) {
	m.Calls = append(m.Calls, input)
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.ByText[input]; ok {
		return v, nil
	}
	return m.Embedding, nil
}
