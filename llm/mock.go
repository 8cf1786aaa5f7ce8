package llm

import "context"

// MockLLM is a mock implementation of the LLM interface.
// It can be configured to return specific responses or errors. Responses, if
// set, are consumed one per call; Response is the fallback. Calls records
// every message list received.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Responses are per-call responses consumed in order.
	Responses []string
	// Usage is the token usage to report.
	Usage TokenUsage
	// Err is the error to return (if any).
	Err error
	// Calls records the messages of each chat call.
	Calls [][]ChatMessage

	next int
}

// NewMockLLM creates a new MockLLM with a simple response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a new MockLLM that returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return m.Chat(ctx, []ChatMessage{NewUserMessage(prompt)})
}

func (m *MockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	resp, err := m.ChatWithOptions(ctx, messages, nil)
	return resp.Text, err
}

func (m *MockLLM) ChatWithOptions(ctx context.Context, messages []ChatMessage, opts *ChatOptions) (CompletionResponse, error) {
	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return CompletionResponse{}, m.Err
	}

	text := m.Response
	if m.next < len(m.Responses) {
		text = m.Responses[m.next]
		m.next++
	}

	return CompletionResponse{Text: text, Usage: m.Usage}, nil
}

func (m *MockLLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	ch := make(chan string, 1)
	if m.Err != nil {
		close(ch)
		return ch, m.Err
	}
	ch <- m.Response
	close(ch)
	return ch, nil
}

// Metadata returns the mock model metadata.
func (m *MockLLM) Metadata() LLMMetadata {
	return DefaultLLMMetadata("mock-model")
}

// Ensure MockLLM implements the interfaces.
var _ LLM = (*MockLLM)(nil)
var _ LLMWithMetadata = (*MockLLM)(nil)
