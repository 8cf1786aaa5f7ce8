package llm

import "context"

// LLM is the interface for interacting with Large Language Models.
// This is the basic interface that all LLM implementations must satisfy.
type LLM interface {
	// Complete generates a completion for a given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat generates a response for a list of chat messages.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	// ChatWithOptions generates a response with request options applied and
	// returns the provider's token usage alongside the text.
	ChatWithOptions(ctx context.Context, messages []ChatMessage, opts *ChatOptions) (CompletionResponse, error)
	// Stream generates a streaming completion for a given prompt.
	Stream(ctx context.Context, prompt string) (<-chan string, error)
}

// LLMWithMetadata extends LLM with metadata capabilities.
type LLMWithMetadata interface {
	LLM
	// Metadata returns information about the model's capabilities.
	Metadata() LLMMetadata
}
