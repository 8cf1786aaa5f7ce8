package llm

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	// MessageRoleSystem is for system instructions.
	MessageRoleSystem MessageRole = "system"
	// MessageRoleUser is for user messages.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAssistant is for assistant responses.
	MessageRoleAssistant MessageRole = "assistant"
)

// ChatMessage represents a message in a chat conversation.
type ChatMessage struct {
	// Role is the role of the message sender.
	Role MessageRole `json:"role"`
	// Content is the text content.
	Content string `json:"content"`
}

// NewChatMessage creates a new chat message.
func NewChatMessage(role MessageRole, content string) ChatMessage {
	return ChatMessage{
		Role:    role,
		Content: content,
	}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleSystem, content)
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return NewChatMessage(MessageRoleAssistant, content)
}

// ChatOptions tunes a chat completion request. Nil fields keep the provider
// defaults.
type ChatOptions struct {
	// Temperature controls sampling randomness.
	Temperature *float32 `json:"temperature,omitempty"`
	// MaxTokens caps the completion length.
	MaxTokens *int `json:"max_tokens,omitempty"`
	// TopP sets the nucleus sampling cutoff.
	TopP *float32 `json:"top_p,omitempty"`
	// Stop lists sequences that end the completion.
	Stop []string `json:"stop,omitempty"`
}

// TokenUsage is the provider's token accounting for one request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is a completion's text plus usage accounting.
type CompletionResponse struct {
	// Text is the generated content.
	Text string `json:"text"`
	// Usage is the provider's token accounting, when reported.
	Usage TokenUsage `json:"usage"`
}

// LLMMetadata contains metadata about a model's capabilities.
type LLMMetadata struct {
	// ModelName is the name/identifier of the model.
	ModelName string `json:"model_name"`
	// ContextWindow is the maximum context size in tokens.
	ContextWindow int `json:"context_window"`
	// MaxOutputTokens is the maximum completion size in tokens.
	MaxOutputTokens int `json:"max_output_tokens"`
}

// DefaultLLMMetadata returns default metadata for unknown models.
func DefaultLLMMetadata(modelName string) LLMMetadata {
	return LLMMetadata{
		ModelName:       modelName,
		ContextWindow:   8192,
		MaxOutputTokens: 4096,
	}
}

// GPT4TurboMetadata returns metadata for gpt-4-turbo models.
func GPT4TurboMetadata() LLMMetadata {
	return LLMMetadata{
		ModelName:       "gpt-4-turbo",
		ContextWindow:   128000,
		MaxOutputTokens: 4096,
	}
}

// GPT4oMetadata returns metadata for gpt-4o models.
func GPT4oMetadata() LLMMetadata {
	return LLMMetadata{
		ModelName:       "gpt-4o",
		ContextWindow:   128000,
		MaxOutputTokens: 16384,
	}
}

// GPT35TurboMetadata returns metadata for gpt-3.5-turbo models.
func GPT35TurboMetadata() LLMMetadata {
	return LLMMetadata{
		ModelName:       "gpt-3.5-turbo",
		ContextWindow:   16385,
		MaxOutputTokens: 4096,
	}
}
