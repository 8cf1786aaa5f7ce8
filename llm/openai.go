package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when an LLM provider is constructed without a
// credential. No network call is attempted in that case.
var ErrMissingAPIKey = errors.New("llm: missing API key")

// OpenAILLM generates completions via the OpenAI chat completions endpoint
// (or any OpenAI-compatible server when a base URL is given).
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAILLM creates an OpenAI chat model with an explicit API key.
// baseURL may be empty for the public endpoint; model defaults to
// gpt-4-turbo when empty.
func NewOpenAILLM(baseURL, model, apiKey string) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return NewOpenAILLMWithClient(openai.NewClientWithConfig(config), model), nil
}

// NewOpenAILLMWithClient creates an OpenAI chat model from a pre-configured
// client. Useful for custom transports and tests.
func NewOpenAILLMWithClient(client *openai.Client, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT4Turbo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAILLM{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	return o.Chat(ctx, []ChatMessage{NewUserMessage(prompt)})
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	resp, err := o.ChatWithOptions(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// ChatWithOptions generates a response with options applied and returns the
// provider's token usage alongside the text.
func (o *OpenAILLM) ChatWithOptions(ctx context.Context, messages []ChatMessage, opts *ChatOptions) (CompletionResponse, error) {
	o.logger.Info("Chat called", "model", o.model, "message_count", len(messages))

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: convertToOpenAIMessages(messages),
	}

	if opts != nil {
		if opts.Temperature != nil {
			req.Temperature = *opts.Temperature
		}
		if opts.MaxTokens != nil {
			req.MaxTokens = *opts.MaxTokens
		}
		if opts.TopP != nil {
			req.TopP = *opts.TopP
		}
		if opts.Stop != nil {
			req.Stop = opts.Stop
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		o.logger.Error("Chat failed", "error", err)
		return CompletionResponse{}, fmt.Errorf("openai chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("openai returned no choices")
	}

	return CompletionResponse{
		Text: resp.Choices[0].Message.Content,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func (o *OpenAILLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	o.logger.Info("Stream called", "model", o.model, "prompt_len", len(prompt))

	stream, err := o.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Stream: true,
		},
	)

	if err != nil {
		o.logger.Error("Stream failed", "error", err)
		return nil, fmt.Errorf("openai stream failed: %w", err)
	}

	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				o.logger.Error("Stream receive error", "error", err)
				return
			}

			if len(response.Choices) > 0 {
				delta := response.Choices[0].Delta.Content
				if delta != "" {
					select {
					case tokenChan <- delta:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return tokenChan, nil
}

// Metadata returns information about the model's capabilities.
func (o *OpenAILLM) Metadata() LLMMetadata {
	switch o.model {
	case "gpt-3.5-turbo", "gpt-3.5-turbo-0125", "gpt-3.5-turbo-1106":
		return GPT35TurboMetadata()
	case "gpt-4-turbo", "gpt-4-turbo-preview", "gpt-4-1106-preview":
		return GPT4TurboMetadata()
	case "gpt-4o", "gpt-4o-2024-05-13", "gpt-4o-mini":
		return GPT4oMetadata()
	default:
		return DefaultLLMMetadata(o.model)
	}
}

// convertToOpenAIMessages converts ChatMessage slice to OpenAI format.
func convertToOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	openaiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openaiMessages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return openaiMessages
}

// Ensure OpenAILLM implements the interfaces.
var _ LLM = (*OpenAILLM)(nil)
var _ LLMWithMetadata = (*OpenAILLM)(nil)
