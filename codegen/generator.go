// Package codegen issues code-generation requests to a chat model, either as
// one large request or as multiple focused stages to respect output-length
// limits, and saves the raw responses to files.
package codegen

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ygriggs1/llm-chatbot-optimizer/llm"
	"github.com/ygriggs1/llm-chatbot-optimizer/prompts"
	"github.com/ygriggs1/llm-chatbot-optimizer/textsplitter"
)

// Generation request defaults.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096
	DefaultTopP        = 0.95
)

// Result is one generation's output.
type Result struct {
	// ID identifies the generation run.
	ID string `json:"id"`
	// Text is the raw model response.
	Text string `json:"text"`
	// Usage is the provider's token accounting.
	Usage llm.TokenUsage `json:"usage"`
	// PromptTokens is the locally estimated prompt token count, when a
	// tokenizer is configured. The provider's own accounting is in Usage.
	PromptTokens int `json:"prompt_tokens,omitempty"`
}

// Stage is one focused sub-request of a staged generation.
type Stage struct {
	// Name labels the stage; it also names the output directory.
	Name string `json:"name"`
	// Focus narrows the base prompt to one part of the system.
	Focus string `json:"focus"`
}

// StageResult is one stage's outcome. Err is set when the stage's request
// failed; later stages still run.
type StageResult struct {
	Stage  Stage   `json:"stage"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
}

// Generator issues code-generation requests against an LLM.
type Generator struct {
	model        llm.LLM
	systemPrompt string
	options      llm.ChatOptions
	tokenizer    textsplitter.Tokenizer
	logger       *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSystemPrompt overrides the default system instruction.
func WithSystemPrompt(systemPrompt string) Option {
	return func(g *Generator) {
		g.systemPrompt = systemPrompt
	}
}

// WithChatOptions overrides the default request options.
func WithChatOptions(options llm.ChatOptions) Option {
	return func(g *Generator) {
		g.options = options
	}
}

// WithTokenizer enables local prompt token estimation.
func WithTokenizer(tokenizer textsplitter.Tokenizer) Option {
	return func(g *Generator) {
		g.tokenizer = tokenizer
	}
}

// New creates a Generator over the given model.
func New(model llm.LLM, opts ...Option) *Generator {
	temperature := float32(DefaultTemperature)
	maxTokens := DefaultMaxTokens
	topP := float32(DefaultTopP)

	g := &Generator{
		model:        model,
		systemPrompt: prompts.DefaultCodegenSystemPrompt,
		options: llm.ChatOptions{
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
			TopP:        &topP,
		},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate issues one chat request with the configured system prompt and
// returns the raw response. No retry is performed.
func (g *Generator) Generate(ctx context.Context, prompt string) (*Result, error) {
	if prompt == "" {
		return nil, fmt.Errorf("prompt must not be empty")
	}

	promptTokens := 0
	if g.tokenizer != nil {
		promptTokens = g.tokenizer.CountTokens(prompt)
	}
	g.logger.Info("generating", "prompt_len", len(prompt), "prompt_tokens", promptTokens)

	resp, err := g.model.ChatWithOptions(ctx, []llm.ChatMessage{
		llm.NewSystemMessage(g.systemPrompt),
		llm.NewUserMessage(prompt),
	}, &g.options)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	g.logger.Info("generation complete",
		"response_len", len(resp.Text),
		"total_tokens", resp.Usage.TotalTokens,
	)

	return &Result{
		ID:           uuid.NewString(),
		Text:         resp.Text,
		Usage:        resp.Usage,
		PromptTokens: promptTokens,
	}, nil
}

// GenerateStaged issues one focused request per stage, appending each
// stage's focus to the base prompt. A failed stage records its error and
// later stages still run; only context cancellation aborts the loop.
func (g *Generator) GenerateStaged(ctx context.Context, basePrompt string, stages []Stage) ([]StageResult, error) {
	if basePrompt == "" {
		return nil, fmt.Errorf("base prompt must not be empty")
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("at least one stage is required")
	}

	results := make([]StageResult, 0, len(stages))
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		stagePrompt := prompts.DefaultStageFocusTemplate.Format(map[string]string{
			"base":  basePrompt,
			"focus": stage.Focus,
		})

		g.logger.Info("generating stage", "stage", stage.Name)
		result, err := g.Generate(ctx, stagePrompt)
		if err != nil {
			g.logger.Error("stage failed", "stage", stage.Name, "error", err)
			results = append(results, StageResult{Stage: stage, Err: err})
			continue
		}
		results = append(results, StageResult{Stage: stage, Result: result})
	}

	return results, nil
}
