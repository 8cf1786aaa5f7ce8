package prompts

import (
	"fmt"
	"strings"

	"github.com/ygriggs1/llm-chatbot-optimizer/reader"
)

// LoadPromptFile reads a prompt from a text, markdown or PDF file.
// The content is trimmed; an empty prompt is an error.
func LoadPromptFile(path string) (string, error) {
	doc, err := reader.LoadFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt file: %w", err)
	}

	prompt := strings.TrimSpace(doc.Text)
	if prompt == "" {
		return "", fmt.Errorf("prompt file %s is empty", path)
	}
	return prompt, nil
}
