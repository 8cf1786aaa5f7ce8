package textsplitter

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Common encoding names
const (
	EncodingCL100kBase = "cl100k_base" // GPT-4, GPT-3.5-turbo, text-embedding-ada-002
	EncodingO200kBase  = "o200k_base"  // GPT-4o models
)

// Tokenizer counts tokens the way the target model does, so chunk budgets
// line up with provider limits.
type Tokenizer interface {
	CountTokens(text string) int
}

// TikTokenTokenizer is a Tokenizer backed by tiktoken BPE encodings.
type TikTokenTokenizer struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

// NewTikTokenTokenizer creates a tokenizer for the given encoding name.
// Empty defaults to cl100k_base.
func NewTikTokenTokenizer(encodingName string) (*TikTokenTokenizer, error) {
	if encodingName == "" {
		encodingName = EncodingCL100kBase
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encodingName, err)
	}
	return &TikTokenTokenizer{
		encoding:     enc,
		encodingName: encodingName,
	}, nil
}

// CountTokens returns the number of tokens in the text.
func (t *TikTokenTokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// EncodeToIDs returns the raw token IDs.
func (t *TikTokenTokenizer) EncodeToIDs(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode converts token IDs back to text.
func (t *TikTokenTokenizer) Decode(tokenIDs []int) string {
	return t.encoding.Decode(tokenIDs)
}

// EncodingName returns the encoding name.
func (t *TikTokenTokenizer) EncodingName() string {
	return t.encodingName
}

var (
	defaultTokenizer     *TikTokenTokenizer
	defaultTokenizerOnce sync.Once
	defaultTokenizerErr  error
)

// DefaultTokenizer returns a shared cl100k_base tokenizer.
// Safe for concurrent use.
func DefaultTokenizer() (Tokenizer, error) {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer, defaultTokenizerErr = NewTikTokenTokenizer(EncodingCL100kBase)
	})
	return defaultTokenizer, defaultTokenizerErr
}

// Ensure TikTokenTokenizer implements Tokenizer.
var _ Tokenizer = (*TikTokenTokenizer)(nil)
