package textsplitter

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 200
)

// SentenceSplitter splits text into token-budgeted chunks along sentence
// boundaries. Sentences are detected with a trained Punkt tokenizer; chunk
// sizes are measured in model tokens.
type SentenceSplitter struct {
	ChunkSize    int
	ChunkOverlap int

	tokenizer Tokenizer
	sentences *sentences.DefaultSentenceTokenizer
}

// NewSentenceSplitter creates a SentenceSplitter. Pass 0 for chunkSize to use
// the default; chunkOverlap of 0 means no overlap. A nil tokenizer selects
// the shared tiktoken default.
func NewSentenceSplitter(chunkSize, chunkOverlap int, tokenizer Tokenizer) (*SentenceSplitter, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", chunkOverlap, chunkSize)
	}

	if tokenizer == nil {
		var err error
		tokenizer, err = DefaultTokenizer()
		if err != nil {
			return nil, err
		}
	}

	sentenceTokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence tokenizer: %w", err)
	}

	return &SentenceSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		tokenizer:    tokenizer,
		sentences:    sentenceTokenizer,
	}, nil
}

// SplitText splits the text into chunks of at most ChunkSize tokens,
// preferring to keep whole sentences together. Consecutive chunks share up
// to ChunkOverlap tokens of trailing sentences.
func (s *SentenceSplitter) SplitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if s.tokenizer.CountTokens(text) <= s.ChunkSize {
		return []string{text}
	}

	splits := s.split(text)

	var chunks []string
	var current []split
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, joinSplits(current))

		// Seed the next chunk with trailing splits within the overlap budget.
		var overlap []split
		overlapLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			if overlapLen+current[i].tokens > s.ChunkOverlap {
				break
			}
			overlapLen += current[i].tokens
			overlap = append([]split{current[i]}, overlap...)
		}
		current = overlap
		currentLen = overlapLen
	}

	for _, sp := range splits {
		if currentLen+sp.tokens > s.ChunkSize && currentLen > 0 {
			flush()
		}
		current = append(current, sp)
		currentLen += sp.tokens
	}
	if len(current) > 0 {
		chunks = append(chunks, joinSplits(current))
	}

	return chunks
}

// split is one sentence (or sub-sentence fragment) with its token count.
type split struct {
	text   string
	tokens int
}

// split breaks text into sentences, falling back to word fragments for any
// sentence that alone exceeds the chunk budget.
func (s *SentenceSplitter) split(text string) []split {
	var splits []split
	for _, sent := range s.sentences.Tokenize(text) {
		t := strings.TrimSpace(sent.Text)
		if t == "" {
			continue
		}
		n := s.tokenizer.CountTokens(t)
		if n <= s.ChunkSize {
			splits = append(splits, split{text: t, tokens: n})
			continue
		}
		splits = append(splits, s.splitByWords(t)...)
	}
	return splits
}

func (s *SentenceSplitter) splitByWords(text string) []split {
	var splits []split
	var words []string
	currentLen := 0

	flush := func() {
		if len(words) == 0 {
			return
		}
		t := strings.Join(words, " ")
		splits = append(splits, split{text: t, tokens: s.tokenizer.CountTokens(t)})
		words = nil
		currentLen = 0
	}

	for _, word := range strings.Fields(text) {
		n := s.tokenizer.CountTokens(word)
		if currentLen+n > s.ChunkSize && currentLen > 0 {
			flush()
		}
		words = append(words, word)
		currentLen += n
	}
	flush()

	return splits
}

func joinSplits(splits []split) string {
	parts := make([]string, len(splits))
	for i, sp := range splits {
		parts[i] = sp.text
	}
	return strings.Join(parts, " ")
}
