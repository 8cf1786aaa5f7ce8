package optimizer

import (
	"context"
	"fmt"

	"github.com/ygriggs1/llm-chatbot-optimizer/reader"
	"github.com/ygriggs1/llm-chatbot-optimizer/textsplitter"
)

// IngestStats reports what a directory ingestion added to the index.
type IngestStats struct {
	Files  int
	Chunks int
}

// IngestOption configures ingestion.
type IngestOption func(*ingestConfig)

type ingestConfig struct {
	chunkSize    int
	chunkOverlap int
	extensions   []string
	tokenizer    textsplitter.Tokenizer
}

// WithChunking sets the chunk token budget and overlap.
func WithChunking(chunkSize, chunkOverlap int) IngestOption {
	return func(c *ingestConfig) {
		c.chunkSize = chunkSize
		c.chunkOverlap = chunkOverlap
	}
}

// WithExtensions restricts which file extensions are ingested.
func WithExtensions(extensions ...string) IngestOption {
	return func(c *ingestConfig) {
		c.extensions = extensions
	}
}

// WithTokenizer sets the tokenizer used for chunk budgets.
func WithTokenizer(tokenizer textsplitter.Tokenizer) IngestOption {
	return func(c *ingestConfig) {
		c.tokenizer = tokenizer
	}
}

// IngestDirectory loads every matching file under dir, splits its text into
// sentence-aligned chunks, and adds each chunk to the index. Each chunk
// occupies one position; insertion order follows file walk order.
func (o *Optimizer) IngestDirectory(ctx context.Context, dir string, opts ...IngestOption) (IngestStats, error) {
	cfg := &ingestConfig{
		chunkSize:    textsplitter.DefaultChunkSize,
		chunkOverlap: textsplitter.DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	docs, err := reader.NewDirectoryReader(dir, cfg.extensions...).Load()
	if err != nil {
		return IngestStats{}, fmt.Errorf("load directory: %w", err)
	}

	splitter, err := textsplitter.NewSentenceSplitter(cfg.chunkSize, cfg.chunkOverlap, cfg.tokenizer)
	if err != nil {
		return IngestStats{}, fmt.Errorf("create splitter: %w", err)
	}

	var stats IngestStats
	for _, doc := range docs {
		chunks := splitter.SplitText(doc.Text)
		if len(chunks) == 0 {
			continue
		}
		for _, chunk := range chunks {
			if _, err := o.Add(ctx, chunk); err != nil {
				return stats, fmt.Errorf("ingest %s: %w", doc.ID, err)
			}
			stats.Chunks++
		}
		stats.Files++
	}

	o.logger.Info("ingested directory", "dir", dir, "files", stats.Files, "chunks", stats.Chunks)
	return stats, nil
}
