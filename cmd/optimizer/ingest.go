package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ygriggs1/llm-chatbot-optimizer/optimizer"
)

var ingestExtensions []string

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Embed and index every document under a directory",
	Long: `Load text, markdown and PDF files under the directory, split them
into sentence-aligned chunks, embed each chunk and add it to the index.
With persist_path configured the index survives across runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := newOptimizer(cfg)
		if err != nil {
			return err
		}

		opts := []optimizer.IngestOption{
			optimizer.WithChunking(cfg.ChunkSize, cfg.ChunkOverlap),
		}
		if len(ingestExtensions) > 0 {
			opts = append(opts, optimizer.WithExtensions(ingestExtensions...))
		}

		stats, err := opt.IngestDirectory(cmd.Context(), args[0], opts...)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}

		fmt.Printf("Ingested %d files (%d chunks), index size %d\n",
			stats.Files, stats.Chunks, opt.Len())
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestExtensions, "ext", nil,
		"file extensions to ingest (default .txt, .md, .pdf)")
}
