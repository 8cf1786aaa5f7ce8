// Package reader loads plain-text, markdown and PDF files into documents
// suitable for chunking and embedding.
package reader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Document is one loaded file's text content plus source metadata.
type Document struct {
	// ID identifies the document; the file path is used.
	ID string
	// Text is the extracted text content.
	Text string
	// Metadata holds source details (filename, path, ext).
	Metadata map[string]string
}

// DirectoryReader reads files from a directory tree.
type DirectoryReader struct {
	inputDir   string
	extensions []string // e.g. ".txt", ".md", ".pdf"
}

// NewDirectoryReader creates a DirectoryReader. With no extensions it
// defaults to .txt, .md and .pdf.
func NewDirectoryReader(inputDir string, extensions ...string) *DirectoryReader {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md", ".pdf"}
	}
	return &DirectoryReader{
		inputDir:   inputDir,
		extensions: extensions,
	}
}

// Load walks the directory and returns a Document per matching file.
func (r *DirectoryReader) Load() ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(r.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		match := false
		for _, e := range r.extensions {
			if ext == e {
				match = true
				break
			}
		}

		if !match {
			return nil
		}

		text, err := loadFile(path, ext)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}

		docs = append(docs, Document{
			ID:   path,
			Text: text,
			Metadata: map[string]string{
				"filename": d.Name(),
				"path":     path,
				"ext":      ext,
			},
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", r.inputDir, err)
	}

	return docs, nil
}

// LoadFile reads a single file into a Document, extracting text for PDFs.
func LoadFile(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	text, err := loadFile(path, ext)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Document{
		ID:   path,
		Text: text,
		Metadata: map[string]string{
			"filename": filepath.Base(path),
			"path":     path,
			"ext":      ext,
		},
	}, nil
}

func loadFile(path, ext string) (string, error) {
	if ext == ".pdf" {
		return ExtractPDFText(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
