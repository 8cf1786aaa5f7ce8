package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ygriggs1/llm-chatbot-optimizer/embedding"
	"github.com/ygriggs1/llm-chatbot-optimizer/optimizer"
	"github.com/ygriggs1/llm-chatbot-optimizer/textsplitter"
	"github.com/ygriggs1/llm-chatbot-optimizer/vectorstore"
)

// Config is the CLI configuration, loaded from an optional YAML file. The
// OPENAI_API_KEY environment variable overrides the file's api_key.
type Config struct {
	APIKey       string `yaml:"api_key"`
	EmbedModel   string `yaml:"embed_model"`
	ChatModel    string `yaml:"chat_model"`
	BaseURL      string `yaml:"base_url"`
	Dimensions   int    `yaml:"dimensions"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	PersistPath  string `yaml:"persist_path"`
	Collection   string `yaml:"collection"`
}

// LoadConfig reads the YAML config at path, if given, and applies
// environment overrides and defaults. An empty path yields a default
// config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		ChunkSize:    textsplitter.DefaultChunkSize,
		ChunkOverlap: textsplitter.DefaultChunkOverlap,
		Collection:   "optimizer",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}

// newOptimizer builds an Optimizer from the config: a persistent chromem
// index when persist_path is set, a flat in-memory index otherwise.
func newOptimizer(cfg *Config) (*optimizer.Optimizer, error) {
	if cfg.PersistPath == "" {
		return optimizer.New(optimizer.Config{
			APIKey:     cfg.APIKey,
			EmbedModel: cfg.EmbedModel,
			Dimensions: cfg.Dimensions,
		})
	}

	embedModel, err := embedding.NewOpenAIEmbedding(cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return nil, err
	}
	index, err := vectorstore.NewChromemIndex(cfg.PersistPath, cfg.Collection, cfg.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("open persistent index: %w", err)
	}
	return optimizer.NewWithComponents(embedModel, index), nil
}
