// Package embed provides query and document embedding. The corpus index and
// incoming queries must share one embedding model; the Embedder interface is
// the single point where that model is fixed.
package embed

import (
	"context"
	"errors"
)

// ErrEmbedding indicates a model inference failure. Fatal for the calling
// request; no retries are performed here.
var ErrEmbedding = errors.New("embedding failed")

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelID returns the model identifier this embedder is configured
	// to use. Recorded in the index manifest at build time and checked
	// against it at query time.
	ModelID() string
}

// Config holds embedding provider configuration.
type Config struct {
	// Provider selects which embedding backend to use.
	// Values: "openai", "ollama", "gemini", "local"
	Provider string `yaml:"provider"`

	OpenAI OpenAIConfig `yaml:"openai"`
	Ollama OllamaConfig `yaml:"ollama"`
	Gemini GeminiConfig `yaml:"gemini"`
	Local  LocalConfig  `yaml:"local"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "text-embedding-3-small"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// OllamaConfig holds Ollama-specific configuration.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"` // Default: "http://localhost:11434"
	Model   string `yaml:"model"`    // Default: "nomic-embed-text"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-embedding-001"
}

// LocalConfig holds configuration for the deterministic local embedder.
type LocalConfig struct {
	Dimension int `yaml:"dimension"` // Default: 384
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "local",
		OpenAI: OpenAIConfig{
			Model: "text-embedding-3-small",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "nomic-embed-text",
		},
		Gemini: GeminiConfig{
			Model: "gemini-embedding-001",
		},
		Local: LocalConfig{
			Dimension: 384,
		},
	}
}
