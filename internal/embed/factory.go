package embed

import (
	"context"
	"fmt"
	"os"
)

// New creates an Embedder from configuration.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	var e Embedder
	var err error

	switch cfg.Provider {
	case "openai":
		e, err = NewOpenAIEmbedder(cfg.OpenAI)
	case "ollama":
		e, err = NewOllamaEmbedder(cfg.Ollama)
	case "gemini":
		e, err = NewGeminiEmbedder(ctx, cfg.Gemini)
	case "local":
		e = NewLocalEmbedder(cfg.Local.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s embedder: %w", cfg.Provider, err)
	}
	return e, nil
}

// FillFromEnv fills API keys from environment variables when the config
// file left them empty.
func (c *Config) FillFromEnv() {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
