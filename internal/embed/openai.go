package embed

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder implements Embedder using the OpenAI SDK.
// It also supports OpenAI-compatible APIs via BaseURL.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates a new OpenAI embedder.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", ErrEmbedding, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: openai returned no embeddings", ErrEmbedding)
	}
	return resp.Data[0].Embedding, nil
}

func (e *OpenAIEmbedder) ModelID() string {
	return e.model
}
