package embed

import (
	"context"
	"math"
	"testing"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	e := NewLocalEmbedder(64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "matrices and determinants")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := e.Embed(ctx, "matrices and determinants")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(a) != 64 {
		t.Fatalf("dimension = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestLocalEmbedderNormalized(t *testing.T) {
	e := NewLocalEmbedder(128)
	vec, err := e.Embed(context.Background(), "the probability of an event lies between zero and one")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1.0) > 1e-4 {
		t.Errorf("squared norm = %f, want 1.0", sum)
	}
}

func TestLocalEmbedderSimilarity(t *testing.T) {
	e := NewLocalEmbedder(256)
	ctx := context.Background()

	query, _ := e.Embed(ctx, "matrix multiplication rules")
	same, _ := e.Embed(ctx, "rules for matrix multiplication explained")
	other, _ := e.Embed(ctx, "continuous probability distributions")

	if cosine(query, same) <= cosine(query, other) {
		t.Errorf("related text should score higher: same=%f other=%f",
			cosine(query, same), cosine(query, other))
	}
}

func TestLocalEmbedderEmptyText(t *testing.T) {
	e := NewLocalEmbedder(32)
	vec, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for _, v := range vec {
		if v != 0 {
			t.Fatalf("empty text should embed to the zero vector, got %v", vec)
		}
	}
}

func TestLocalEmbedderDimensionFallback(t *testing.T) {
	e := NewLocalEmbedder(0)
	vec, err := e.Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 384 {
		t.Errorf("dimension = %d, want default 384", len(vec))
	}
}

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
