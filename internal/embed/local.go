package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// LocalEmbedder is a deterministic bag-of-words feature-hashing embedder.
// It needs no network or model weights, which makes it suitable for tests
// and offline development. Vectors from different dimensions or different
// embedders are not comparable; the index manifest guards against mixing.
type LocalEmbedder struct {
	dimension int
}

// NewLocalEmbedder creates a local embedder with the given vector dimension.
// A non-positive dimension falls back to 384.
func NewLocalEmbedder(dimension int) *LocalEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &LocalEmbedder{dimension: dimension}
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[int(h.Sum32())%e.dimension]++
	}

	// L2-normalize so cosine similarity behaves like the hosted models.
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *LocalEmbedder) ModelID() string {
	return "local-hash-v1"
}
