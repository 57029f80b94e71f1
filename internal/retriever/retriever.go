// Package retriever performs semantic retrieval over the corpus index:
// embed the query, nearest-neighbor search, noise filtering, deduplication.
package retriever

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anamikapati/AI-Tutor/internal/embed"
	"github.com/anamikapati/AI-Tutor/internal/kb"
	"github.com/anamikapati/AI-Tutor/internal/textfilter"
)

// dedupKeyLen is the cleaned-text prefix length, in characters, used to
// detect near-identical chunks from the same chapter.
const dedupKeyLen = 120

// Retriever returns the highest-ranked keepable prose chunks for a query.
// Implementations return at most topK chunks, possibly fewer after
// filtering, in similarity-rank order.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]kb.Chunk, error)
}

// Service is the production Retriever. It owns the embedder and the corpus
// index handle. The index is loaded lazily on first use and reused
// read-only afterwards; the load is guarded so concurrent cold requests do
// the work once.
type Service struct {
	indexDir string
	embedder embed.Embedder

	loadOnce sync.Once
	store    *kb.Store
	loadErr  error
}

// New creates a retrieval service reading the index at indexDir and
// embedding queries with embedder. The index is not touched until the
// first Retrieve call.
func New(indexDir string, embedder embed.Embedder) *Service {
	return &Service{indexDir: indexDir, embedder: embedder}
}

// Retrieve embeds query, searches the index for topK candidates, and
// returns the ones that survive the text filter, in rank order.
// Returns an error wrapping kb.ErrMissingIndex when the index artifacts
// are absent, and one wrapping embed.ErrEmbedding on inference failure.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]kb.Chunk, error) {
	store, err := s.load()
	if err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	ordinals, err := store.Search(ctx, queryVec, topK)
	if err != nil {
		return nil, err
	}

	results := make([]kb.Chunk, 0, len(ordinals))
	seen := make(map[string]struct{})

	for _, ordinal := range ordinals {
		chunk, ok := store.Chunk(ordinal)
		if !ok {
			continue
		}
		if chunk.Type != kb.ChunkText {
			continue
		}
		if textfilter.IsMathBlock(chunk.Text) {
			continue
		}

		cleaned := textfilter.Clean(chunk.Text)
		if !textfilter.Keep(cleaned) {
			continue
		}

		key := dedupKey(chunk.Chapter, cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		results = append(results, kb.Chunk{
			Chapter: chunk.Chapter,
			Text:    cleaned,
			Type:    kb.ChunkText,
		})
	}

	log.Debug().
		Str("query", query).
		Int("candidates", len(ordinals)).
		Int("kept", len(results)).
		Msg("retrieval complete")

	return results, nil
}

// load opens the index exactly once. A load failure is sticky for the
// lifetime of the service; callers see it on every request, which matches
// the fatal-precondition contract of a missing index.
func (s *Service) load() (*kb.Store, error) {
	s.loadOnce.Do(func() {
		s.store, s.loadErr = kb.Open(s.indexDir)
		if s.loadErr == nil {
			// Index and query must share the embedding model, or
			// similarity scores are meaningless.
			if built := s.store.Manifest().Model; built != s.embedder.ModelID() {
				s.store = nil
				s.loadErr = fmt.Errorf("index built with model %q but embedder uses %q", built, s.embedder.ModelID())
				return
			}
			log.Info().
				Str("dir", s.indexDir).
				Int("chunks", s.store.Count()).
				Str("model", s.store.Manifest().Model).
				Msg("corpus index loaded")
		}
	})
	return s.store, s.loadErr
}

func dedupKey(chapter, cleaned string) string {
	runes := []rune(cleaned)
	if len(runes) > dedupKeyLen {
		runes = runes[:dedupKeyLen]
	}
	return chapter + "\x00" + string(runes)
}

// Null is a Retriever that always returns no chunks. It stands in for the
// real service in tests and in consumers constructed without an index.
type Null struct{}

func (Null) Retrieve(context.Context, string, int) ([]kb.Chunk, error) {
	return nil, nil
}
