package kb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

// ErrMissingIndex indicates the corpus index artifacts are absent or
// inconsistent. Fatal for the calling request, not for the process: the
// index is built offline and queries cannot proceed without it.
var ErrMissingIndex = errors.New("corpus index not found")

const (
	collectionName = "corpus"
	vectorsDirName = "vectors"
	chunksFileName = "chunks.json"
	manifestName   = "manifest.json"
)

// Store is a read-only handle on the corpus index: a chromem vector
// collection and an ordinal-matched chunk store. Position i in the
// collection (document ID strconv(i)) corresponds to chunks[i].
type Store struct {
	collection *chromem.Collection
	chunks     []Chunk
	manifest   Manifest
}

// Open loads the corpus index from dir. It validates the manifest and
// verifies that the vector collection and the chunk store agree on size
// before returning. Returns an error wrapping ErrMissingIndex when the
// artifacts are absent or inconsistent.
func Open(dir string) (*Store, error) {
	manifest, err := readManifest(filepath.Join(dir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run ingest first)", ErrMissingIndex, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrMissingIndex, err)
	}

	chunks, err := readChunks(filepath.Join(dir, chunksFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run ingest first)", ErrMissingIndex, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrMissingIndex, err)
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dir, vectorsDirName), false)
	if err != nil {
		return nil, fmt.Errorf("%w: open vector store: %v", ErrMissingIndex, err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open collection: %v", ErrMissingIndex, err)
	}

	if len(chunks) != manifest.Count || collection.Count() != manifest.Count {
		return nil, fmt.Errorf("%w: index drift: manifest=%d chunks=%d vectors=%d",
			ErrMissingIndex, manifest.Count, len(chunks), collection.Count())
	}

	return &Store{
		collection: collection,
		chunks:     chunks,
		manifest:   *manifest,
	}, nil
}

// Manifest returns the build metadata for this index.
func (s *Store) Manifest() Manifest {
	return s.manifest
}

// Count returns the number of indexed chunks.
func (s *Store) Count() int {
	return len(s.chunks)
}

// Chunk returns the chunk at the given ordinal position.
// The second return value is false for out-of-range ordinals.
func (s *Store) Chunk(ordinal int) (Chunk, bool) {
	if ordinal < 0 || ordinal >= len(s.chunks) {
		return Chunk{}, false
	}
	return s.chunks[ordinal], true
}

// Search performs k-nearest-neighbor search with the given query embedding
// and returns chunk ordinals in similarity-rank order. topK is clamped to
// the collection size.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]int, error) {
	count := s.collection.Count()
	if count == 0 || topK <= 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := s.collection.QueryEmbedding(ctx, queryEmbedding, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	ordinals := make([]int, 0, len(results))
	for _, r := range results {
		ordinal, err := strconv.Atoi(r.ID)
		if err != nil {
			// Foreign document in the collection; never produced by our
			// ingestion, skip rather than fail the whole query.
			continue
		}
		ordinals = append(ordinals, ordinal)
	}
	return ordinals, nil
}

// Write builds the on-disk index artifacts in dir: the chromem collection,
// the ordinal chunk store, and the manifest. vectors[i] must be the
// embedding of chunks[i].
func Write(ctx context.Context, dir string, chunks []Chunk, vectors [][]float32, model string) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d != %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return fmt.Errorf("refusing to write an empty index")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dir, vectorsDirName), false)
	if err != nil {
		return fmt.Errorf("create vector store: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, c := range chunks {
		docs = append(docs, chromem.Document{
			ID:        strconv.Itoa(i),
			Content:   c.Text,
			Metadata:  map[string]string{"chapter": c.Chapter},
			Embedding: vectors[i],
		})
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	if err := writeChunks(filepath.Join(dir, chunksFileName), chunks); err != nil {
		return err
	}

	manifest := Manifest{
		Model:     model,
		Dimension: len(vectors[0]),
		Count:     len(chunks),
	}
	if err := writeManifest(filepath.Join(dir, manifestName), manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readChunks(path string) ([]Chunk, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chunks []Chunk
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return nil, fmt.Errorf("decode chunk store: %w", err)
	}
	return chunks, nil
}

func writeChunks(path string, chunks []Chunk) error {
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encode chunk store: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write chunk store: %w", err)
	}
	return nil
}
