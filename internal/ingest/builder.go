package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/textsplitter"
	"golang.org/x/sync/errgroup"

	"github.com/anamikapati/AI-Tutor/internal/embed"
	"github.com/anamikapati/AI-Tutor/internal/kb"
	"github.com/anamikapati/AI-Tutor/internal/textfilter"
)

const (
	// minParagraphLen drops stray fragments left over after cleaning.
	minParagraphLen = 25

	// maxChunkLen splits pathologically long paragraphs before embedding.
	maxChunkLen     = 6000
	chunkOverlap    = 200
	extractParallel = 4
)

var pageNumberLineRe = regexp.MustCompile(`^\d{1,4}$`)

// Builder turns a directory of chapter PDFs into an embedded index.
type Builder struct {
	embedder embed.Embedder
}

// NewBuilder creates a Builder using the given embedder.
func NewBuilder(e embed.Embedder) *Builder {
	return &Builder{embedder: e}
}

// Build extracts every *.pdf under srcDir, chunks and filters the text,
// embeds all kept chunks, and writes the index to indexDir. The file
// name stem of each PDF becomes its chapter label.
func (b *Builder) Build(ctx context.Context, srcDir, indexDir string) (int, error) {
	paths, err := listPDFs(srcDir)
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no PDF files under %s", srcDir)
	}

	chapters := make([][]kb.Chunk, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractParallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks, err := chunkDocument(path)
			if err != nil {
				return fmt.Errorf("chunk %s: %w", filepath.Base(path), err)
			}
			chapters[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var chunks []kb.Chunk
	for _, c := range chapters {
		chunks = append(chunks, c...)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no usable text extracted from %d documents", len(paths))
	}

	log.Info().
		Int("documents", len(paths)).
		Int("chunks", len(chunks)).
		Str("model", b.embedder.ModelID()).
		Msg("embedding corpus")

	vectors, err := b.embedAll(ctx, chunks)
	if err != nil {
		return 0, err
	}

	if err := kb.Write(ctx, indexDir, chunks, vectors, b.embedder.ModelID()); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}
	return len(chunks), nil
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// chunkDocument extracts one PDF and returns its kept, tagged chunks.
func chunkDocument(path string) ([]kb.Chunk, error) {
	pages, err := extractPages(path)
	if err != nil {
		return nil, err
	}

	chapter := chapterLabel(path)
	furniture := detectFurniture(pages)

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(maxChunkLen),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var chunks []kb.Chunk
	for _, page := range pages {
		page = stripFurniture(page, furniture)
		for _, para := range splitParagraphs(page) {
			cleaned := textfilter.Clean(para)
			if len([]rune(cleaned)) < minParagraphLen || !textfilter.Keep(cleaned) {
				continue
			}
			parts := []string{cleaned}
			if len(cleaned) > maxChunkLen {
				if split, err := splitter.SplitText(cleaned); err == nil {
					parts = split
				}
			}
			for _, part := range parts {
				typ := kb.ChunkText
				if textfilter.IsMathBlock(part) {
					typ = kb.ChunkMath
				}
				chunks = append(chunks, kb.Chunk{Chapter: chapter, Text: part, Type: typ})
			}
		}
	}
	return chunks, nil
}

// splitParagraphs cuts page text on blank lines, dropping bare
// page-number lines.
func splitParagraphs(page string) []string {
	var paras []string
	for _, block := range strings.Split(page, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" || pageNumberLineRe.MatchString(block) {
			continue
		}
		paras = append(paras, block)
	}
	return paras
}

// chapterLabel derives the chapter name from the file name stem,
// normalizing separators to spaces.
func chapterLabel(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.Join(strings.Fields(stem), " ")
}

// embedAll embeds every chunk, preserving order. Embedding is
// parallelized but bounded; provider rate limits are the caller's
// concern.
func (b *Builder) embedAll(ctx context.Context, chunks []kb.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractParallel)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := b.embedder.Embed(gctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = vec

			mu.Lock()
			done++
			if done%100 == 0 {
				log.Debug().Int("done", done).Int("total", len(chunks)).Msg("embedding progress")
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
