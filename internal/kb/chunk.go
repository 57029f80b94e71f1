package kb

// ChunkType classifies a corpus chunk at ingestion time.
type ChunkType string

const (
	// ChunkText is explanatory prose, the only type served to consumers.
	ChunkText ChunkType = "text"

	// ChunkMath is formula-heavy or exercise content kept for provenance
	// but never returned by retrieval.
	ChunkMath ChunkType = "math"

	// ChunkExcluded is content dropped for other reasons (headers,
	// page numbers, too short).
	ChunkExcluded ChunkType = "excluded"
)

// Chunk is a unit of extracted textbook prose with chapter provenance.
// Chunks are immutable once indexed: the ingestion pipeline normalizes
// every record into this shape so consumers never branch on representation.
type Chunk struct {
	// Chapter identifies the source document, e.g. "matrices.pdf".
	Chapter string `json:"chapter"`

	// Text is the cleaned prose content.
	Text string `json:"text"`

	// Type classifies the chunk. Retrieval only emits ChunkText.
	Type ChunkType `json:"type"`
}
