package ports

import (
	"context"

	"screenplay-worker/domain/models"
)

// TextEmbedderPort - turns text into a vector (Gemini text-embedding-004).
type TextEmbedderPort interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// ScreenplayEmbedding - vector plus the metadata needed for search results.
type ScreenplayEmbedding struct {
	EntryID   string
	SourceURL string
	Title     string
	Style     string
	Vector    []float32
}

// SimilarScreenplay - one similarity-search hit.
type SimilarScreenplay struct {
	EntryID    string  `json:"entry_id"`
	SourceURL  string  `json:"source_url"`
	Title      string  `json:"title"`
	Style      string  `json:"style"`
	Similarity float64 `json:"similarity"`
}

// EmbeddingPort - pgvector-backed similarity over finished screenplays.
// All operations are best effort from the pipeline's point of view; callers
// treat failures as non-critical.
type EmbeddingPort interface {
	// EmbedResult derives the embedding text from a finished result and
	// returns its vector.
	EmbedResult(ctx context.Context, result *models.AnalysisResult) ([]float32, error)

	// Store upserts an embedding keyed by entry ID.
	Store(ctx context.Context, emb *ScreenplayEmbedding) error

	// FindSimilar returns the closest screenplays to the given entry.
	FindSimilar(ctx context.Context, entryID string, limit int) ([]SimilarScreenplay, error)
}
