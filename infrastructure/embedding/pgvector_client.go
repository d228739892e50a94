package embedding

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pgvector/pgvector-go"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// embeddingDim matches Gemini text-embedding-004 output.
const embeddingDim = 768

// maxSceneSummaries caps the embedding text; loglines plus the first
// summaries carry most of the semantic signal.
const maxSceneSummaries = 40

// PgVectorClient indexes finished screenplays for similarity search. A nil
// db disables persistence, which keeps the CLI path dependency-free.
type PgVectorClient struct {
	db       *sql.DB
	embedder ports.TextEmbedderPort
	logger   *slog.Logger
}

var _ ports.EmbeddingPort = (*PgVectorClient)(nil)

func NewPgVectorClient(db *sql.DB, embedder ports.TextEmbedderPort) *PgVectorClient {
	return &PgVectorClient{
		db:       db,
		embedder: embedder,
		logger:   slog.Default().With("component", "pgvector"),
	}
}

// EnsureSchema creates the embeddings table and extension if missing.
func (c *PgVectorClient) EnsureSchema(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	if _, err := c.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS screenplay_embeddings (
			entry_id   TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			title      TEXT NOT NULL,
			style      TEXT NOT NULL DEFAULT '',
			embedding  vector(%d) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, embeddingDim))
	if err != nil {
		return fmt.Errorf("failed to create screenplay_embeddings table: %w", err)
	}
	return nil
}

// EmbedResult builds the embedding text from the outline logline and scene
// summaries, then embeds it.
func (c *PgVectorClient) EmbedResult(ctx context.Context, result *models.AnalysisResult) ([]float32, error) {
	var sb strings.Builder
	sb.WriteString(result.VideoMeta.Title)
	sb.WriteString("\n")
	if result.StoryOutline != nil {
		sb.WriteString(result.StoryOutline.Logline)
		sb.WriteString("\n")
	}
	for i, scene := range result.Scenes {
		if i >= maxSceneSummaries {
			break
		}
		sb.WriteString(scene.Summary)
		sb.WriteString("\n")
	}

	vector, err := c.embedder.EmbedText(ctx, sb.String())
	if err != nil {
		return nil, fmt.Errorf("failed to embed screenplay: %w", err)
	}
	return vector, nil
}

func (c *PgVectorClient) Store(ctx context.Context, emb *ports.ScreenplayEmbedding) error {
	if c.db == nil {
		c.logger.DebugContext(ctx, "embedding store disabled, skipping", "entry_id", emb.EntryID)
		return nil
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO screenplay_embeddings (entry_id, source_url, title, style, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entry_id) DO UPDATE SET
			source_url = EXCLUDED.source_url,
			title      = EXCLUDED.title,
			style      = EXCLUDED.style,
			embedding  = EXCLUDED.embedding,
			updated_at = NOW()`,
		emb.EntryID, emb.SourceURL, emb.Title, emb.Style, pgvector.NewVector(emb.Vector),
	)
	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	c.logger.InfoContext(ctx, "embedding stored",
		"entry_id", emb.EntryID,
		"vector_dim", len(emb.Vector),
	)
	return nil
}

func (c *PgVectorClient) FindSimilar(ctx context.Context, entryID string, limit int) ([]ports.SimilarScreenplay, error) {
	if c.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT s.entry_id, s.source_url, s.title, s.style,
		       1 - (s.embedding <=> q.embedding) AS similarity
		FROM screenplay_embeddings s,
		     (SELECT embedding FROM screenplay_embeddings WHERE entry_id = $1) q
		WHERE s.entry_id != $1
		ORDER BY s.embedding <=> q.embedding
		LIMIT $2`, entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	defer rows.Close()

	var results []ports.SimilarScreenplay
	for rows.Next() {
		var hit ports.SimilarScreenplay
		if err := rows.Scan(&hit.EntryID, &hit.SourceURL, &hit.Title, &hit.Style, &hit.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan similarity row: %w", err)
		}
		results = append(results, hit)
	}
	return results, rows.Err()
}
