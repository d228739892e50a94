package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// PostgresStore persists library entries in a single table with the result
// document as JSONB. Entry IDs come from the batch handler, so Put is a
// plain upsert.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ ports.LibraryPort = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: slog.Default().With("component", "library_store"),
	}
}

// OpenDB connects and verifies the database.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the library table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS library_entries (
			id            TEXT PRIMARY KEY,
			url           TEXT NOT NULL,
			title         TEXT NOT NULL DEFAULT '',
			thumbnail_url TEXT NOT NULL DEFAULT '',
			created_at    BIGINT NOT NULL,
			completed_at  BIGINT NOT NULL DEFAULT 0,
			status        TEXT NOT NULL,
			error         TEXT NOT NULL DEFAULT '',
			result        JSONB,
			export_url    TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create library_entries table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, entry *models.LibraryEntry) error {
	var resultJSON any
	if entry.Result != nil {
		data, err := json.Marshal(entry.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		resultJSON = data
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO library_entries
			(id, url, title, thumbnail_url, created_at, completed_at, status, error, result, export_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			url           = EXCLUDED.url,
			title         = EXCLUDED.title,
			thumbnail_url = EXCLUDED.thumbnail_url,
			completed_at  = EXCLUDED.completed_at,
			status        = EXCLUDED.status,
			error         = EXCLUDED.error,
			result        = EXCLUDED.result,
			export_url    = EXCLUDED.export_url`,
		entry.ID, entry.URL, entry.Title, entry.ThumbnailURL,
		entry.CreatedAt, entry.CompletedAt, string(entry.Status), entry.Error,
		resultJSON, entry.ExportURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert library entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.LibraryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, thumbnail_url, created_at, completed_at, status, error, result, export_url
		FROM library_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library entry not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]*models.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, thumbnail_url, created_at, completed_at, status, error, result, export_url
		FROM library_entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LibraryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate library entries: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM library_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete library entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE library_entries`); err != nil {
		return fmt.Errorf("failed to clear library: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.LibraryEntry, error) {
	var (
		entry      models.LibraryEntry
		status     string
		resultJSON []byte
	)
	err := row.Scan(
		&entry.ID, &entry.URL, &entry.Title, &entry.ThumbnailURL,
		&entry.CreatedAt, &entry.CompletedAt, &status, &entry.Error,
		&resultJSON, &entry.ExportURL,
	)
	if err != nil {
		return nil, err
	}
	entry.Status = models.EntryStatus(status)
	if len(resultJSON) > 0 {
		var result models.AnalysisResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result json: %w", err)
		}
		entry.Result = &result
	}
	return &entry, nil
}
