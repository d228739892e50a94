package ports

import (
	"context"

	"screenplay-worker/domain/models"
)

// LibraryPort - keyed store of analysis history.
// Put is an upsert; GetAll returns entries newest first.
type LibraryPort interface {
	Put(ctx context.Context, entry *models.LibraryEntry) error
	Get(ctx context.Context, id string) (*models.LibraryEntry, error)
	GetAll(ctx context.Context) ([]*models.LibraryEntry, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
