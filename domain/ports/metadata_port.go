package ports

import (
	"context"

	"screenplay-worker/domain/models"
)

// MetadataPort - resolves a video URL to its metadata.
// Implementations degrade rather than fail: an unresolvable URL yields a
// placeholder record with an empty VideoID instead of an error, so batch
// placeholder creation never aborts.
type MetadataPort interface {
	FetchVideoMetadata(ctx context.Context, url string) *models.VideoMetadata
}
