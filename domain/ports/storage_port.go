package ports

import "context"

// StoragePort - object storage for exported screenplay artifacts (R2/S3).
type StoragePort interface {
	// Upload writes data under path with the given content type.
	Upload(ctx context.Context, path string, data []byte, contentType string) error

	// GetPublicURL builds a public URL for an uploaded path.
	GetPublicURL(path string) string

	// Delete removes an uploaded artifact.
	Delete(ctx context.Context, path string) error

	// Exists reports whether an artifact is present.
	Exists(ctx context.Context, path string) (bool, error)
}
