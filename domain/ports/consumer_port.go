package ports

import (
	"context"

	"screenplay-worker/domain/models"
)

// JobHandler - processes one analysis job end to end.
type JobHandler func(ctx context.Context, job *models.AnalysisJob) error

// ConsumerPort - inbound job queue.
type ConsumerPort interface {
	// Start begins consuming jobs (blocking until ctx is cancelled).
	Start(ctx context.Context) error

	// Stop drains in-flight work and closes the connection.
	Stop()

	// SetHandler wires the job handler; must be called before Start.
	SetHandler(handler JobHandler)

	IsRunning() bool
}
