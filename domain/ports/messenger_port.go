package ports

import (
	"context"

	"screenplay-worker/domain/models"
)

// MessengerPort - outbound progress reporting for observers of a running
// batch. Implementations must tolerate being called on every micro-transition
// of the step state machine.
type MessengerPort interface {
	// SendState publishes a step-state snapshot for the entry in flight.
	SendState(ctx context.Context, entryID string, state *models.AnalysisState) error

	// SendCompleted announces a finished entry.
	SendCompleted(ctx context.Context, entryID string) error

	// SendFailed announces a failed entry.
	SendFailed(ctx context.Context, entryID string, err error) error
}
