package messenger

import (
	"context"
	"log/slog"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// NoopMessenger logs instead of publishing. Used by the CLI and tests.
type NoopMessenger struct {
	logger *slog.Logger
}

var _ ports.MessengerPort = (*NoopMessenger)(nil)

func NewNoopMessenger() *NoopMessenger {
	return &NoopMessenger{
		logger: slog.Default().With("component", "noop_messenger"),
	}
}

func (m *NoopMessenger) SendState(ctx context.Context, entryID string, state *models.AnalysisState) error {
	if state != nil && state.CurrentStep >= 0 && state.CurrentStep < len(state.Steps) {
		m.logger.InfoContext(ctx, "progress",
			"entry_id", entryID,
			"step", state.CurrentStep,
			"title", state.Steps[state.CurrentStep].Title,
			"status", state.Steps[state.CurrentStep].Status,
		)
	}
	return nil
}

func (m *NoopMessenger) SendCompleted(ctx context.Context, entryID string) error {
	m.logger.InfoContext(ctx, "completed", "entry_id", entryID)
	return nil
}

func (m *NoopMessenger) SendFailed(ctx context.Context, entryID string, err error) error {
	m.logger.WarnContext(ctx, "failed", "entry_id", entryID, "error", err)
	return nil
}
