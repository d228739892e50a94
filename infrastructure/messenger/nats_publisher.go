package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// NATSPublisher streams per-entry progress over core NATS.
// Subject: screenplay.progress.{entry_id}
type NATSPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

var _ ports.MessengerPort = (*NATSPublisher)(nil)

func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{
		nc:     nc,
		logger: slog.Default().With("component", "nats_publisher"),
	}
}

func (p *NATSPublisher) publish(ctx context.Context, update *models.ProgressUpdate) error {
	subject := fmt.Sprintf("screenplay.progress.%s", update.EntryID)

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal progress update: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}

	p.logger.DebugContext(ctx, "progress sent",
		"entry_id", update.EntryID,
		"status", update.Status,
	)
	return nil
}

func (p *NATSPublisher) SendState(ctx context.Context, entryID string, state *models.AnalysisState) error {
	return p.publish(ctx, &models.ProgressUpdate{
		EntryID:   entryID,
		Status:    models.EntryProcessing,
		State:     state,
		Timestamp: time.Now().Unix(),
	})
}

func (p *NATSPublisher) SendCompleted(ctx context.Context, entryID string) error {
	return p.publish(ctx, &models.ProgressUpdate{
		EntryID:   entryID,
		Status:    models.EntryComplete,
		Timestamp: time.Now().Unix(),
	})
}

func (p *NATSPublisher) SendFailed(ctx context.Context, entryID string, err error) error {
	return p.publish(ctx, &models.ProgressUpdate{
		EntryID:   entryID,
		Status:    models.EntryError,
		Error:     err.Error(),
		Timestamp: time.Now().Unix(),
	})
}
