package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"screenplay-worker/domain/models"
)

// JobPublisher submits analysis jobs into the work queue stream.
type JobPublisher struct {
	js      jetstream.JetStream
	subject string
	logger  *slog.Logger
}

func NewJobPublisher(nc *nats.Conn, subject string) (*JobPublisher, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	return &JobPublisher{
		js:      js,
		subject: subject,
		logger:  slog.Default().With("component", "job_publisher"),
	}, nil
}

func (p *JobPublisher) Publish(ctx context.Context, job *models.AnalysisJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}
	p.logger.InfoContext(ctx, "job published", "job_id", job.ID, "url_count", len(job.URLs))
	return nil
}
