package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

type NATSConsumer struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	consumer jetstream.Consumer
	handler  ports.JobHandler
	logger   *slog.Logger

	running atomic.Bool
	wg      sync.WaitGroup

	config NATSConsumerConfig
}

type NATSConsumerConfig struct {
	URL          string
	Stream       string
	Subject      string
	ConsumerName string
}

func NewNATSConsumer(cfg NATSConsumerConfig) (*NATSConsumer, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSConsumer{
		nc:     nc,
		js:     js,
		config: cfg,
		logger: slog.Default().With("component", "nats_consumer"),
	}, nil
}

// Conn exposes the underlying connection so the progress publisher can
// share it.
func (c *NATSConsumer) Conn() *nats.Conn {
	return c.nc
}

func (c *NATSConsumer) SetHandler(handler ports.JobHandler) {
	c.handler = handler
}

func (c *NATSConsumer) Start(ctx context.Context) error {
	if c.handler == nil {
		return fmt.Errorf("handler not set")
	}

	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      c.config.Stream,
		Subjects:  []string{c.config.Subject},
		Retention: jetstream.WorkQueuePolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	// Single delivery attempt: a batch marks its own per-entry failures in
	// the library, so replaying the whole job would duplicate entries.
	cons, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          c.config.ConsumerName,
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    1,
		AckWait:       2 * time.Hour,
		FilterSubject: c.config.Subject,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}
	c.consumer = cons

	c.running.Store(true)
	c.logger.Info("consumer started",
		"stream", c.config.Stream,
		"consumer", c.config.ConsumerName,
	)

	consumeCtx, err := cons.Consume(func(msg jetstream.Msg) {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.processMessage(ctx, msg)
		}()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	defer consumeCtx.Stop()

	<-ctx.Done()
	c.logger.Info("context cancelled, stopping consumer")
	c.running.Store(false)
	c.wg.Wait()
	return nil
}

func (c *NATSConsumer) processMessage(ctx context.Context, msg jetstream.Msg) {
	var job models.AnalysisJob
	if err := json.Unmarshal(msg.Data(), &job); err != nil {
		c.logger.Error("failed to unmarshal job", "error", err)
		msg.Term()
		return
	}

	c.logger.Info("processing analysis job",
		"job_id", job.ID,
		"url_count", len(job.URLs),
		"style", job.Style,
	)

	if err := c.handler(ctx, &job); err != nil {
		c.logger.Error("job failed",
			"job_id", job.ID,
			"error", err,
		)
		msg.Nak()
		return
	}

	msg.Ack()
	c.logger.Info("job completed", "job_id", job.ID)
}

func (c *NATSConsumer) Stop() {
	c.running.Store(false)
	c.wg.Wait()
	if c.nc != nil {
		c.nc.Close()
	}
	c.logger.Info("consumer stopped")
}

func (c *NATSConsumer) IsRunning() bool {
	return c.running.Load()
}

// Verify interface implementation
var _ ports.ConsumerPort = (*NATSConsumer)(nil)
