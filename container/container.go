package container

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"screenplay-worker/config"
	"screenplay-worker/domain/ports"
	"screenplay-worker/infrastructure/ai"
	"screenplay-worker/infrastructure/consumer"
	"screenplay-worker/infrastructure/embedding"
	"screenplay-worker/infrastructure/library"
	"screenplay-worker/infrastructure/messenger"
	"screenplay-worker/infrastructure/metadata"
	"screenplay-worker/infrastructure/prompter"
	"screenplay-worker/infrastructure/storage"
	"screenplay-worker/use_cases"
)

// Container - Dependency Injection Container
type Container struct {
	Config *config.Config

	// External connections
	DB *sql.DB

	// Ports (Interfaces)
	Metadata  ports.MetadataPort
	Generator ports.ScriptGeneratorPort
	Library   ports.LibraryPort
	Embedding ports.EmbeddingPort
	Consumer  ports.ConsumerPort
	Messenger ports.MessengerPort
	Storage   ports.StoragePort

	// Use Cases
	Runner       *use_cases.Runner
	BatchHandler *use_cases.BatchHandler

	// Internal
	GeminiClient *ai.GeminiClient
	logger       *slog.Logger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: slog.Default().With("component", "container"),
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 1. External Connections
	// ─────────────────────────────────────────────────────────────────────────

	if cfg.Database.URL != "" {
		db, err := library.OpenDB(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
		c.logger.Info("connected to database")
	} else {
		c.logger.Warn("DATABASE_URL not set, using in-memory library")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Infrastructure Layer
	// ─────────────────────────────────────────────────────────────────────────

	c.Metadata = metadata.NewYouTubeFetcher(cfg.YouTube.APIKey)
	c.logger.Info("youtube metadata fetcher created")

	if len(cfg.Gemini.APIKeys) == 0 {
		return nil, fmt.Errorf("no gemini api keys configured")
	}
	gemini, err := ai.NewGeminiClient(cfg.Gemini.APIKeys[0], cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.GeminiClient = gemini
	c.Generator = gemini
	c.logger.Info("gemini client created", "model", cfg.Gemini.Model)

	if c.DB != nil {
		store := library.NewPostgresStore(c.DB)
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to prepare library schema: %w", err)
		}
		c.Library = store

		pgv := embedding.NewPgVectorClient(c.DB, gemini)
		if err := pgv.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to prepare embedding schema: %w", err)
		}
		c.Embedding = pgv
		c.logger.Info("postgres library and pgvector index created")
	} else {
		c.Library = library.NewMemoryStore()
		c.Embedding = embedding.NewPgVectorClient(nil, gemini)
	}

	consumerImpl, err := consumer.NewNATSConsumer(consumer.NATSConsumerConfig{
		URL:          cfg.NATS.URL,
		Stream:       cfg.NATS.Stream,
		Subject:      cfg.NATS.Subject,
		ConsumerName: cfg.NATS.Consumer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	c.Consumer = consumerImpl
	c.logger.Info("nats consumer created", "stream", cfg.NATS.Stream)

	c.Messenger = messenger.NewNATSPublisher(consumerImpl.Conn())
	c.logger.Info("nats messenger created")

	if cfg.Storage.Endpoint != "" {
		storageClient, err := storage.NewR2Client(storage.R2Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		c.Storage = storageClient
		c.logger.Info("r2 storage created", "bucket", cfg.Storage.Bucket)
	} else {
		c.logger.Warn("storage endpoint not set, screenplay export disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. Use Cases Layer
	// ─────────────────────────────────────────────────────────────────────────

	// Headless worker: no human to ask, so key exhaustion fails the entry
	// instead of blocking the consumer.
	c.Runner = use_cases.NewRunner(c.Metadata, c.Generator, prompter.NewStaticPrompter(nil))
	c.BatchHandler = use_cases.NewBatchHandler(
		c.Runner,
		c.Metadata,
		c.Library,
		c.Messenger,
		c.Storage,
		c.Embedding,
		cfg.Gemini.APIKeys,
	)
	c.logger.Info("batch handler created")

	c.Consumer.SetHandler(c.BatchHandler.ProcessJob)

	c.logger.Info("container initialized successfully")
	return c, nil
}

// Start runs the consumer (blocking until ctx is cancelled).
func (c *Container) Start(ctx context.Context) error {
	c.logger.Info("starting container services...")

	if err := c.Consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	return nil
}

// Stop shuts everything down gracefully.
func (c *Container) Stop() {
	c.logger.Info("stopping container services...")

	c.Consumer.Stop()
	c.logger.Info("consumer stopped")

	if c.GeminiClient != nil {
		c.GeminiClient.Close()
		c.logger.Info("gemini client closed")
	}

	if c.DB != nil {
		c.DB.Close()
		c.logger.Info("database connection closed")
	}

	c.logger.Info("container stopped")
}
