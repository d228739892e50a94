package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"screenplay-worker/api"
	"screenplay-worker/config"
	"screenplay-worker/container"
	"screenplay-worker/infrastructure/consumer"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting Screenplay Analysis Worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded",
		"worker_id", cfg.Worker.ID,
		"gemini_model", cfg.Gemini.Model,
		"api_key_count", len(cfg.Gemini.APIKeys),
	)

	// Create container
	c, err := container.NewContainer(cfg)
	if err != nil {
		logger.Error("Failed to create container", "error", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig)
		cancel()
	}()

	// HTTP API (library, job submission, similarity search)
	natsConsumer := c.Consumer.(*consumer.NATSConsumer)
	jobs, err := consumer.NewJobPublisher(natsConsumer.Conn(), cfg.NATS.Subject)
	if err != nil {
		logger.Error("Failed to create job publisher", "error", err)
		os.Exit(1)
	}

	app := &api.App{
		Library:   c.Library,
		Embedding: c.Embedding,
		Metadata:  c.Metadata,
		Ideas:     c.GeminiClient,
		Jobs:      jobs,
		Chat:      c.GeminiClient,
		APIKeys:   cfg.Gemini.APIKeys,
		Logger:    logger.With("component", "api"),
	}
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewRouter(app),
	}
	go func() {
		logger.Info("HTTP API listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// Start worker (blocking)
	logger.Info("Worker starting...")
	if err := c.Start(ctx); err != nil {
		logger.Error("Worker error", "error", err)
	}

	// Graceful shutdown
	_ = httpServer.Shutdown(context.Background())
	c.Stop()
	logger.Info("Worker shutdown complete")
}
