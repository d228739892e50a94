package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Worker   WorkerConfig
	NATS     NATSConfig
	Database DatabaseConfig
	YouTube  YouTubeConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	HTTP     HTTPConfig
}

type WorkerConfig struct {
	ID string
}

type NATSConfig struct {
	URL      string
	Stream   string
	Subject  string
	Consumer string
}

type DatabaseConfig struct {
	URL string
}

type YouTubeConfig struct {
	APIKey string
}

type GeminiConfig struct {
	// APIKeys - comma separated; the rotation order is the list order.
	APIKeys []string
	Model   string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type HTTPConfig struct {
	Addr string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	workerID := getEnv("WORKER_ID", "screenplay-worker-1")

	return &Config{
		Worker: WorkerConfig{
			ID: workerID,
		},
		NATS: NATSConfig{
			URL:      getEnv("NATS_URL", "nats://localhost:4222"),
			Stream:   getEnv("NATS_STREAM", "SCREENPLAY_JOBS"),
			Subject:  "screenplay.analyze",
			Consumer: "screenplay-worker-" + workerID,
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Gemini: GeminiConfig{
			APIKeys: splitKeys(getEnv("GEMINI_API_KEYS", getEnv("GEMINI_API_KEY", ""))),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "screenplays"),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
	}, nil
}

func splitKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
