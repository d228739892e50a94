package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"screenplay-worker/config"
	"screenplay-worker/domain/models"
	"screenplay-worker/infrastructure/ai"
	"screenplay-worker/infrastructure/library"
	"screenplay-worker/infrastructure/messenger"
	"screenplay-worker/infrastructure/metadata"
	"screenplay-worker/infrastructure/prompter"
	"screenplay-worker/use_cases"
)

// analyze runs a batch directly, without NATS or Postgres. When a key runs
// out of quota mid-run it prompts on the terminal for a replacement.
func main() {
	var (
		urlsFlag      = flag.String("urls", "", "comma-separated YouTube URLs (required)")
		styleFlag     = flag.String("style", "cinematic", "output style, e.g. cinematic, anime")
		summaryFlag   = flag.Int("summary-minutes", 0, "summary mode: target duration in minutes")
		variationFlag = flag.String("variation", "", "variation mode: prompt for a new story")
		outFlag       = flag.String("out", "", "write finished screenplays to this directory")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	urls := splitURLs(*urlsFlag)
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze -urls <url>[,<url>...] [-style cinematic] [-summary-minutes N | -variation \"...\"]")
		os.Exit(2)
	}
	if *summaryFlag > 0 && strings.TrimSpace(*variationFlag) != "" {
		fmt.Fprintln(os.Stderr, "error: -summary-minutes and -variation are mutually exclusive")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if len(cfg.Gemini.APIKeys) == 0 {
		fmt.Fprintln(os.Stderr, "error: GEMINI_API_KEYS is not set")
		os.Exit(1)
	}

	gemini, err := ai.NewGeminiClient(cfg.Gemini.APIKeys[0], cfg.Gemini.Model)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer gemini.Close()

	fetcher := metadata.NewYouTubeFetcher(cfg.YouTube.APIKey)
	store := library.NewMemoryStore()
	runner := use_cases.NewRunner(fetcher, gemini, prompter.NewStdinPrompter())
	handler := use_cases.NewBatchHandler(
		runner, fetcher, store,
		messenger.NewNoopMessenger(),
		nil, nil,
		cfg.Gemini.APIKeys,
	)

	job := models.NewAnalysisJob(uuid.NewString(), urls, *styleFlag)
	job.SummaryMinutes = *summaryFlag
	job.VariationPrompt = *variationFlag

	if err := handler.ProcessJob(context.Background(), job); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	entries, _ := store.GetAll(context.Background())
	exitCode := 0
	for _, entry := range entries {
		switch entry.Status {
		case models.EntryComplete:
			fmt.Printf("ok    %s  %q  %d scenes\n", entry.URL, entry.Title, len(entry.Result.Scenes))
			if *outFlag != "" {
				if err := writeResult(*outFlag, entry); err != nil {
					fmt.Fprintln(os.Stderr, "error:", err)
					exitCode = 1
				}
			}
		default:
			fmt.Printf("fail  %s  %s\n", entry.URL, entry.Error)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func writeResult(dir string, entry *models.LibraryEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry.Result, "", "  ")
	if err != nil {
		return err
	}
	base := fmt.Sprintf("%s/%s", dir, entry.ID)
	if err := os.WriteFile(base+".json", data, 0o644); err != nil {
		return err
	}
	prompts := models.ScenePromptFile(entry.Result.Scenes)
	return os.WriteFile(base+".prompts.txt", []byte(prompts), 0o644)
}

func splitURLs(raw string) []string {
	var urls []string
	for _, part := range strings.Split(raw, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
