package use_cases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// BatchHandler turns one analysis job into library entries: placeholders
// for every URL up front, then strictly sequential runs. A failed entry is
// recorded and the queue moves on.
type BatchHandler struct {
	runner    *Runner
	metadata  ports.MetadataPort
	library   ports.LibraryPort
	messenger ports.MessengerPort
	storage   ports.StoragePort
	embedding ports.EmbeddingPort
	apiKeys   []string
	logger    *slog.Logger
}

func NewBatchHandler(
	runner *Runner,
	metadata ports.MetadataPort,
	library ports.LibraryPort,
	messenger ports.MessengerPort,
	storage ports.StoragePort,
	embedding ports.EmbeddingPort,
	apiKeys []string,
) *BatchHandler {
	return &BatchHandler{
		runner:    runner,
		metadata:  metadata,
		library:   library,
		messenger: messenger,
		storage:   storage,
		embedding: embedding,
		apiKeys:   apiKeys,
		logger:    slog.Default().With("component", "batch_handler"),
	}
}

// ProcessJob implements ports.JobHandler.
func (h *BatchHandler) ProcessJob(ctx context.Context, job *models.AnalysisJob) error {
	h.logger.InfoContext(ctx, "starting batch",
		"job_id", job.ID,
		"url_count", len(job.URLs),
		"style", job.Style,
	)

	// Phase 1: a placeholder per URL, so observers see the whole queue
	// before any analysis starts. Unresolvable URLs fail here and are
	// excluded from phase 2.
	entries := make([]*models.LibraryEntry, 0, len(job.URLs))
	for _, url := range job.URLs {
		entry := h.makePlaceholder(ctx, url)
		if err := h.library.Put(ctx, entry); err != nil {
			h.logger.ErrorContext(ctx, "failed to store placeholder", "url", url, "error", err)
			continue
		}
		if entry.Status == models.EntryError {
			_ = h.messenger.SendFailed(ctx, entry.ID, fmt.Errorf("%s", entry.Error))
			continue
		}
		entries = append(entries, entry)
	}

	// Keys learned mid-batch (via the prompter) carry over to later entries.
	keys := append([]string(nil), h.apiKeys...)

	// Phase 2: sequential analysis.
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.processEntry(ctx, entry, job, &keys)
	}

	h.logger.InfoContext(ctx, "batch finished", "job_id", job.ID)
	return nil
}

func (h *BatchHandler) makePlaceholder(ctx context.Context, url string) *models.LibraryEntry {
	meta := h.metadata.FetchVideoMetadata(ctx, url)
	now := time.Now().UnixMilli()

	if !meta.Usable() {
		return &models.LibraryEntry{
			ID:        fmt.Sprintf("failed-meta-%s", uuid.NewString()),
			URL:       url,
			Title:     url,
			CreatedAt: now,
			Status:    models.EntryError,
			Error:     "could not fetch video metadata; check the URL and the YouTube API key",
		}
	}

	return &models.LibraryEntry{
		ID:           fmt.Sprintf("%s-%s", meta.VideoID, uuid.NewString()),
		URL:          url,
		Title:        meta.Title,
		ThumbnailURL: meta.ThumbnailURL,
		CreatedAt:    now,
		Status:       models.EntryPending,
	}
}

func (h *BatchHandler) processEntry(ctx context.Context, entry *models.LibraryEntry, job *models.AnalysisJob, keys *[]string) {
	entry.Status = models.EntryProcessing
	if err := h.library.Put(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to mark entry processing", "entry_id", entry.ID, "error", err)
	}

	result, err := h.runner.Run(ctx, RunOptions{
		URL:             entry.URL,
		Style:           job.Style,
		SummaryMinutes:  job.SummaryMinutes,
		VariationPrompt: job.VariationPrompt,
		Credentials:     *keys,
		OnStateUpdate: func(state *models.AnalysisState) {
			_ = h.messenger.SendState(ctx, entry.ID, state)
		},
		OnNewCredential: func(key string) {
			*keys = append(*keys, key)
		},
	})
	if err != nil {
		entry.Status = models.EntryError
		entry.Error = err.Error()
		if putErr := h.library.Put(ctx, entry); putErr != nil {
			h.logger.ErrorContext(ctx, "failed to record entry failure", "entry_id", entry.ID, "error", putErr)
		}
		_ = h.messenger.SendFailed(ctx, entry.ID, err)
		return
	}

	entry.Status = models.EntryComplete
	entry.CompletedAt = time.Now().UnixMilli()
	entry.Result = result
	entry.Title = result.VideoMeta.Title
	entry.Error = ""
	entry.ExportURL = h.export(ctx, entry.ID, result)

	if err := h.library.Put(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to store finished entry", "entry_id", entry.ID, "error", err)
	}
	_ = h.messenger.SendCompleted(ctx, entry.ID)

	h.index(ctx, entry, result)
}

// export uploads the finished document; failures only cost the export URL.
func (h *BatchHandler) export(ctx context.Context, entryID string, result *models.AnalysisResult) string {
	if h.storage == nil {
		return ""
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		h.logger.WarnContext(ctx, "failed to marshal result for export", "entry_id", entryID, "error", err)
		return ""
	}
	path := fmt.Sprintf("screenplays/%s.json", entryID)
	if err := h.storage.Upload(ctx, path, data, "application/json"); err != nil {
		h.logger.WarnContext(ctx, "screenplay export failed (non-critical)", "entry_id", entryID, "error", err)
		return ""
	}
	return h.storage.GetPublicURL(path)
}

// index stores the similarity embedding; failures are non-critical.
func (h *BatchHandler) index(ctx context.Context, entry *models.LibraryEntry, result *models.AnalysisResult) {
	if h.embedding == nil {
		return
	}
	vector, err := h.embedding.EmbedResult(ctx, result)
	if err != nil {
		h.logger.WarnContext(ctx, "embedding failed (non-critical)", "entry_id", entry.ID, "error", err)
		return
	}
	err = h.embedding.Store(ctx, &ports.ScreenplayEmbedding{
		EntryID:   entry.ID,
		SourceURL: entry.URL,
		Title:     result.VideoMeta.Title,
		Style:     firstSceneStyle(result),
		Vector:    vector,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "embedding store failed (non-critical)", "entry_id", entry.ID, "error", err)
	}
}

func firstSceneStyle(result *models.AnalysisResult) string {
	if len(result.Scenes) > 0 {
		return result.Scenes[0].StyleVideo
	}
	return ""
}
