package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// JobQueue - the outbound side of the work queue.
type JobQueue interface {
	Publish(ctx context.Context, job *models.AnalysisJob) error
}

// IdeaGenerator - one-shot story idea suggestions.
type IdeaGenerator interface {
	GenerateStoryIdeas(ctx context.Context, metadata *models.VideoMetadata, apiKeys []string) ([]string, error)
}

// ScreenplayChat - question answering grounded in one finished analysis.
type ScreenplayChat interface {
	Chat(ctx context.Context, contextJSON, message string) (string, error)
}

// App holds the handler dependencies.
type App struct {
	Library   ports.LibraryPort
	Embedding ports.EmbeddingPort
	Metadata  ports.MetadataPort
	Ideas     IdeaGenerator
	Jobs      JobQueue
	Chat      ScreenplayChat
	APIKeys   []string
	Logger    *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type submitJobRequest struct {
	URLs            []string `json:"urls"`
	Style           string   `json:"style"`
	SummaryMinutes  int      `json:"summary_minutes"`
	VariationPrompt string   `json:"variation_prompt"`
}

func (app *App) SubmitJobHandler(w http.ResponseWriter, r *http.Request) {
	var req submitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	urls := make([]string, 0, len(req.URLs))
	for _, u := range req.URLs {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	if len(urls) == 0 {
		writeError(w, http.StatusBadRequest, "at least one url is required")
		return
	}
	if req.SummaryMinutes > 0 && strings.TrimSpace(req.VariationPrompt) != "" {
		writeError(w, http.StatusBadRequest, "summary_minutes and variation_prompt are mutually exclusive")
		return
	}

	job := models.NewAnalysisJob(uuid.NewString(), urls, req.Style)
	job.SummaryMinutes = req.SummaryMinutes
	job.VariationPrompt = req.VariationPrompt

	if err := app.Jobs.Publish(r.Context(), job); err != nil {
		app.Logger.Error("failed to publish job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to enqueue job")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

type storyIdeasRequest struct {
	URL string `json:"url"`
}

func (app *App) StoryIdeasHandler(w http.ResponseWriter, r *http.Request) {
	var req storyIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	meta := app.Metadata.FetchVideoMetadata(r.Context(), req.URL)
	if !meta.Usable() {
		writeError(w, http.StatusUnprocessableEntity, "could not fetch video metadata for the given url")
		return
	}

	ideas, err := app.Ideas.GenerateStoryIdeas(r.Context(), meta, app.APIKeys)
	if err != nil {
		app.Logger.Error("story idea generation failed", "url", req.URL, "error", err)
		writeError(w, http.StatusBadGateway, "story idea generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

func (app *App) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := app.Library.GetAll(r.Context())
	if err != nil {
		app.Logger.Error("failed to list library", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list library")
		return
	}
	if entries == nil {
		entries = []*models.LibraryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (app *App) GetEntryHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := app.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "library entry not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (app *App) DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Library.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		app.Logger.Error("failed to delete entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) ClearLibraryHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Library.Clear(r.Context()); err != nil {
		app.Logger.Error("failed to clear library", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear library")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScenePromptsHandler serves the numbered per-scene prompt list as plain
// text, one JSON prompt per scene.
func (app *App) ScenePromptsHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := app.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "library entry not found")
		return
	}
	if entry.Result == nil {
		writeError(w, http.StatusConflict, "entry has no finished analysis")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scene_prompts.txt"`)
	_, _ = w.Write([]byte(models.ScenePromptFile(entry.Result.Scenes)))
}

type chatRequest struct {
	Message string `json:"message"`
}

// ChatHandler answers one question about a finished analysis. The full
// result JSON is handed to the model as grounding context on every call.
func (app *App) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	entry, err := app.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "library entry not found")
		return
	}
	if entry.Result == nil {
		writeError(w, http.StatusConflict, "entry has no finished analysis")
		return
	}

	contextJSON, err := json.Marshal(entry.Result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode analysis context")
		return
	}

	reply, err := app.Chat.Chat(r.Context(), string(contextJSON), req.Message)
	if err != nil {
		app.Logger.Error("chat failed", "entry_id", entry.ID, "error", err)
		writeError(w, http.StatusBadGateway, "chat failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (app *App) SimilarHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := app.Embedding.FindSimilar(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		app.Logger.Error("similarity search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "similarity search failed")
		return
	}
	if hits == nil {
		hits = []ports.SimilarScreenplay{}
	}
	writeJSON(w, http.StatusOK, hits)
}
