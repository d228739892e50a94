package use_cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// RunOptions - inputs for one single-video analysis.
type RunOptions struct {
	URL             string
	Style           string
	SummaryMinutes  int
	VariationPrompt string
	Credentials     []string

	// OnStateUpdate receives a snapshot after every step transition,
	// including retry-progress rewrites. Optional.
	OnStateUpdate func(state *models.AnalysisState)

	// OnNewCredential fires when the prompter supplies a replacement key,
	// so the caller can reuse it for the rest of the batch. Optional.
	OnNewCredential func(key string)
}

// Runner drives the eight-step pipeline for a single video: metadata,
// simulated download, scene estimation, keyframe synthesis, outline
// generation, chunked script generation, composition, and scene prompts.
type Runner struct {
	metadata  ports.MetadataPort
	generator ports.ScriptGeneratorPort
	prompter  ports.CredentialPrompterPort
	logger    *slog.Logger
}

func NewRunner(metadata ports.MetadataPort, generator ports.ScriptGeneratorPort, prompter ports.CredentialPrompterPort) *Runner {
	return &Runner{
		metadata:  metadata,
		generator: generator,
		prompter:  prompter,
		logger:    slog.Default().With("component", "analysis_runner"),
	}
}

// Run executes the pipeline. On failure the step state machine carries the
// error against the step in flight and the error is returned; a returned
// result is always fully composed.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*models.AnalysisResult, error) {
	state := models.NewAnalysisState()
	notify := func() {
		if opts.OnStateUpdate != nil {
			opts.OnStateUpdate(state.Clone())
		}
	}
	notify()

	result, err := r.run(ctx, opts, state, notify)
	if err != nil {
		r.logger.ErrorContext(ctx, "analysis failed", "url", opts.URL, "error", err)
		state.FailCurrent(err.Error())
		notify()
		return nil, err
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, opts RunOptions, state *models.AnalysisState, notify func()) (*models.AnalysisResult, error) {
	if opts.SummaryMinutes > 0 && strings.TrimSpace(opts.VariationPrompt) != "" {
		return nil, fmt.Errorf("summary duration and variation prompt are mutually exclusive")
	}
	if len(opts.Credentials) == 0 {
		return nil, fmt.Errorf("no api keys provided")
	}

	ring, err := newCredentialRing(opts.Credentials, r.generator, r.prompter)
	if err != nil {
		return nil, err
	}
	ring.onNewKey = opts.OnNewCredential
	if err := ring.activate(); err != nil {
		return nil, err
	}

	variation := strings.TrimSpace(opts.VariationPrompt) != ""

	// Step 0: fetch metadata.
	state.StartStep(models.StepMetadata)
	notify()
	meta := r.metadata.FetchVideoMetadata(ctx, opts.URL)
	if !meta.Usable() {
		return nil, fmt.Errorf("could not fetch video metadata; check the URL and the YouTube API key")
	}
	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	state.CompleteStep(models.StepMetadata, string(metaJSON))
	notify()

	// Step 1: simulated download. No media is ever fetched.
	state.CompleteStep(models.StepDownload,
		fmt.Sprintf("[Simulation] Video downloaded successfully.\nDuration: %s", meta.DurationFormatted))
	notify()

	// Step 2: scene boundary estimate.
	totalScenes := estimateTotalScenes(meta.Duration, opts.SummaryMinutes, variation)
	var sceneMsg string
	switch {
	case variation:
		sceneMsg = fmt.Sprintf("[Creative Mode] Generating a new story with ~%d scenes based on original video duration.", totalScenes)
	case opts.SummaryMinutes > 0:
		sceneMsg = fmt.Sprintf("[Summary Mode] To create a %d-minute summary, ~%d scenes will be generated.", opts.SummaryMinutes, totalScenes)
	default:
		sceneMsg = fmt.Sprintf("[Standard Mode] Detected approximately %d scenes based on video duration.", totalScenes)
	}
	state.CompleteStep(models.StepSceneBounds, sceneMsg)
	notify()

	// Step 3: synthesized keyframes.
	keyframes := synthesizeKeyframes(meta.VideoID, totalScenes)
	keyframesJSON, _ := json.Marshal(keyframes)
	state.CompleteStep(models.StepKeyframes, string(keyframesJSON))
	notify()

	// Step 4: story outline.
	outlineReq := &ports.OutlineRequest{
		Metadata:        meta,
		SummaryMinutes:  opts.SummaryMinutes,
		VariationPrompt: opts.VariationPrompt,
	}
	var outline *models.StoryOutline
	err = r.withRotation(ctx, ring, state, notify, models.StepOutline, func() error {
		var genErr error
		outline, genErr = r.generator.GenerateOutline(ctx, outlineReq,
			r.retryReporter(state, notify, models.StepOutline, "AI Outline"))
		return genErr
	})
	if err != nil {
		return nil, err
	}
	outlineJSON, _ := json.MarshalIndent(outline, "", "  ")
	state.CompleteStep(models.StepOutline, string(outlineJSON))
	notify()

	// Step 5: detailed script, one call per 300-second window.
	windows := planChunks(meta.Duration)
	acc := newResultAccumulator()
	for _, w := range windows {
		state.SetOutput(models.StepScript, fmt.Sprintf("AI Script: Processing chunk %d/%d (%s - %s)...",
			w.Index, w.Total, models.FormatClock(w.StartSec), models.FormatClock(w.EndSec)))
		notify()

		req := &ports.ChunkRequest{
			Metadata:        meta,
			Style:           opts.Style,
			SceneCount:      scenesForChunk(w, meta.Duration, totalScenes, opts.SummaryMinutes),
			Window:          w,
			Outline:         outline,
			SummaryMinutes:  opts.SummaryMinutes,
			VariationPrompt: opts.VariationPrompt,
		}

		var chunk *models.AnalysisResult
		err = r.withRotation(ctx, ring, state, notify, models.StepScript, func() error {
			var genErr error
			chunk, genErr = r.generator.GenerateChunk(ctx, req,
				r.retryReporter(state, notify, models.StepScript,
					fmt.Sprintf("AI Script: chunk %d/%d", w.Index, w.Total)))
			return genErr
		})
		if err != nil {
			return nil, err
		}
		acc.add(chunk)
	}

	if acc.empty() {
		return nil, fmt.Errorf("analysis did not produce any results after processing all chunks")
	}
	final := acc.finalize(outline)
	state.CompleteStep(models.StepScript,
		fmt.Sprintf("Generated a total of %d scenes across %d chunks.", len(final.Scenes), len(windows)))
	notify()

	// Step 6: composition.
	state.CompleteStep(models.StepCompose,
		fmt.Sprintf("Final JSON with %d scenes is valid.", len(final.Scenes)))
	notify()

	// Step 7: per-scene prompts.
	state.CompleteStep(models.StepScenePrompts, "Prompts are ready for download.")
	notify()

	return final, nil
}

// withRotation retries one generation call across credential rotations.
// Quota exhaustion advances the ring and repeats the same call; every other
// error, including user cancellation, propagates.
func (r *Runner) withRotation(ctx context.Context, ring *credentialRing, state *models.AnalysisState, notify func(), step int, call func() error) error {
	for {
		err := call()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrQuotaExhausted) {
			return err
		}

		state.SetOutput(step, fmt.Sprintf("API key #%d is over quota. Switching keys...", ring.keyNumber()))
		notify()
		if rotErr := ring.rotate(ctx); rotErr != nil {
			if errors.Is(rotErr, ports.ErrUserCancelled) {
				return rotErr
			}
			return fmt.Errorf("credential rotation failed: %w", rotErr)
		}
	}
}

// retryReporter rewrites the step output on every in-call retry with a
// friendly reason and countdown, mirroring the transient reason taxonomy.
func (r *Runner) retryReporter(state *models.AnalysisState, notify func(), step int, label string) ports.RetryFunc {
	return func(attempt int, delay time.Duration, reason string) {
		friendly := "Model is overloaded"
		if strings.Contains(reason, "json") || strings.Contains(reason, "empty") {
			friendly = "Invalid response"
		}
		state.SetOutput(step, fmt.Sprintf("%s: %s. Retrying in %ds... (Attempt %d/%d)",
			label, friendly, int(math.Round(delay.Seconds())), attempt, ports.MaxGenerateRetries))
		notify()
	}
}

// synthesizeKeyframes fabricates deterministic placeholder frames, one per
// estimated scene.
func synthesizeKeyframes(videoID string, sceneCount int) *models.KeyframeSet {
	frames := make([]models.Keyframe, sceneCount)
	for i := range frames {
		frames[i] = models.Keyframe{
			SceneID: i + 1,
			URL:     fmt.Sprintf("https://picsum.photos/seed/%s%d/160/90", videoID, i),
		}
	}
	return &models.KeyframeSet{
		Log:       fmt.Sprintf("[Simulation] Extracted keyframes for %d potential scenes.", sceneCount),
		Keyframes: frames,
	}
}
