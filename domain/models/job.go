package models

import "time"

// AnalysisJob - a batch of video URLs to analyze with shared options.
// Arrives over NATS JetStream or from the CLI.
type AnalysisJob struct {
	ID              string   `json:"id"`
	URLs            []string `json:"urls"`
	Style           string   `json:"style"`
	SummaryMinutes  int      `json:"summary_minutes,omitempty"`
	VariationPrompt string   `json:"variation_prompt,omitempty"`
	CreatedAt       int64    `json:"created_at"`
}

// NewAnalysisJob builds a job with the submission timestamp filled in.
func NewAnalysisJob(id string, urls []string, style string) *AnalysisJob {
	return &AnalysisJob{
		ID:        id,
		URLs:      urls,
		Style:     style,
		CreatedAt: time.Now().Unix(),
	}
}

// ProgressUpdate - per-entry snapshot published while a batch runs.
// Observers render the live eight-step view from State.
type ProgressUpdate struct {
	EntryID   string         `json:"entry_id"`
	Status    EntryStatus    `json:"status"`
	State     *AnalysisState `json:"state,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp int64          `json:"timestamp"`
}
