package models

// EntryStatus - lifecycle of a library entry.
type EntryStatus string

const (
	EntryPending    EntryStatus = "pending"
	EntryProcessing EntryStatus = "processing"
	EntryComplete   EntryStatus = "complete"
	EntryError      EntryStatus = "error"
)

// LibraryEntry - one analyzed (or queued, or failed) video in the history
// store. Created as a pending placeholder the moment a URL is accepted into
// a batch.
type LibraryEntry struct {
	ID           string          `json:"id"`
	URL          string          `json:"url"`
	Title        string          `json:"title"`
	ThumbnailURL string          `json:"thumbnail_url"`
	CreatedAt    int64           `json:"createdAt"`   // unix millis
	CompletedAt  int64           `json:"completedAt,omitempty"`
	Status       EntryStatus     `json:"status"`
	Error        string          `json:"error,omitempty"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ExportURL    string          `json:"exportUrl,omitempty"`
}
