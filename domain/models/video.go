package models

// VideoMetadata - resolved metadata for a source video.
// A degraded instance (empty VideoID) means the URL could not be resolved;
// the pipeline must halt instead of analyzing a placeholder.
type VideoMetadata struct {
	VideoID           string `json:"videoId"`
	Title             string `json:"title"`
	AuthorName        string `json:"author_name"`
	ThumbnailURL      string `json:"thumbnail_url"`
	HasCaptions       bool   `json:"hasCaptions"`
	Duration          int    `json:"duration"` // seconds
	DurationFormatted string `json:"durationFormatted"`
}

// Usable reports whether the metadata identifies a real video.
func (m *VideoMetadata) Usable() bool {
	return m != nil && m.VideoID != "" && m.Duration > 0
}
