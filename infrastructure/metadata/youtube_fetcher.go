package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// videoIDRegex - fallback extraction for partial URLs and embed links.
var videoIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// iso8601DurationRegex matches the PT#H#M#S durations the Data API returns.
var iso8601DurationRegex = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// YouTubeFetcher resolves video metadata through the YouTube Data API v3.
// Failures degrade to placeholder records instead of errors; callers check
// Usable() before analyzing.
type YouTubeFetcher struct {
	apiKey string
	logger *slog.Logger
}

var _ ports.MetadataPort = (*YouTubeFetcher)(nil)

func NewYouTubeFetcher(apiKey string) *YouTubeFetcher {
	return &YouTubeFetcher{
		apiKey: apiKey,
		logger: slog.Default().With("component", "youtube_fetcher"),
	}
}

func (f *YouTubeFetcher) FetchVideoMetadata(ctx context.Context, videoURL string) *models.VideoMetadata {
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		f.logger.Warn("could not extract video id from url", "url", videoURL)
		return &models.VideoMetadata{
			Title:             "Invalid YouTube URL",
			AuthorName:        "Unknown",
			ThumbnailURL:      "https://placehold.co/480x360/1e293b/94a3b8/png?text=Invalid+URL",
			DurationFormatted: "00:00",
		}
	}

	item, err := f.lookupVideo(ctx, videoID)
	if err != nil {
		f.logger.Error("youtube data api lookup failed", "video_id", videoID, "error", err)
		return &models.VideoMetadata{
			VideoID:           videoID,
			Title:             "Video Title (unavailable)",
			AuthorName:        "Uploader (unavailable)",
			ThumbnailURL:      fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID),
			DurationFormatted: "N/A",
		}
	}

	durationSecs := ParseISO8601Duration(item.ContentDetails.Duration)
	meta := &models.VideoMetadata{
		VideoID:           videoID,
		Title:             item.Snippet.Title,
		AuthorName:        item.Snippet.ChannelTitle,
		ThumbnailURL:      bestThumbnail(item.Snippet.Thumbnails),
		HasCaptions:       item.ContentDetails.Caption == "true",
		Duration:          durationSecs,
		DurationFormatted: models.FormatClock(durationSecs),
	}

	f.logger.Info("video metadata fetched",
		"video_id", videoID,
		"title", meta.Title,
		"duration", meta.Duration,
		"has_captions", meta.HasCaptions,
	)
	return meta
}

func (f *YouTubeFetcher) lookupVideo(ctx context.Context, videoID string) (*youtube.Video, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(f.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	resp, err := svc.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}
	return resp.Items[0], nil
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// ExtractVideoID pulls the 11-character video id out of the usual URL
// shapes: watch?v=, youtu.be short links, music.youtube.com, embeds.
func ExtractVideoID(videoURL string) string {
	parsed, err := url.Parse(videoURL)
	if err == nil && parsed.Host != "" {
		host := parsed.Hostname()
		if strings.Contains(host, "youtube.com") {
			if id := parsed.Query().Get("v"); id != "" {
				return id
			}
		}
		if host == "youtu.be" {
			return strings.TrimPrefix(parsed.Path, "/")
		}
	}
	if m := videoIDRegex.FindStringSubmatch(videoURL); m != nil {
		return m[1]
	}
	return ""
}

// ParseISO8601Duration converts a Data API duration like "PT1H2M3S" to
// seconds. Unmatched input parses as 0.
func ParseISO8601Duration(duration string) int {
	m := iso8601DurationRegex.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}
