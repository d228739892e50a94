package ports

import (
	"context"
	"errors"
	"time"

	"screenplay-worker/domain/models"
)

// ErrQuotaExhausted - the active credential hit a provider quota/rate limit.
// Never retried by the generation engine; the credential ring handles it.
var ErrQuotaExhausted = errors.New("api quota exhausted")

// ErrUserCancelled - the user declined to supply a replacement credential.
var ErrUserCancelled = errors.New("analysis cancelled by user")

// MaxGenerateRetries - the retry budget both generation calls honor.
const MaxGenerateRetries = 7

// RetryFunc - observability hook invoked before each retry sleep.
type RetryFunc func(attempt int, delay time.Duration, reason string)

// ChunkWindow - one fixed slice of the source timeline.
type ChunkWindow struct {
	Index    int // 1-based
	Total    int
	StartSec int
	EndSec   int
}

// Duration returns the window length in seconds.
func (w ChunkWindow) Duration() int { return w.EndSec - w.StartSec }

// OutlineRequest - inputs for the whole-video outline call.
type OutlineRequest struct {
	Metadata        *models.VideoMetadata
	SummaryMinutes  int    // summary mode when > 0
	VariationPrompt string // variation mode when non-empty
}

// ChunkRequest - inputs for one detailed-script chunk call.
type ChunkRequest struct {
	Metadata        *models.VideoMetadata
	Style           string
	SceneCount      int
	Window          ChunkWindow
	Outline         *models.StoryOutline
	SummaryMinutes  int
	VariationPrompt string
}

// ScriptGeneratorPort - structured screenplay generation (Gemini JSON mode).
// Both calls retry transient and malformed-output failures internally with
// bounded backoff; quota exhaustion surfaces as ErrQuotaExhausted without
// consuming retry budget.
type ScriptGeneratorPort interface {
	// UseCredential reinitializes the model client with another API key.
	UseCredential(credential string) error

	// GenerateOutline produces the 3-5 part story outline in a single call.
	GenerateOutline(ctx context.Context, req *OutlineRequest, onRetry RetryFunc) (*models.StoryOutline, error)

	// GenerateChunk produces scenes and assets for one time window.
	GenerateChunk(ctx context.Context, req *ChunkRequest, onRetry RetryFunc) (*models.AnalysisResult, error)
}

// CredentialPrompterPort - user-in-the-loop recovery once every credential is
// exhausted. Returns the new credential, or "" when the user cancels. Blocks
// until the user acts; there is no timeout.
type CredentialPrompterPort interface {
	RequestNewCredential(ctx context.Context) (string, error)
}
