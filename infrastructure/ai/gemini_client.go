package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

const (
	defaultTemp     = 0.7
	maxOutputTokens = 8192
	embeddingModel  = "text-embedding-004"
)

func toPtr[T any](v T) *T {
	return &v
}

// ============================================================================
// GeminiClient
// ============================================================================

// GeminiClient implements structured screenplay generation and text
// embedding on top of the Gemini API. UseCredential swaps the underlying
// client, so one instance survives a full credential rotation.
type GeminiClient struct {
	mu     sync.Mutex
	client *genai.Client
	model  string
	retry  retryPolicy
	logger *slog.Logger
}

var _ ports.ScriptGeneratorPort = (*GeminiClient)(nil)
var _ ports.TextEmbedderPort = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		retry:  defaultRetryPolicy(),
		logger: slog.Default().With("component", "gemini"),
	}, nil
}

func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.Close()
}

// UseCredential replaces the underlying API client with one bound to the
// given key. In-flight calls keep the old client; subsequent calls pick up
// the new one.
func (c *GeminiClient) UseCredential(credential string) error {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(credential))
	if err != nil {
		return fmt.Errorf("failed to reinitialize gemini client: %w", err)
	}

	c.mu.Lock()
	old := c.client
	c.client = client
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	c.logger.Info("switched gemini credential")
	return nil
}

func (c *GeminiClient) generativeModel(schema *genai.Schema) *genai.GenerativeModel {
	c.mu.Lock()
	defer c.mu.Unlock()

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	model.Temperature = toPtr(float32(defaultTemp))
	model.TopP = toPtr(float32(0.95))
	model.TopK = toPtr(int32(40))
	model.MaxOutputTokens = toPtr(int32(maxOutputTokens))
	return model
}

// call runs one generation request and extracts the raw text.
func (c *GeminiClient) call(ctx context.Context, schema *genai.Schema, prompt string) (string, error) {
	model := c.generativeModel(schema)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type: %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

// ============================================================================
// ScriptGeneratorPort
// ============================================================================

func (c *GeminiClient) GenerateOutline(ctx context.Context, req *ports.OutlineRequest, onRetry ports.RetryFunc) (*models.StoryOutline, error) {
	prompt := buildOutlinePrompt(req)
	c.logger.Info("generating story outline",
		"video_id", req.Metadata.VideoID,
		"summary_minutes", req.SummaryMinutes,
		"variation", req.VariationPrompt != "",
	)

	outline, err := generateJSON[models.StoryOutline](ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.call(ctx, outlineSchema(), prompt)
	}, onRetry)
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}
	return outline, nil
}

func (c *GeminiClient) GenerateChunk(ctx context.Context, req *ports.ChunkRequest, onRetry ports.RetryFunc) (*models.AnalysisResult, error) {
	prompt := buildChunkPrompt(req)
	c.logger.Info("generating script chunk",
		"video_id", req.Metadata.VideoID,
		"chunk", req.Window.Index,
		"total_chunks", req.Window.Total,
		"scene_count", req.SceneCount,
	)

	result, err := generateJSON[models.AnalysisResult](ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.call(ctx, analysisSchema(), prompt)
	}, onRetry)
	if err != nil {
		return nil, fmt.Errorf("chunk %d/%d generation failed: %w", req.Window.Index, req.Window.Total, err)
	}
	return result, nil
}

// ============================================================================
// Story Ideas
// ============================================================================

// GenerateStoryIdeas suggests three one-sentence premises for a new story
// featuring the video's characters. Each provided key is tried once; the
// first valid response wins.
func (c *GeminiClient) GenerateStoryIdeas(ctx context.Context, metadata *models.VideoMetadata, apiKeys []string) ([]string, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no api keys provided")
	}

	prompt := fmt.Sprintf(
		`Based on the video titled "%s", suggest 3 short, one-sentence ideas for a completely new adventure or story featuring its main characters. Return only a valid JSON array of strings.`,
		metadata.Title,
	)
	schema := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	var lastErr error
	for _, key := range apiKeys {
		client, err := genai.NewClient(ctx, option.WithAPIKey(key))
		if err != nil {
			lastErr = err
			continue
		}

		ideas, err := c.ideasWithClient(ctx, client, schema, prompt)
		_ = client.Close()
		if err != nil {
			c.logger.Warn("story idea generation failed for key", "error", err)
			lastErr = err
			continue
		}
		return ideas, nil
	}

	if kind, _ := classify(lastErr); kind == kindQuota {
		return nil, fmt.Errorf("%w: all provided api keys are over quota", ports.ErrQuotaExhausted)
	}
	return nil, fmt.Errorf("story idea generation failed with every key: %w", lastErr)
}

func (c *GeminiClient) ideasWithClient(ctx context.Context, client *genai.Client, schema *genai.Schema, prompt string) ([]string, error) {
	model := client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	var ideas []string
	if err := json.Unmarshal([]byte(stripMarkdownFences(text)), &ideas); err != nil {
		return nil, fmt.Errorf("response is not a string array: %w", err)
	}
	return ideas, nil
}

// ============================================================================
// TextEmbedderPort
// ============================================================================

func (c *GeminiClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	em := c.client.EmbeddingModel(embeddingModel)
	c.mu.Unlock()

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embedding.Values, nil
}
