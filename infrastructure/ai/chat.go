package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// ChatSession answers follow-up questions about one finished analysis. The
// analysis JSON is pinned as the system instruction; history accumulates in
// the session, so callers hold one session per conversation.
type ChatSession struct {
	session *genai.ChatSession
}

// StartChat opens a chat grounded in the given analysis document.
func (c *GeminiClient) StartChat(contextJSON string) *ChatSession {
	c.mu.Lock()
	model := c.client.GenerativeModel(c.model)
	c.mu.Unlock()

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"You are a helpful AI assistant. Your task is to answer questions about an analyzed video. Here is the video analysis in JSON format:\n\n%s\n\nBased on this information, answer the user's questions concisely and accurately.",
			contextJSON,
		))},
	}
	return &ChatSession{session: model.StartChat()}
}

// Chat answers a single question about an analysis document. Stateless
// callers (the HTTP API) use this; interactive callers hold a ChatSession.
func (c *GeminiClient) Chat(ctx context.Context, contextJSON, message string) (string, error) {
	return c.StartChat(contextJSON).Send(ctx, message)
}

// Send submits one user message and returns the model's reply.
func (s *ChatSession) Send(ctx context.Context, message string) (string, error) {
	resp, err := s.session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("empty chat response")
	}
	return text, nil
}
