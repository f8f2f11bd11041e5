package analyzer

import (
	"context"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// GeminiProvider runs analysis sessions against the Gemini API. Gemini
// accepts the PDF inline, so the document travels with the first message
// and stays in the chat context for every window that follows.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Model returns the model identifier.
func (p *GeminiProvider) Model() string {
	return p.model
}

// StartSession opens a chat with the system instruction set. The PDF bytes
// attach to the first Send.
func (p *GeminiProvider) StartSession(ctx context.Context, doc DocumentPayload, systemInstruction string) (Session, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.1),
	}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	chat, err := p.client.Chats.Create(ctx, p.model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gemini chat: %w", err)
	}
	return &geminiSession{chat: chat, doc: doc}, nil
}

type geminiSession struct {
	chat    *genai.Chat
	doc     DocumentPayload
	started bool
}

func (s *geminiSession) Send(ctx context.Context, prompt string) (string, error) {
	parts := []genai.Part{{Text: prompt}}
	if !s.started && len(s.doc.PDF) > 0 {
		parts = append(parts, genai.Part{
			InlineData: &genai.Blob{MIMEType: "application/pdf", Data: s.doc.PDF},
		})
	}

	res, err := s.chat.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	s.started = true
	return res.Text(), nil
}
