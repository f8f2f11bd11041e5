package analyzer

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider runs analysis sessions against the OpenAI chat API. The
// API takes no PDF attachment, so the session is seeded with the document's
// plain-text rendition instead.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}, nil
}

// Model returns the model identifier.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// StartSession seeds a message history with the system instruction and the
// document text. Later Sends grow the same history, preserving the
// conversational pattern the scheduler relies on.
func (p *OpenAIProvider) StartSession(ctx context.Context, doc DocumentPayload, systemInstruction string) (Session, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}
	if doc.Text != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: "The full document under analysis follows.\n\n" + doc.Text,
		})
	}
	return &openaiSession{client: p.client, model: p.model, messages: messages}, nil
}

type openaiSession struct {
	client   *openai.Client
	model    string
	messages []openai.ChatCompletionMessage
}

func (s *openaiSession) Send(ctx context.Context, prompt string) (string, error) {
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    s.messages,
		Temperature: 0,
	})
	if err != nil {
		// Drop the unanswered prompt so a retry does not stack duplicates.
		s.messages = s.messages[:len(s.messages)-1]
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		s.messages = s.messages[:len(s.messages)-1]
		return "", errors.New("openai: no choices in response")
	}

	content := resp.Choices[0].Message.Content
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: content,
	})
	return content, nil
}
