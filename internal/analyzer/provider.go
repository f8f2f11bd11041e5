package analyzer

import (
	"context"
)

// DocumentPayload is what a provider gets to see of the document under
// analysis. PDF carries the raw bytes for multimodal providers; Text is the
// plain-text rendition for providers that cannot accept a file.
type DocumentPayload struct {
	Name string
	PDF  []byte
	Text string
}

// Session is one conversational exchange with the external model. The
// scheduler keeps a single session per document so every window question is
// answered with the whole document still in context.
type Session interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// Provider creates analysis sessions against one external model backend.
type Provider interface {
	StartSession(ctx context.Context, doc DocumentPayload, systemInstruction string) (Session, error)
	Model() string
}
