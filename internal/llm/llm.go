package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for resume critiques.
type Client interface {
	CritiqueResume(ctx context.Context, input CritiqueInput) (json.RawMessage, error)
}

// CritiqueInput captures the inputs for one critique request.
type CritiqueInput struct {
	ResumeText     string
	JobDescription string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// CritiqueResume returns ErrNotConfigured.
func (PlaceholderClient) CritiqueResume(ctx context.Context, input CritiqueInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
