package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const MIMETypePDF = "application/pdf"

// ErrEmptyCompletion is returned when the model replies with no text.
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Document is a file handed to the model alongside a prompt.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Client is the LLM boundary: prompt in, free text out.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithDocument(ctx context.Context, prompt string, doc Document) (string, error)
}

type Options struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New builds the client for opts.Provider (gemini, openai or mock).
func New(ctx context.Context, opts Options) (Client, error) {
	switch opts.Provider {
	case "gemini":
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:  opts.APIKey,
			Model:   opts.Model,
			Timeout: opts.Timeout,
		})
	case "openai":
		return NewOpenAICompatibleClient(ChatConfig{
			BaseURL: opts.BaseURL,
			APIKey:  opts.APIKey,
			Model:   opts.Model,
		}, opts.Timeout), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", opts.Provider)
	}
}
