package ai

import (
	"context"
	"time"
)

// Recorder receives one observation per LLM call.
type Recorder interface {
	ObserveLLM(operation string, elapsed time.Duration, err error)
}

// Instrument wraps c so every call is reported to rec.
func Instrument(c Client, rec Recorder) Client {
	if rec == nil {
		return c
	}
	return &instrumentedClient{next: c, rec: rec}
}

type instrumentedClient struct {
	next Client
	rec  Recorder
}

func (c *instrumentedClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := c.next.Generate(ctx, prompt)
	c.rec.ObserveLLM("generate", time.Since(start), err)
	return out, err
}

func (c *instrumentedClient) GenerateWithDocument(ctx context.Context, prompt string, doc Document) (string, error) {
	start := time.Now()
	out, err := c.next.GenerateWithDocument(ctx, prompt, doc)
	c.rec.ObserveLLM("generate_with_document", time.Since(start), err)
	return out, err
}
