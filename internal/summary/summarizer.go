package summary

import (
	"context"
	"fmt"
	"strings"

	"paper-summary-api/internal/ai"
	"paper-summary-api/internal/model"
)

// Summarizer sends a PDF to the LLM and parses the tagged reply.
type Summarizer struct {
	client   ai.Client
	language string
}

func NewSummarizer(client ai.Client, language string) *Summarizer {
	return &Summarizer{client: client, language: language}
}

func (s *Summarizer) Summarize(ctx context.Context, filename string, pdf []byte) (Summary, error) {
	reply, err := s.client.GenerateWithDocument(ctx, BuildSummaryPrompt(s.language), ai.Document{
		Name:     filename,
		MIMEType: ai.MIMETypePDF,
		Data:     pdf,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("generate summary failed: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return Summary{}, ai.ErrEmptyCompletion
	}
	return ParseSummary(reply), nil
}

// Answerer answers questions from a stored paper's summary.
type Answerer struct {
	client   ai.Client
	language string
}

func NewAnswerer(client ai.Client, language string) *Answerer {
	return &Answerer{client: client, language: language}
}

func (a *Answerer) Answer(ctx context.Context, paper model.Paper, question string) (string, error) {
	prompt := BuildQuestionPrompt(BuildPaperContext(paper), question, a.language)
	reply, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer failed: %w", err)
	}
	answer := strings.TrimSpace(reply)
	if answer == "" {
		return "", ai.ErrEmptyCompletion
	}
	return answer, nil
}
