package ai

import (
	"context"
	"fmt"
	"strings"

	"paper-summary-api/internal/pkg/hashutil"
)

// MockClient returns deterministic replies in the tagged summary format.
// It is meant for local runs without an API key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(_ context.Context, prompt string) (string, error) {
	return fmt.Sprintf("Mock answer for a question of %d characters. Replace the mock provider for real answers.", len([]rune(prompt))), nil
}

func (m *MockClient) GenerateWithDocument(_ context.Context, _ string, doc Document) (string, error) {
	digest := hashutil.SHA256Hex(doc.Data)[:12]
	title := strings.TrimSuffix(doc.Name, ".pdf")
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**TITLE:** %s\n", title)
	b.WriteString("**AUTHORS:** Mock Author\n")
	fmt.Fprintf(&b, "**ABSTRACT:** Deterministic summary of document %s (%d bytes).\n", digest, len(doc.Data))
	b.WriteString("**INTRODUCTION:** Mock introduction.\n")
	b.WriteString("**METHODS:** Mock methods.\n")
	b.WriteString("**RESULTS:** Mock results.\n")
	b.WriteString("**DISCUSSION:** Mock discussion.\n")
	b.WriteString("**CONCLUSION:** Mock conclusion.\n")
	fmt.Fprintf(&b, "**KEYWORDS:** mock, %s\n", digest)
	return b.String(), nil
}
