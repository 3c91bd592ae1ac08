package completion

import (
	"context"
	"strings"

	"story-generator/core"
)

// Mock answers locally without calling a provider. Useful for running the
// API and its client without credentials.
type Mock struct{}

func (Mock) Complete(_ context.Context, req core.CompletionRequest) (string, error) {
	var prompt string
	for _, m := range req.Messages {
		if m.Role == "user" {
			prompt = m.Content
		}
	}
	subject, _, _ := strings.Cut(prompt, "\n")

	var sb strings.Builder
	sb.WriteString("A Story About ")
	sb.WriteString(strings.TrimSpace(subject))
	sb.WriteString("\n")
	sb.WriteString("Once upon a time, there was ")
	sb.WriteString(strings.TrimSpace(subject))
	sb.WriteString(". The end.")
	return sb.String(), nil
}
