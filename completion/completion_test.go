package completion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"story-generator/config"
	"story-generator/core"
)

func TestNewSelectsProvider(t *testing.T) {
	c, err := New(config.Completion{Provider: "mock"})
	if err != nil {
		t.Fatalf("New(mock): %v", err)
	}
	if _, ok := c.(Mock); !ok {
		t.Errorf("got %T, want Mock", c)
	}

	c, err = New(config.Completion{Provider: "openai", APIKey: "k"})
	if err != nil {
		t.Fatalf("New(openai): %v", err)
	}
	if _, ok := c.(*OpenAI); !ok {
		t.Errorf("got %T, want *OpenAI", c)
	}

	if _, err := New(config.Completion{Provider: "g4f"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestMockProducesTitleLine(t *testing.T) {
	text, err := Mock{}.Complete(context.Background(), core.CompletionRequest{
		Messages: []core.Message{{Role: "user", Content: "Fantasy: a dragon\n\nPlease provide a title."}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	title, body, ok := strings.Cut(text, "\n")
	if !ok {
		t.Fatalf("no line break in %q", text)
	}
	if title != "A Story About Fantasy: a dragon" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(body, "a dragon") {
		t.Errorf("body = %q", body)
	}
}

func TestNewWithoutAPIKeyDefersFailure(t *testing.T) {
	for _, provider := range []string{"openai", ""} {
		c, err := New(config.Completion{Provider: provider, Model: "gpt-4"})
		if err != nil {
			t.Fatalf("New(%q): %v", provider, err)
		}
		_, err = c.Complete(context.Background(), core.CompletionRequest{Model: "gpt-4"})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("provider %q: Complete err = %v, want ErrMissingAPIKey", provider, err)
		}
	}
}
