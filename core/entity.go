package core

import (
	"context"
)

type (
	Story struct {
		Title  string `json:"title" bson:"title"`
		Prompt string `json:"prompt" bson:"prompt"`
		Story  string `json:"story" bson:"story"`
	}

	// StoryStore is a single collection of stories. Store-internal ids are
	// returned by Create but never surface in FindAll results.
	StoryStore interface {
		Create(ctx context.Context, story *Story) (string, error)
		FindAll(ctx context.Context) ([]Story, error)
		Ping(ctx context.Context) error
	}

	Message struct {
		Role    string
		Content string
	}

	CompletionRequest struct {
		Model       string
		Messages    []Message
		MaxTokens   int
		Temperature float64
	}

	// Completer returns the free-form text of a single completion.
	Completer interface {
		Complete(ctx context.Context, req CompletionRequest) (string, error)
	}
)
