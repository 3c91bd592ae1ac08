package generation

import (
	"context"
	"errors"
	"strings"

	"story-generator/core"

	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxLength          = 200
	DefaultNumReturnSequences = 1
	DefaultTemperature        = 0.7
	DefaultMode               = "general"

	instruction = "Please provide a story title followed by the story itself. The title should be on a separate line."
)

var (
	ErrEmptyPrompt       = errors.New("empty prompt")
	ErrMissingTitleBreak = errors.New("completion has no line break between title and story")
)

var modeLabels = map[string]string{
	"fantasy": "Fantasy: ",
	"sci-fi":  "Sci-Fi: ",
	"mystery": "Mystery: ",
}

type (
	// Options are the caller-tunable generation knobs. NumReturnSequences is
	// accepted for compatibility only; a single completion is always requested.
	Options struct {
		Prompt             string  `json:"prompt"`
		MaxLength          int     `json:"max_length"`
		NumReturnSequences int     `json:"num_return_sequences"`
		Temperature        float64 `json:"temperature"`
		Mode               string  `json:"mode"`
	}

	Result struct {
		Title string `json:"title"`
		Story string `json:"story"`
	}

	Generator struct {
		completer core.Completer
		model     string
	}
)

func DefaultOptions() Options {
	return Options{
		MaxLength:          DefaultMaxLength,
		NumReturnSequences: DefaultNumReturnSequences,
		Temperature:        DefaultTemperature,
		Mode:               DefaultMode,
	}
}

func NewGenerator(completer core.Completer, model string) *Generator {
	return &Generator{completer: completer, model: model}
}

// ApplyMode prefixes prompt with the genre label for known modes and
// returns it unchanged otherwise.
func ApplyMode(mode, prompt string) string {
	if label, ok := modeLabels[mode]; ok {
		return label + prompt
	}
	return prompt
}

func BuildPrompt(prompt string) string {
	return prompt + "\n\n" + instruction
}

// SplitTitle cuts raw at its first newline into a trimmed title and body.
func SplitTitle(raw string) (string, string, error) {
	title, story, ok := strings.Cut(raw, "\n")
	if !ok {
		return "", "", ErrMissingTitleBreak
	}
	return strings.TrimSpace(title), strings.TrimSpace(story), nil
}

func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	prompt := strings.TrimSpace(opts.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	log := logrus.WithFields(logrus.Fields{
		"model": g.model,
		"mode":  opts.Mode,
	})
	log.Info("Requesting story completion")

	raw, err := g.completer.Complete(ctx, core.CompletionRequest{
		Model: g.model,
		Messages: []core.Message{
			{Role: "user", Content: BuildPrompt(ApplyMode(opts.Mode, prompt))},
		},
		MaxTokens:   opts.MaxLength,
		Temperature: opts.Temperature,
	})
	if err != nil {
		log.WithField("error", err).Error("Completion failed")
		return nil, err
	}

	title, story, err := SplitTitle(raw)
	if err != nil {
		log.WithField("error", err).Warn("Completion could not be split into title and story")
		return nil, err
	}

	return &Result{Title: title, Story: story}, nil
}
