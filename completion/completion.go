package completion

import (
	"context"
	"errors"
	"fmt"

	"story-generator/config"
	"story-generator/core"

	"github.com/sirupsen/logrus"
)

// New returns the completer named by cfg.Provider. A missing OpenAI key
// does not stop startup: generation requests fail with ErrMissingAPIKey.
func New(cfg config.Completion) (core.Completer, error) {
	logrus.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"model":    cfg.Model,
	}).Info("Use completion provider")

	switch cfg.Provider {
	case "openai", "":
		c, err := NewOpenAI(cfg.APIKey, cfg.BaseURL)
		if errors.Is(err, ErrMissingAPIKey) {
			logrus.WithField("error", err).Error("Completion provider unavailable")
			return unavailable{err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mock":
		return Mock{}, nil
	default:
		return nil, fmt.Errorf("completion provider %s not supported", cfg.Provider)
	}
}

type unavailable struct {
	err error
}

func (u unavailable) Complete(context.Context, core.CompletionRequest) (string, error) {
	return "", u.err
}
