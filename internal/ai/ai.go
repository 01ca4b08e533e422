// Package ai wraps the generative-language model used for answers, plans, quizzes and
// flashcards. Callers treat every error as a signal to fall back to static content.
package ai

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"studybuddy/internal/config"
)

// ErrUnavailable is returned by generators that have no model configured.
var ErrUnavailable = errors.New("ai model unavailable")

// Generator produces free text for a prompt.
type Generator interface {
	// Available reports whether a model is configured at all.
	Available() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Offline is the Generator used when no API key is configured.
type Offline struct{}

func (Offline) Available() bool { return false }

func (Offline) GenerateText(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// New returns a Gemini client when an API key is set, otherwise Offline.
func New(cfg config.GeminiConfig, log *zap.Logger) Generator {
	if cfg.APIKey == "" {
		if log != nil {
			log.Warn("ai_offline", zap.String("msg", "GEMINI_API_KEY not set, serving fallback content"))
		}
		return Offline{}
	}
	return NewGemini(cfg, log)
}
