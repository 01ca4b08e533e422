// Package service holds the use cases behind the HTTP handlers. Services depend on
// repository interfaces and the ai.Generator, return the sentinel errors below, and
// fall back to static content whenever the model is unavailable or misbehaves.
package service

import (
	"errors"
	"time"

	"studybuddy/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionEnded       = errors.New("session already ended")
	ErrInvalidPlan        = errors.New("either target_days or deadline is required")
	ErrInvalidDeadline    = errors.New("deadline must be RFC3339 or YYYY-MM-DD")
	ErrStorageDisabled    = errors.New("material storage is not configured")
	ErrQuestionRequired   = errors.New("question is required")
	ErrReaderNil          = errors.New("reader is nil")
)

// Clock returns the current time. Services store UTC timestamps.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// notFound maps repository.ErrNotFound onto the service sentinel and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
