package repository

import (
	"context"

	"studybuddy/internal/model"
)

// SessionRepository defines data access for study sessions.
// Lookups and updates are always scoped to the owning user.
type SessionRepository interface {
	Create(ctx context.Context, s *model.StudySession) error

	// FindByID returns the session when it exists and belongs to userID, otherwise ErrNotFound.
	FindByID(ctx context.Context, userID, id string) (*model.StudySession, error)

	// ListByUser returns the user's sessions, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.StudySession, error)

	// End stores end_time, duration and confidence on a session that has not ended yet.
	// It returns ErrNotFound when no open session matched.
	End(ctx context.Context, s *model.StudySession) error

	// IncrementQuestions adds one to questions_asked.
	IncrementQuestions(ctx context.Context, userID, id string) error

	// UpdateMaterials replaces materials_covered with materials if it still holds old.
	// Otherwise nothing is written and ErrConflict is returned.
	UpdateMaterials(ctx context.Context, userID, id string, old, materials []string) error
}
