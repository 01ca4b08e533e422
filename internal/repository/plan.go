package repository

import (
	"context"

	"studybuddy/internal/model"
)

// PlanRepository defines data access for study plans.
type PlanRepository interface {
	Create(ctx context.Context, p *model.StudyPlan) error
	FindByID(ctx context.Context, userID, id string) (*model.StudyPlan, error)

	// ListByUser returns the user's plans, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.StudyPlan, error)

	// Delete removes the plan owned by userID. It returns ErrNotFound when nothing was removed.
	Delete(ctx context.Context, userID, id string) error
}
