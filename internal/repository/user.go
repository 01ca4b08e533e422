package repository

import (
	"context"

	"studybuddy/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) error

	// FindByID returns a user by its ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateProfile persists the learning-preference columns and the name.
	UpdateProfile(ctx context.Context, u *model.User) error
}
