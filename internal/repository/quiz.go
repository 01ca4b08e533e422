package repository

import (
	"context"

	"studybuddy/internal/model"
)

// QuizRepository defines data access for saved quiz questions and answer history.
type QuizRepository interface {
	// CreateQuestions stores all questions in a single transaction.
	CreateQuestions(ctx context.Context, qs []model.QuizQuestion) error

	// ListQuestions returns the user's saved questions, optionally filtered by topic.
	ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error)

	// DeleteQuestion removes a saved question owned by userID or returns ErrNotFound.
	DeleteQuestion(ctx context.Context, userID, id string) error

	// RecordProgress stores graded answers in a single transaction.
	RecordProgress(ctx context.Context, ps []model.QuizProgress) error
}
