package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuestions(ctx context.Context, qs []model.QuizQuestion) error {
	args := m.Called(ctx, qs)
	return args.Error(0)
}

func (m *MockQuizRepository) ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) DeleteQuestion(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockQuizRepository) RecordProgress(ctx context.Context, ps []model.QuizProgress) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}
