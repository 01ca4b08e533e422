package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Generate(ctx context.Context, topic, difficulty string, n int) ([]model.QuizQuestion, error) {
	args := m.Called(ctx, topic, difficulty, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizQuestion), args.Error(1)
}

func (m *MockQuizService) Submit(ctx context.Context, userID string, questions []model.QuizQuestion, answers map[string]string) (*model.QuizResult, error) {
	args := m.Called(ctx, userID, questions, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizResult), args.Error(1)
}

func (m *MockQuizService) SaveQuestions(ctx context.Context, userID string, questions []model.QuizQuestion) ([]model.QuizQuestion, error) {
	args := m.Called(ctx, userID, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizQuestion), args.Error(1)
}

func (m *MockQuizService) ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizQuestion), args.Error(1)
}

func (m *MockQuizService) DeleteQuestion(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
