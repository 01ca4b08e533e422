package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockFlashcardService struct {
	mock.Mock
}

func (m *MockFlashcardService) Generate(ctx context.Context, topic string, count int) ([]model.Flashcard, error) {
	args := m.Called(ctx, topic, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Flashcard), args.Error(1)
}
