package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *model.StudySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, userID, id string) (*model.StudySession, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudySession), args.Error(1)
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]model.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudySession), args.Error(1)
}

func (m *MockSessionRepository) End(ctx context.Context, s *model.StudySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) IncrementQuestions(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateMaterials(ctx context.Context, userID, id string, old, materials []string) error {
	args := m.Called(ctx, userID, id, old, materials)
	return args.Error(0)
}
