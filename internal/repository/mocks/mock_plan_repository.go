package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, p *model.StudyPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, userID, id string) (*model.StudyPlan, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyPlan), args.Error(1)
}

func (m *MockPlanRepository) ListByUser(ctx context.Context, userID string) ([]model.StudyPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudyPlan), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
