package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
	"studybuddy/internal/service"
)

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) Create(ctx context.Context, userID string, in service.PlanInput) (*model.StudyPlan, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyPlan), args.Error(1)
}

func (m *MockPlanService) List(ctx context.Context, userID string) ([]model.StudyPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudyPlan), args.Error(1)
}

func (m *MockPlanService) Get(ctx context.Context, userID, planID string) (*model.StudyPlan, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyPlan), args.Error(1)
}

func (m *MockPlanService) Delete(ctx context.Context, userID, planID string) error {
	args := m.Called(ctx, userID, planID)
	return args.Error(0)
}
