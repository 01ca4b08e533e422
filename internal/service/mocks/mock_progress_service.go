package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
)

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Stats(ctx context.Context, userID string) (*model.ProgressStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProgressStats), args.Error(1)
}
