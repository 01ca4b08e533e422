package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Ask(ctx context.Context, userID, sessionID, question string) (string, error) {
	args := m.Called(ctx, userID, sessionID, question)
	return args.String(0), args.Error(1)
}

func (m *MockAssistantService) Motivation() string {
	args := m.Called()
	return args.String(0)
}
