package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/model"
	"studybuddy/internal/service"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID, topic string) (*model.StudySession, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudySession), args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context, userID string) ([]model.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StudySession), args.Error(1)
}

func (m *MockSessionService) End(ctx context.Context, userID, sessionID string, confidence *int) (*model.StudySession, error) {
	args := m.Called(ctx, userID, sessionID, confidence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudySession), args.Error(1)
}

func (m *MockSessionService) CountQuestion(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) AttachMaterial(ctx context.Context, userID, sessionID string, in service.MaterialUpload) (*model.StudySession, error) {
	args := m.Called(ctx, userID, sessionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudySession), args.Error(1)
}

func (m *MockSessionService) MaterialURL(ctx context.Context, userID, sessionID, key string) (string, time.Duration, error) {
	args := m.Called(ctx, userID, sessionID, key)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}
