package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/model"
	repoMocks "studybuddy/internal/repository/mocks"
)

func TestAggregate(t *testing.T) {
	stats := aggregate([]model.StudySession{
		{Topic: "go", Duration: 30, QuestionsAsked: 2, ConfidenceLevel: 7},
		{Topic: "go", Duration: 15, QuestionsAsked: 1, ConfidenceLevel: 8},
		{Topic: "sql", Duration: 0, QuestionsAsked: 0, ConfidenceLevel: 0},
	})

	assert.Equal(t, 45, stats.TotalStudyTime)
	assert.Equal(t, 3, stats.SessionsCompleted)
	assert.Equal(t, 3, stats.QuestionsAsked)
	assert.InDelta(t, 5.0, stats.AverageConfidence, 1e-9)
	assert.Equal(t, map[string]int{"go": 45, "sql": 0}, stats.TopicDistribution)

	empty := aggregate(nil)
	assert.Zero(t, empty.AverageConfidence)
	assert.NotNil(t, empty.TopicDistribution)
}

func TestProgressService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSessionRepository)
	repo.On("ListByUser", ctx, "u-1").Return([]model.StudySession{{Topic: "go", Duration: 10, ConfidenceLevel: 6}}, nil)
	repo.On("ListByUser", ctx, "u-2").Return(nil, errors.New("db down"))
	svc := NewProgressService(repo)

	stats, err := svc.Stats(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalStudyTime)
	assert.InDelta(t, 6.0, stats.AverageConfidence, 1e-9)

	_, err = svc.Stats(ctx, "u-2")
	assert.Error(t, err)
}
