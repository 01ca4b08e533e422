package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/ai"
	aiMocks "studybuddy/internal/ai/mocks"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
	repoMocks "studybuddy/internal/repository/mocks"
)

func newTestPlanService(repo *repoMocks.MockPlanRepository, gen ai.Generator) *planService {
	svc := NewPlanService(repo, gen, nil).(*planService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPlanService_Create_Fallback(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockPlanRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*model.StudyPlan")).Return(nil)

	plan, err := newTestPlanService(repo, ai.Offline{}).Create(ctx, "u-1", PlanInput{Topic: "python", TargetDays: ptr(28)})
	require.NoError(t, err)

	assert.Equal(t, "u-1", plan.UserID)
	assert.Equal(t, 10, plan.TotalHours)
	assert.InDelta(t, 0.4, plan.DailyHours, 1e-9)
	require.Len(t, plan.WeeklyGoals, 4)
	assert.Equal(t, "Python Basics", plan.WeeklyGoals[0].Theme)
	assert.Equal(t, fallbackResources("python"), plan.Resources)
	assert.Equal(t, []string{"Week 2 Progress Quiz", "Week 4 Progress Quiz", "Week 4 Project Review"}, plan.AssessmentSchedule)
	assert.True(t, plan.Deadline.Equal(fixedNow.AddDate(0, 0, 28)))
	repo.AssertExpectations(t)
}

func TestPlanService_Create_ModelContent(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockPlanRepository)
	gen := new(aiMocks.MockGenerator)

	gen.On("Available").Return(true)
	gen.On("GenerateText", ctx, mock.MatchedBy(func(p string) bool { return containsAll(p, "2-week", "Rust") })).
		Return("```json\n[{\"week\":1,\"theme\":\"Ownership\",\"goals\":[\"Borrowing\"]},{\"week\":2,\"theme\":\"Traits\",\"goals\":[]},{\"week\":3,\"theme\":\"Extra\",\"goals\":[]}]\n```", nil)
	gen.On("GenerateText", ctx, mock.MatchedBy(func(p string) bool { return containsAll(p, "resources", "Rust") })).
		Return(`Here you go: ["The Rust Book", "Rustlings"]`, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	plan, err := newTestPlanService(repo, gen).Create(ctx, "u-1", PlanInput{Topic: "Rust", TargetDays: ptr(14), DailyHours: ptr(1.0)})
	require.NoError(t, err)

	require.Len(t, plan.WeeklyGoals, 2)
	assert.Equal(t, "Ownership", plan.WeeklyGoals[0].Theme)
	assert.Equal(t, []string{"The Rust Book", "Rustlings"}, plan.Resources)
	assert.Equal(t, 14, plan.TotalHours)
	gen.AssertExpectations(t)
}

func TestPlanService_Create_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		repo := new(repoMocks.MockPlanRepository)
		_, err := newTestPlanService(repo, ai.Offline{}).Create(ctx, "u-1", PlanInput{Topic: "x"})
		assert.ErrorIs(t, err, ErrInvalidPlan)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("default topic and repository failure", func(t *testing.T) {
		repo := new(repoMocks.MockPlanRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(p *model.StudyPlan) bool {
			return p.Topic == "General Studies"
		})).Return(errors.New("db down"))

		_, err := newTestPlanService(repo, ai.Offline{}).Create(ctx, "u-1", PlanInput{TargetDays: ptr(7)})
		assert.EqualError(t, err, "create plan: db down")
		repo.AssertExpectations(t)
	})
}

func TestPlanService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockPlanRepository)
	svc := newTestPlanService(repo, ai.Offline{})

	repo.On("FindByID", ctx, "u-1", "p-1").Return(&model.StudyPlan{ID: "p-1"}, nil)
	repo.On("FindByID", ctx, "u-2", "p-1").Return(nil, repository.ErrNotFound)
	repo.On("Delete", ctx, "u-1", "p-1").Return(nil)
	repo.On("Delete", ctx, "u-2", "p-1").Return(repository.ErrNotFound)
	repo.On("ListByUser", ctx, "u-1").Return([]model.StudyPlan{{ID: "p-1"}}, nil)

	p, err := svc.Get(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)

	_, err = svc.Get(ctx, "u-2", "p-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, "u-1", "p-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "u-2", "p-1"), ErrNotFound)

	list, err := svc.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
