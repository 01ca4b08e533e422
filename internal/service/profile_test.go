package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
	repoMocks "studybuddy/internal/repository/mocks"
)

func ptr[T any](v T) *T { return &v }

func TestProfileService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockUserRepository)
	svc := NewProfileService(repo)

	repo.On("FindByID", ctx, "u-1").Return(&model.User{
		ID: "u-1", Name: "Ada", LearningStyle: "visual", DifficultyLevel: "beginner",
	}, nil)
	repo.On("FindByID", ctx, "u-2").Return(nil, repository.ErrNotFound)

	p, err := svc.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "visual", p.LearningStyle)
	assert.Equal(t, []string{}, p.PreferredTopics)

	_, err = svc.Get(ctx, "u-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges present fields and sanitizes text", func(t *testing.T) {
		repo := new(repoMocks.MockUserRepository)
		svc := NewProfileService(repo)

		repo.On("FindByID", ctx, "u-1").Return(&model.User{
			ID: "u-1", Name: "Ada", LearningStyle: "visual", DifficultyLevel: "beginner",
			PreferredTopics: []string{"go"}, StudyGoals: []string{"ship it"},
		}, nil)
		repo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "Ada" && u.LearningStyle == "kinesthetic"
		})).Return(nil)

		p, err := svc.Update(ctx, "u-1", ProfilePatch{
			LearningStyle:   ptr("kinesthetic"),
			PreferredTopics: ptr([]string{"<b>python</b>", "<script>alert(1)</script>", "sql"}),
		})
		require.NoError(t, err)
		assert.Equal(t, "kinesthetic", p.LearningStyle)
		assert.Equal(t, "beginner", p.DifficultyLevel)
		assert.Equal(t, []string{"python", "sql"}, p.PreferredTopics)
		assert.Equal(t, []string{"ship it"}, p.StudyGoals)
		repo.AssertExpectations(t)
	})

	t.Run("punctuation survives sanitizing", func(t *testing.T) {
		repo := new(repoMocks.MockUserRepository)
		svc := NewProfileService(repo)

		repo.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Name: "Ada"}, nil)
		repo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Name == "O'Brien"
		})).Return(nil)

		p, err := svc.Update(ctx, "u-1", ProfilePatch{
			Name:       ptr("O'Brien"),
			StudyGoals: ptr([]string{"Data Structures & Algorithms", "x < y", `say "hi"`}),
		})
		require.NoError(t, err)
		assert.Equal(t, "O'Brien", p.Name)
		assert.Equal(t, []string{"Data Structures & Algorithms", "x < y", `say "hi"`}, p.StudyGoals)
		repo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(repoMocks.MockUserRepository)
		svc := NewProfileService(repo)
		repo.On("FindByID", ctx, "u-9").Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, "u-9", ProfilePatch{Name: ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})
}
