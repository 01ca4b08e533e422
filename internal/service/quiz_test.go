package service

import (
	"context"
	"errors"
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

func newTestQuizService(repo *repoMocks.MockQuizRepository, gen ai.Generator) *quizService {
	svc := NewQuizService(repo, gen, nil).(*quizService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestQuizService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("offline uses the bank with defaults", func(t *testing.T) {
		qs, err := newTestQuizService(nil, ai.Offline{}).Generate(ctx, "", "", 0)
		require.NoError(t, err)
		require.Len(t, qs, 2)
		assert.Equal(t, "py_easy_1", qs[0].ID)
		assert.Equal(t, "14", qs[0].CorrectAnswer)
	})

	t.Run("bank is truncated to the requested size", func(t *testing.T) {
		qs, err := newTestQuizService(nil, ai.Offline{}).Generate(ctx, "python", "easy", 1)
		require.NoError(t, err)
		assert.Len(t, qs, 1)
	})

	t.Run("unknown topic yields an empty list", func(t *testing.T) {
		qs, err := newTestQuizService(nil, ai.Offline{}).Generate(ctx, "haskell", "hard", 3)
		require.NoError(t, err)
		assert.NotNil(t, qs)
		assert.Empty(t, qs)
	})

	t.Run("model questions get missing fields filled", func(t *testing.T) {
		gen := new(aiMocks.MockGenerator)
		gen.On("Available").Return(true)
		gen.On("GenerateText", ctx, mock.MatchedBy(func(p string) bool {
			return containsAll(p, "Generate 3 hard level quiz questions about go")
		})).Return(`[{"question":"Zero value of int?","options":["0","nil"],"correct_answer":"0","explanation":"ints start at 0"}]`, nil)

		qs, err := newTestQuizService(nil, gen).Generate(ctx, "go", "hard", 3)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.NotEmpty(t, qs[0].ID)
		assert.Equal(t, "go", qs[0].Topic)
		assert.Equal(t, "hard", qs[0].Difficulty)
		gen.AssertExpectations(t)
	})

	t.Run("unparseable model output falls back", func(t *testing.T) {
		gen := new(aiMocks.MockGenerator)
		gen.On("Available").Return(true)
		gen.On("GenerateText", ctx, mock.Anything).Return("I cannot do that.", nil)

		qs, err := newTestQuizService(nil, gen).Generate(ctx, "react", "easy", 5)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "react_easy_1", qs[0].ID)
	})
}

func TestGrade(t *testing.T) {
	questions := []model.QuizQuestion{
		{ID: "q1", CorrectAnswer: "A", Explanation: "because"},
		{ID: "q2", CorrectAnswer: "B"},
		{ID: "q3", CorrectAnswer: "C"},
		{ID: "q4", CorrectAnswer: "D"},
	}

	res := grade(questions, map[string]string{"q1": "A", "q2": "B", "q3": "x"})

	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 4, res.TotalQuestions)
	assert.InDelta(t, 50.0, res.Percentage, 1e-9)
	require.Len(t, res.Results, 4)
	assert.Equal(t, model.QuestionResult{QuestionID: "q1", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true, Explanation: "because"}, res.Results[0])
	assert.False(t, res.Results[2].IsCorrect)
	assert.Equal(t, "", res.Results[3].UserAnswer)

	empty := grade(nil, nil)
	assert.Equal(t, 0, empty.TotalQuestions)
	assert.Zero(t, empty.Percentage)
	assert.NotNil(t, empty.Results)
}

func TestQuizService_Submit(t *testing.T) {
	ctx := context.Background()
	questions := []model.QuizQuestion{{ID: "q1", CorrectAnswer: "A"}, {ID: "q2", CorrectAnswer: "B"}}
	answers := map[string]string{"q1": "A", "q2": "C"}

	t.Run("records progress for a signed-in user", func(t *testing.T) {
		repo := new(repoMocks.MockQuizRepository)
		repo.On("RecordProgress", ctx, mock.MatchedBy(func(ps []model.QuizProgress) bool {
			return len(ps) == 2 &&
				ps[0].QuestionID == "q1" && ps[0].Performance == model.PerformanceCorrect &&
				ps[1].Performance == model.PerformanceIncorrect &&
				ps[0].UserID == "u-1" && ps[0].IntervalDays == 1 &&
				ps[0].NextReview.Equal(fixedNow.Add(24*time.Hour))
		})).Return(nil)

		res, err := newTestQuizService(repo, ai.Offline{}).Submit(ctx, "u-1", questions, answers)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Score)
		repo.AssertExpectations(t)
	})

	t.Run("anonymous submissions are only graded", func(t *testing.T) {
		repo := new(repoMocks.MockQuizRepository)
		res, err := newTestQuizService(repo, ai.Offline{}).Submit(ctx, "", questions, answers)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, res.Percentage, 1e-9)
		repo.AssertNotCalled(t, "RecordProgress", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(repoMocks.MockQuizRepository)
		repo.On("RecordProgress", ctx, mock.Anything).Return(errors.New("db down"))
		_, err := newTestQuizService(repo, ai.Offline{}).Submit(ctx, "u-1", questions, answers)
		assert.EqualError(t, err, "record quiz progress: db down")
	})
}

func TestQuizService_Bank(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockQuizRepository)
	svc := newTestQuizService(repo, ai.Offline{})

	repo.On("CreateQuestions", ctx, mock.MatchedBy(func(qs []model.QuizQuestion) bool {
		return len(qs) == 1 && qs[0].ID != "client-id" && qs[0].UserID == "u-1" && qs[0].CreatedAt.Equal(fixedNow)
	})).Return(nil)

	saved, err := svc.SaveQuestions(ctx, "u-1", []model.QuizQuestion{{ID: "client-id", Question: "Q?", Topic: "go"}})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, []string{}, saved[0].Options)

	none, err := svc.SaveQuestions(ctx, "u-1", nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	repo.On("ListQuestions", ctx, "u-1", "go").Return([]model.QuizQuestion{{ID: "q1"}}, nil)
	list, err := svc.ListQuestions(ctx, "u-1", " go ")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	repo.On("DeleteQuestion", ctx, "u-1", "q1").Return(nil)
	repo.On("DeleteQuestion", ctx, "u-1", "q9").Return(repository.ErrNotFound)
	assert.NoError(t, svc.DeleteQuestion(ctx, "u-1", "q1"))
	assert.ErrorIs(t, svc.DeleteQuestion(ctx, "u-1", "q9"), ErrNotFound)

	repo.AssertNumberOfCalls(t, "CreateQuestions", 1)
}
