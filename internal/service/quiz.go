package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studybuddy/internal/ai"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const (
	defaultQuizTopic      = "python"
	defaultQuizDifficulty = "easy"
	defaultQuizSize       = 5
)

// QuizService generates, grades and stores multiple-choice questions.
type QuizService interface {
	// Generate returns n questions from the model, or from the static bank when it is unavailable.
	Generate(ctx context.Context, topic, difficulty string, n int) ([]model.QuizQuestion, error)

	// Submit grades answers keyed by question ID. A non-empty userID records one progress row per question.
	Submit(ctx context.Context, userID string, questions []model.QuizQuestion, answers map[string]string) (*model.QuizResult, error)

	// SaveQuestions stores questions in the user's bank with fresh IDs.
	SaveQuestions(ctx context.Context, userID string, questions []model.QuizQuestion) ([]model.QuizQuestion, error)
	ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, userID, id string) error
}

type quizService struct {
	repo repository.QuizRepository
	gen  ai.Generator
	log  *zap.Logger
	now  Clock
}

// NewQuizService constructs a QuizService.
func NewQuizService(repo repository.QuizRepository, gen ai.Generator, log *zap.Logger) QuizService {
	return &quizService{
		repo: repo,
		gen:  gen,
		log:  logger.Component(log, "quiz_service"),
		now:  systemClock,
	}
}

func (s *quizService) Generate(ctx context.Context, topic, difficulty string, n int) ([]model.QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultQuizTopic
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		difficulty = defaultQuizDifficulty
	}
	if n <= 0 {
		n = defaultQuizSize
	}

	prompt := fmt.Sprintf(`Generate %d %s level quiz questions about %s.
Return ONLY a valid JSON array of objects. Each object must have:
- id: a unique string
- question: string
- options: array of 4 strings
- correct_answer: string (must be one of the options)
- explanation: string
- topic: "%s"
- difficulty: "%s"`, n, difficulty, topic, topic, difficulty)

	var qs []model.QuizQuestion
	ok := generateJSON(ctx, s.gen, s.log, "quiz", prompt, &qs) && len(qs) > 0
	observeAI("quiz", ok)
	if !ok {
		return fallbackQuestions(topic, difficulty, n), nil
	}

	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = uuid.NewString()
		}
		if qs[i].Topic == "" {
			qs[i].Topic = topic
		}
		if qs[i].Difficulty == "" {
			qs[i].Difficulty = difficulty
		}
		if qs[i].Options == nil {
			qs[i].Options = []string{}
		}
	}
	return qs, nil
}

func (s *quizService) Submit(ctx context.Context, userID string, questions []model.QuizQuestion, answers map[string]string) (*model.QuizResult, error) {
	res := grade(questions, answers)
	if userID == "" || len(questions) == 0 {
		return res, nil
	}

	now := s.now()
	progress := make([]model.QuizProgress, 0, len(res.Results))
	for _, r := range res.Results {
		perf := model.PerformanceIncorrect
		if r.IsCorrect {
			perf = model.PerformanceCorrect
		}
		progress = append(progress, model.QuizProgress{
			ID:           uuid.NewString(),
			UserID:       userID,
			QuestionID:   r.QuestionID,
			Performance:  perf,
			NextReview:   now.Add(24 * time.Hour),
			IntervalDays: 1,
			CreatedAt:    now,
		})
	}
	if err := s.repo.RecordProgress(ctx, progress); err != nil {
		return nil, fmt.Errorf("record quiz progress: %w", err)
	}
	return res, nil
}

// grade scores answers by exact match against the correct answer.
func grade(questions []model.QuizQuestion, answers map[string]string) *model.QuizResult {
	res := &model.QuizResult{
		TotalQuestions: len(questions),
		Results:        make([]model.QuestionResult, 0, len(questions)),
	}
	for _, q := range questions {
		answer, answered := answers[q.ID]
		correct := answered && answer == q.CorrectAnswer
		if correct {
			res.Score++
		}
		res.Results = append(res.Results, model.QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
	}
	if len(questions) > 0 {
		res.Percentage = float64(res.Score) / float64(len(questions)) * 100
	}
	return res
}

func (s *quizService) SaveQuestions(ctx context.Context, userID string, questions []model.QuizQuestion) ([]model.QuizQuestion, error) {
	now := s.now()
	out := make([]model.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		q.ID = uuid.NewString()
		q.UserID = userID
		q.CreatedAt = now
		if q.Options == nil {
			q.Options = []string{}
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return out, nil
	}
	if err := s.repo.CreateQuestions(ctx, out); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	return out, nil
}

func (s *quizService) ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error) {
	return s.repo.ListQuestions(ctx, userID, strings.TrimSpace(topic))
}

func (s *quizService) DeleteQuestion(ctx context.Context, userID, id string) error {
	return notFound(s.repo.DeleteQuestion(ctx, userID, id))
}
