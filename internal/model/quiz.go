package model

import "time"

// QuizQuestion is a multiple-choice question. UserID is empty for questions that
// were only generated and never saved to a bank.
type QuizQuestion struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	Topic         string    `json:"topic"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}

// Performance values recorded for a graded answer.
const (
	PerformanceCorrect   = "correct"
	PerformanceIncorrect = "incorrect"
)

// QuizProgress records how a user answered a question. The review columns are
// stored with their defaults; nothing schedules reviews from them.
type QuizProgress struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	QuestionID   string    `json:"question_id"`
	Performance  string    `json:"performance"`
	NextReview   time.Time `json:"next_review"`
	ReviewCount  int       `json:"review_count"`
	IntervalDays int       `json:"interval_days"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuestionResult is the grading of one submitted answer.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizResult summarizes a graded submission.
type QuizResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     float64          `json:"percentage"`
	Results        []QuestionResult `json:"results"`
}
