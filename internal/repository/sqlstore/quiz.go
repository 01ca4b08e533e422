package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const (
	questionColumns = `id, user_id, question, options, correct_answer, explanation, topic, difficulty, created_at`
	progressColumns = `id, user_id, question_id, performance, next_review, review_count, interval_days, created_at`
)

// QuizStore is the SQL implementation of repository.QuizRepository.
type QuizStore struct {
	db *sqlx.DB
}

// NewQuizStore creates a new QuizStore.
func NewQuizStore(db *sqlx.DB) *QuizStore {
	return &QuizStore{db: db}
}

var _ repository.QuizRepository = (*QuizStore)(nil)

// CreateQuestions inserts all questions or none.
func (r *QuizStore) CreateQuestions(ctx context.Context, qs []model.QuizQuestion) error {
	q := r.db.Rebind(`INSERT INTO quiz_questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, qq := range qs {
			if _, err := tx.ExecContext(ctx, q,
				qq.ID,
				qq.UserID,
				qq.Question,
				jsonColumn{qq.Options},
				qq.CorrectAnswer,
				qq.Explanation,
				qq.Topic,
				qq.Difficulty,
				qq.CreatedAt,
			); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

// ListQuestions returns saved questions of a user, newest first. An empty topic matches all.
func (r *QuizStore) ListQuestions(ctx context.Context, userID, topic string) ([]model.QuizQuestion, error) {
	query := `SELECT ` + questionColumns + ` FROM quiz_questions WHERE user_id = ?`
	args := []any{userID}
	if topic != "" {
		query += ` AND topic = ?`
		args = append(args, topic)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QuizQuestion, 0)
	for rows.Next() {
		qq := model.QuizQuestion{Options: []string{}}
		if err := rows.Scan(
			&qq.ID,
			&qq.UserID,
			&qq.Question,
			jsonColumn{&qq.Options},
			&qq.CorrectAnswer,
			&qq.Explanation,
			&qq.Topic,
			&qq.Difficulty,
			&qq.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteQuestion removes a saved question owned by userID.
func (r *QuizStore) DeleteQuestion(ctx context.Context, userID, id string) error {
	q := r.db.Rebind(`DELETE FROM quiz_questions WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// RecordProgress inserts one row per graded answer, all or none.
func (r *QuizStore) RecordProgress(ctx context.Context, ps []model.QuizProgress) error {
	q := r.db.Rebind(`INSERT INTO quiz_progress (` + progressColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, p := range ps {
			if _, err := tx.ExecContext(ctx, q,
				p.ID,
				p.UserID,
				p.QuestionID,
				p.Performance,
				p.NextReview,
				p.ReviewCount,
				p.IntervalDays,
				p.CreatedAt,
			); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

func (r *QuizStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
