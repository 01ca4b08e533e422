package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const sessionColumns = `id, user_id, topic, duration, materials_covered, questions_asked, confidence_level, start_time, end_time`

// SessionStore is the SQL implementation of repository.SessionRepository.
type SessionStore struct {
	db *sqlx.DB
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *sqlx.DB) *SessionStore {
	return &SessionStore{db: db}
}

var _ repository.SessionRepository = (*SessionStore)(nil)

// Create inserts a new session row.
func (r *SessionStore) Create(ctx context.Context, s *model.StudySession) error {
	q := r.db.Rebind(`
		INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, q,
		s.ID,
		s.UserID,
		s.Topic,
		s.Duration,
		jsonColumn{s.MaterialsCovered},
		s.QuestionsAsked,
		s.ConfidenceLevel,
		s.StartTime,
		nullTime(s.EndTime),
	)
	return mapError(err)
}

// FindByID fetches a session owned by userID.
func (r *SessionStore) FindByID(ctx context.Context, userID, id string) (*model.StudySession, error) {
	q := r.db.Rebind(`SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ? AND user_id = ?`)
	return scanSession(r.db.QueryRowContext(ctx, q, id, userID))
}

// ListByUser returns all sessions of a user ordered by start time, newest first.
func (r *SessionStore) ListByUser(ctx context.Context, userID string) ([]model.StudySession, error) {
	q := r.db.Rebind(`
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = ?
		ORDER BY start_time DESC, id DESC
	`)
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StudySession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// End closes an open session. Sessions that are already ended are left unchanged.
func (r *SessionStore) End(ctx context.Context, s *model.StudySession) error {
	q := r.db.Rebind(`
		UPDATE study_sessions
		SET end_time = ?, duration = ?, confidence_level = ?
		WHERE id = ? AND user_id = ? AND end_time IS NULL
	`)
	res, err := r.db.ExecContext(ctx, q, nullTime(s.EndTime), s.Duration, s.ConfidenceLevel, s.ID, s.UserID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// IncrementQuestions bumps the question counter of an owned session.
func (r *SessionStore) IncrementQuestions(ctx context.Context, userID, id string) error {
	q := r.db.Rebind(`UPDATE study_sessions SET questions_asked = questions_asked + 1 WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// UpdateMaterials swaps the list of material keys of an owned session, provided the
// stored list still encodes to old. Both lists go through jsonColumn, so equal slices
// compare equal as text.
func (r *SessionStore) UpdateMaterials(ctx context.Context, userID, id string, old, materials []string) error {
	q := r.db.Rebind(`UPDATE study_sessions SET materials_covered = ? WHERE id = ? AND user_id = ? AND materials_covered = ?`)
	res, err := r.db.ExecContext(ctx, q, jsonColumn{materials}, id, userID, jsonColumn{old})
	if err != nil {
		return err
	}
	err = expectAffected(res)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.ErrConflict
	}
	return err
}

func scanSession(row rowScanner) (*model.StudySession, error) {
	s := model.StudySession{MaterialsCovered: []string{}}
	var end sql.NullTime
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Topic,
		&s.Duration,
		jsonColumn{&s.MaterialsCovered},
		&s.QuestionsAsked,
		&s.ConfidenceLevel,
		&s.StartTime,
		&end,
	); err != nil {
		return nil, mapError(err)
	}
	if end.Valid {
		t := end.Time
		s.EndTime = &t
	}
	return &s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
