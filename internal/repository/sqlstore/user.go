package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const userColumns = `id, email, password_hash, name, learning_style, preferred_topics, difficulty_level, study_goals, created_at`

// UserStore is the SQL implementation of repository.UserRepository.
type UserStore struct {
	db *sqlx.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts a new user row.
func (r *UserStore) Create(ctx context.Context, u *model.User) error {
	q := r.db.Rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, q,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.LearningStyle,
		jsonColumn{u.PreferredTopics},
		u.DifficultyLevel,
		jsonColumn{u.StudyGoals},
		u.CreatedAt,
	)
	return mapError(err)
}

// FindByID fetches a single user by ID.
func (r *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by email.
func (r *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// UpdateProfile writes the name and learning preferences of an existing user.
func (r *UserStore) UpdateProfile(ctx context.Context, u *model.User) error {
	q := r.db.Rebind(`
		UPDATE users
		SET name = ?, learning_style = ?, preferred_topics = ?, difficulty_level = ?, study_goals = ?
		WHERE id = ?
	`)
	res, err := r.db.ExecContext(ctx, q,
		u.Name,
		u.LearningStyle,
		jsonColumn{u.PreferredTopics},
		u.DifficultyLevel,
		jsonColumn{u.StudyGoals},
		u.ID,
	)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanUser(row rowScanner) (*model.User, error) {
	u := model.User{PreferredTopics: []string{}, StudyGoals: []string{}}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.LearningStyle,
		jsonColumn{&u.PreferredTopics},
		&u.DifficultyLevel,
		jsonColumn{&u.StudyGoals},
		&u.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
