package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"studybuddy/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The DDL sticks to types understood by both SQLite and PostgreSQL.
var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id               TEXT      PRIMARY KEY,
  email            TEXT      NOT NULL UNIQUE,
  password_hash    TEXT      NOT NULL,
  name             TEXT      NOT NULL,
  learning_style   TEXT      NOT NULL DEFAULT 'visual',
  preferred_topics TEXT      NOT NULL DEFAULT '[]',
  difficulty_level TEXT      NOT NULL DEFAULT 'beginner',
  study_goals      TEXT      NOT NULL DEFAULT '[]',
  created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "create_table_study_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS study_sessions (
  id                TEXT      PRIMARY KEY,
  user_id           TEXT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  topic             TEXT      NOT NULL,
  duration          INTEGER   NOT NULL DEFAULT 0 CHECK (duration >= 0),
  materials_covered TEXT      NOT NULL DEFAULT '[]',
  questions_asked   INTEGER   NOT NULL DEFAULT 0,
  confidence_level  INTEGER   NOT NULL DEFAULT 0,
  start_time        TIMESTAMP NOT NULL,
  end_time          TIMESTAMP NULL
)`,
	},
	{
		Name: "create_index_study_sessions_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_study_sessions_user_id ON study_sessions (user_id)`,
	},
	{
		Name: "create_table_study_plans",
		SQL: `CREATE TABLE IF NOT EXISTS study_plans (
  id                  TEXT             PRIMARY KEY,
  user_id             TEXT             NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  topic               TEXT             NOT NULL,
  total_hours         INTEGER          NOT NULL,
  daily_hours         DOUBLE PRECISION NOT NULL,
  weekly_goals        TEXT             NOT NULL DEFAULT '[]',
  resources           TEXT             NOT NULL DEFAULT '[]',
  assessment_schedule TEXT             NOT NULL DEFAULT '[]',
  deadline            TIMESTAMP        NOT NULL,
  created_at          TIMESTAMP        NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "create_index_study_plans_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_study_plans_user_id ON study_plans (user_id)`,
	},
	{
		Name: "create_table_quiz_questions",
		SQL: `CREATE TABLE IF NOT EXISTS quiz_questions (
  id             TEXT      PRIMARY KEY,
  user_id        TEXT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  question       TEXT      NOT NULL,
  options        TEXT      NOT NULL DEFAULT '[]',
  correct_answer TEXT      NOT NULL,
  explanation    TEXT      NOT NULL DEFAULT '',
  topic          TEXT      NOT NULL,
  difficulty     TEXT      NOT NULL,
  created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "create_index_quiz_questions_user_topic",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quiz_questions_user_topic ON quiz_questions (user_id, topic)`,
	},
	{
		Name: "create_table_quiz_progress",
		SQL: `CREATE TABLE IF NOT EXISTS quiz_progress (
  id            TEXT      PRIMARY KEY,
  user_id       TEXT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  question_id   TEXT      NOT NULL,
  performance   TEXT      NOT NULL,
  next_review   TIMESTAMP NOT NULL,
  review_count  INTEGER   NOT NULL DEFAULT 0,
  interval_days INTEGER   NOT NULL DEFAULT 1,
  created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "create_index_quiz_progress_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quiz_progress_user_id ON quiz_progress (user_id)`,
	},
}

const createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT      PRIMARY KEY,
  applied_at TIMESTAMP NOT NULL
)`

// EnsureMigrated applies every step not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its ledger row.
func EnsureMigrated(ctx context.Context, db *sqlx.DB, log *zap.Logger) error {
	log = logger.Component(log, "database").With(zap.String("driver", db.DriverName()))
	start := time.Now()

	log.Info("db_migration_check", zap.String("status", "starting"))

	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to create migration ledger: %w", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to read migration ledger: %w", err)
	}

	if len(applied) == len(steps) {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already up to date, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("pending", len(steps)-len(applied)))

	insert := db.Rebind(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`)
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		stepStart := time.Now()
		if err := applyStep(ctx, db, step, insert); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func appliedSteps(ctx context.Context, db *sqlx.DB) (map[string]bool, error) {
	var names []string
	if err := db.SelectContext(ctx, &names, `SELECT name FROM schema_migrations`); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}

func applyStep(ctx context.Context, db *sqlx.DB, step migrationStep, insert string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, insert, step.Name, time.Now().UTC()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
