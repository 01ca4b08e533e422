package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const planColumns = `id, user_id, topic, total_hours, daily_hours, weekly_goals, resources, assessment_schedule, deadline, created_at`

// PlanStore is the SQL implementation of repository.PlanRepository.
type PlanStore struct {
	db *sqlx.DB
}

// NewPlanStore creates a new PlanStore.
func NewPlanStore(db *sqlx.DB) *PlanStore {
	return &PlanStore{db: db}
}

var _ repository.PlanRepository = (*PlanStore)(nil)

// Create inserts a new plan row.
func (r *PlanStore) Create(ctx context.Context, p *model.StudyPlan) error {
	q := r.db.Rebind(`
		INSERT INTO study_plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.UserID,
		p.Topic,
		p.TotalHours,
		p.DailyHours,
		jsonColumn{p.WeeklyGoals},
		jsonColumn{p.Resources},
		jsonColumn{p.AssessmentSchedule},
		p.Deadline,
		p.CreatedAt,
	)
	return mapError(err)
}

// FindByID fetches a plan owned by userID.
func (r *PlanStore) FindByID(ctx context.Context, userID, id string) (*model.StudyPlan, error) {
	q := r.db.Rebind(`SELECT ` + planColumns + ` FROM study_plans WHERE id = ? AND user_id = ?`)
	return scanPlan(r.db.QueryRowContext(ctx, q, id, userID))
}

// ListByUser returns the plans of a user, newest first.
func (r *PlanStore) ListByUser(ctx context.Context, userID string) ([]model.StudyPlan, error) {
	q := r.db.Rebind(`
		SELECT ` + planColumns + `
		FROM study_plans
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`)
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StudyPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes exactly the plan with the given ID owned by userID.
func (r *PlanStore) Delete(ctx context.Context, userID, id string) error {
	q := r.db.Rebind(`DELETE FROM study_plans WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanPlan(row rowScanner) (*model.StudyPlan, error) {
	p := model.StudyPlan{
		WeeklyGoals:        []model.WeeklyGoal{},
		Resources:          []string{},
		AssessmentSchedule: []string{},
	}
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Topic,
		&p.TotalHours,
		&p.DailyHours,
		jsonColumn{&p.WeeklyGoals},
		jsonColumn{&p.Resources},
		jsonColumn{&p.AssessmentSchedule},
		&p.Deadline,
		&p.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
