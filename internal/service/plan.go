package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studybuddy/internal/ai"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

// PlanInput is the request for a new study plan. Either TargetDays or Deadline is required.
type PlanInput struct {
	Topic          string   `json:"topic"`
	TargetDays     *int     `json:"target_days"`
	Deadline       string   `json:"deadline"`
	DailyHours     *float64 `json:"daily_hours"`
	HoursAvailable *int     `json:"hours_available"`
}

// PlanService generates and stores study plans.
type PlanService interface {
	Create(ctx context.Context, userID string, in PlanInput) (*model.StudyPlan, error)
	List(ctx context.Context, userID string) ([]model.StudyPlan, error)
	Get(ctx context.Context, userID, planID string) (*model.StudyPlan, error)

	// Delete removes exactly the owned plan.
	Delete(ctx context.Context, userID, planID string) error
}

type planService struct {
	repo repository.PlanRepository
	gen  ai.Generator
	log  *zap.Logger
	now  Clock
}

// NewPlanService constructs a PlanService.
func NewPlanService(repo repository.PlanRepository, gen ai.Generator, log *zap.Logger) PlanService {
	return &planService{
		repo: repo,
		gen:  gen,
		log:  logger.Component(log, "plan_service"),
		now:  systemClock,
	}
}

func (s *planService) Create(ctx context.Context, userID string, in PlanInput) (*model.StudyPlan, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		topic = defaultPlanTopic
	}

	now := s.now()
	sch, err := computeSchedule(in, now)
	if err != nil {
		return nil, err
	}

	plan := &model.StudyPlan{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Topic:              topic,
		TotalHours:         sch.TotalHours,
		DailyHours:         sch.DailyHours,
		WeeklyGoals:        s.weeklyGoals(ctx, topic, sch.Days),
		Resources:          s.resources(ctx, topic),
		AssessmentSchedule: assessmentSchedule(sch.Days),
		Deadline:           sch.Deadline,
		CreatedAt:          now,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

func (s *planService) weeklyGoals(ctx context.Context, topic string, days int) []model.WeeklyGoal {
	weeks := goalWeeks(days)
	prompt := fmt.Sprintf(`Create a %d-week study plan for %s.
Return ONLY a valid JSON array of objects. Each object must have:
- week: integer (1, 2, etc.)
- theme: string (Main topic for the week)
- goals: array of strings (Specific learning objectives)
Example: [{"week": 1, "theme": "Basics", "goals": ["Learn syntax", "Variables"]}]`, weeks, topic)

	var goals []model.WeeklyGoal
	ok := generateJSON(ctx, s.gen, s.log, "plan_goals", prompt, &goals) && len(goals) > 0
	observeAI("plan_goals", ok)
	if !ok {
		return fallbackWeeklyGoals(topic, weeks)
	}
	return goals[:min(len(goals), weeks)]
}

func (s *planService) resources(ctx context.Context, topic string) []string {
	prompt := fmt.Sprintf(`Suggest 3-5 high-quality study resources for %s.
Return ONLY a valid JSON array of strings.
Example: ["Resource 1", "Resource 2"]`, topic)

	var resources []string
	ok := generateJSON(ctx, s.gen, s.log, "plan_resources", prompt, &resources) && len(resources) > 0
	observeAI("plan_resources", ok)
	if !ok {
		return fallbackResources(topic)
	}
	return resources
}

func (s *planService) List(ctx context.Context, userID string) ([]model.StudyPlan, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *planService) Get(ctx context.Context, userID, planID string) (*model.StudyPlan, error) {
	p, err := s.repo.FindByID(ctx, userID, planID)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *planService) Delete(ctx context.Context, userID, planID string) error {
	return notFound(s.repo.Delete(ctx, userID, planID))
}
