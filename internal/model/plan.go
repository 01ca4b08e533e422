package model

import "time"

// WeeklyGoal is one week of a study plan.
type WeeklyGoal struct {
	Week  int      `json:"week"`
	Theme string   `json:"theme"`
	Goals []string `json:"goals"`
}

// StudyPlan is a generated multi-week schedule for a topic.
type StudyPlan struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	Topic              string       `json:"topic"`
	TotalHours         int          `json:"total_hours"`
	DailyHours         float64      `json:"daily_hours"`
	WeeklyGoals        []WeeklyGoal `json:"weekly_goals"`
	Resources          []string     `json:"resources"`
	AssessmentSchedule []string     `json:"assessment_schedule"`
	Deadline           time.Time    `json:"deadline"`
	CreatedAt          time.Time    `json:"created_at"`
}
