package model

// ProgressStats aggregates a user's study sessions. Times are in minutes.
type ProgressStats struct {
	TotalStudyTime    int            `json:"total_study_time"`
	SessionsCompleted int            `json:"sessions_completed"`
	QuestionsAsked    int            `json:"questions_asked"`
	AverageConfidence float64        `json:"average_confidence"`
	TopicDistribution map[string]int `json:"topic_distribution"`
}
