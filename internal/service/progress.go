package service

import (
	"context"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

// ProgressService aggregates study sessions into statistics.
type ProgressService interface {
	Stats(ctx context.Context, userID string) (*model.ProgressStats, error)
}

type progressService struct {
	sessions repository.SessionRepository
}

// NewProgressService constructs a ProgressService.
func NewProgressService(sessions repository.SessionRepository) ProgressService {
	return &progressService{sessions: sessions}
}

func (s *progressService) Stats(ctx context.Context, userID string) (*model.ProgressStats, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate(sessions), nil
}

func aggregate(sessions []model.StudySession) *model.ProgressStats {
	st := &model.ProgressStats{
		SessionsCompleted: len(sessions),
		TopicDistribution: make(map[string]int),
	}
	confidence := 0
	for _, sess := range sessions {
		st.TotalStudyTime += sess.Duration
		st.QuestionsAsked += sess.QuestionsAsked
		confidence += sess.ConfidenceLevel
		st.TopicDistribution[sess.Topic] += sess.Duration
	}
	if len(sessions) > 0 {
		st.AverageConfidence = roundTenth(float64(confidence) / float64(len(sessions)))
	}
	return st
}
