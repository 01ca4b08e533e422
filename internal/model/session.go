package model

import "time"

// StudySession is a single timed study sitting on a topic.
// Duration is in whole minutes and stays zero until the session is ended.
type StudySession struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Topic            string     `json:"topic"`
	Duration         int        `json:"duration"`
	MaterialsCovered []string   `json:"materials_covered"`
	QuestionsAsked   int        `json:"questions_asked"`
	ConfidenceLevel  int        `json:"confidence_level"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

// Ended reports whether the session already has an end time.
func (s *StudySession) Ended() bool { return s.EndTime != nil }
