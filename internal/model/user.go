package model

import "time"

// User is an account together with its learning preferences.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Name            string    `json:"name"`
	LearningStyle   string    `json:"learning_style"`
	PreferredTopics []string  `json:"preferred_topics"`
	DifficultyLevel string    `json:"difficulty_level"`
	StudyGoals      []string  `json:"study_goals"`
	CreatedAt       time.Time `json:"created_at"`
}

// Defaults applied to a freshly registered user.
const (
	DefaultLearningStyle   = "visual"
	DefaultDifficultyLevel = "beginner"
)

// UserProfile is the learning-preference view of a user.
type UserProfile struct {
	LearningStyle   string   `json:"learning_style"`
	PreferredTopics []string `json:"preferred_topics"`
	DifficultyLevel string   `json:"difficulty_level"`
	StudyGoals      []string `json:"study_goals"`
	Name            string   `json:"name"`
}

// Profile projects the user onto its profile fields.
func (u *User) Profile() UserProfile {
	return UserProfile{
		LearningStyle:   u.LearningStyle,
		PreferredTopics: nonNil(u.PreferredTopics),
		DifficultyLevel: u.DifficultyLevel,
		StudyGoals:      nonNil(u.StudyGoals),
		Name:            u.Name,
	}
}

// PublicUser is the identity returned by login and /me.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips credentials and preferences.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
