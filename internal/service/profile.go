package service

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

// ProfilePatch lists the profile fields a client may change. Nil fields keep their stored value.
type ProfilePatch struct {
	Name            *string   `json:"name"`
	LearningStyle   *string   `json:"learning_style"`
	PreferredTopics *[]string `json:"preferred_topics"`
	DifficultyLevel *string   `json:"difficulty_level"`
	StudyGoals      *[]string `json:"study_goals"`
}

// ProfileService reads and updates learning preferences.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, error)

	// Update merges the patch into the stored profile and returns the result.
	Update(ctx context.Context, userID string, patch ProfilePatch) (*model.UserProfile, error)
}

type profileService struct {
	users  repository.UserRepository
	policy *bluemonday.Policy
}

// NewProfileService constructs a ProfileService. Free text is stripped of all markup.
func NewProfileService(users repository.UserRepository) ProfileService {
	return &profileService{users: users, policy: bluemonday.StrictPolicy()}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	p := u.Profile()
	return &p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, patch ProfilePatch) (*model.UserProfile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	if patch.Name != nil {
		u.Name = s.clean(*patch.Name)
	}
	if patch.LearningStyle != nil {
		u.LearningStyle = s.clean(*patch.LearningStyle)
	}
	if patch.DifficultyLevel != nil {
		u.DifficultyLevel = s.clean(*patch.DifficultyLevel)
	}
	if patch.PreferredTopics != nil {
		u.PreferredTopics = s.cleanList(*patch.PreferredTopics)
	}
	if patch.StudyGoals != nil {
		u.StudyGoals = s.cleanList(*patch.StudyGoals)
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		if e := notFound(err); e == ErrNotFound {
			return nil, e
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	p := u.Profile()
	return &p, nil
}

func (s *profileService) clean(v string) string {
	return plainText(s.policy, v)
}

// cleanList sanitizes every entry and drops the ones left empty.
func (s *profileService) cleanList(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if c := s.clean(v); c != "" {
			out = append(out, c)
		}
	}
	return out
}
