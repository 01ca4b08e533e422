package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

type profileRequest struct {
	Name            *string   `json:"name" validate:"omitnil,max=100"`
	LearningStyle   *string   `json:"learning_style" validate:"omitnil,max=50"`
	PreferredTopics *[]string `json:"preferred_topics" validate:"omitnil,max=50,dive,max=100"`
	DifficultyLevel *string   `json:"difficulty_level" validate:"omitnil,max=50"`
	StudyGoals      *[]string `json:"study_goals" validate:"omitnil,max=50,dive,max=200"`
}

// GetProfile godoc
// @Summary Learning profile of the current user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserProfile
// @Failure 404 {object} errorPayload
// @Router /api/user/profile [get]
func GetProfile(profiles service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := profiles.Get(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// UpdateProfile godoc
// @Summary Update learning preferences
// @Description Only fields present in the body are changed.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body profileRequest true "Fields to change"
// @Success 200 {object} model.UserProfile
// @Failure 404 {object} errorPayload
// @Router /api/user/profile [put]
func UpdateProfile(profiles service.ProfileService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := profiles.Update(c.UserContext(), middleware.UserID(c), service.ProfilePatch(req))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}
