package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

// Progress godoc
// @Summary Study statistics of the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProgressStats
// @Router /api/progress [get]
func Progress(progress service.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := progress.Stats(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	}
}
