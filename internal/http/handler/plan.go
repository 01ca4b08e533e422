package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

type planRequest struct {
	Topic          string   `json:"topic" validate:"max=200"`
	TargetDays     *int     `json:"target_days" validate:"omitnil,gte=0,lte=3650"`
	Deadline       string   `json:"deadline" validate:"max=40"`
	DailyHours     *float64 `json:"daily_hours" validate:"omitnil,gte=0,lte=24"`
	HoursAvailable *int     `json:"hours_available" validate:"omitnil,gte=0"`
}

// ListPlans godoc
// @Summary Study plans of the current user
// @Tags study-plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.StudyPlan
// @Router /api/study-plans [get]
func ListPlans(plans service.PlanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := plans.List(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(nonNil(list))
	}
}

// CreatePlan godoc
// @Summary Generate a study plan
// @Description Either target_days or deadline (RFC3339 or YYYY-MM-DD) is required.
// @Tags study-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body planRequest true "Plan input"
// @Success 201 {object} model.StudyPlan
// @Failure 400 {object} errorPayload
// @Router /api/study-plans [post]
func CreatePlan(plans service.PlanService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		p, err := plans.Create(c.UserContext(), middleware.UserID(c), service.PlanInput(req))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetPlan godoc
// @Summary A single study plan
// @Tags study-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} model.StudyPlan
// @Failure 404 {object} errorPayload
// @Router /api/study-plans/{id} [get]
func GetPlan(plans service.PlanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := plans.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// DeletePlan godoc
// @Summary Delete a study plan
// @Tags study-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /api/study-plans/{id} [delete]
func DeletePlan(plans service.PlanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := plans.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Study plan deleted successfully"})
	}
}
