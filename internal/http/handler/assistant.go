package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

type askRequest struct {
	Question  string `json:"question" validate:"max=4000"`
	SessionID string `json:"session_id" validate:"max=64"`
}

type flashcardRequest struct {
	Topic string `json:"topic" validate:"max=200"`
	Count int    `json:"count" validate:"gte=0,lte=50"`
}

// Motivation godoc
// @Summary A random motivational message
// @Tags assistant
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/motivation [get]
func Motivation(assistant service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": assistant.Motivation()})
	}
}

// AskQuestion godoc
// @Summary Ask the study assistant
// @Description Without session_id the question goes to the global chat.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body askRequest true "Question"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /api/ask-question [post]
func AskQuestion(assistant service.AssistantService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		answer, err := assistant.Ask(c.UserContext(), middleware.UserID(c), req.SessionID, req.Question)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"answer": answer})
	}
}

// GenerateFlashcards godoc
// @Summary Generate flashcards for a topic
// @Tags assistant
// @Accept json
// @Produce json
// @Param body body flashcardRequest true "Topic and count"
// @Success 200 {array} model.Flashcard
// @Router /api/generate-flashcards [post]
func GenerateFlashcards(cards service.FlashcardService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req flashcardRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := cards.Generate(c.UserContext(), req.Topic, req.Count)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(nonNil(out))
	}
}
