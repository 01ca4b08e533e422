package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/model"
	"studybuddy/internal/service"
)

type generateQuizQuery struct {
	Topic        string `query:"topic" validate:"max=100"`
	Difficulty   string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	NumQuestions int    `query:"numQuestions" validate:"gte=0,lte=20"`
}

type submitQuizRequest struct {
	Questions []model.QuizQuestion `json:"questions" validate:"max=100"`
	Answers   map[string]string    `json:"answers"`
}

type saveQuestionsRequest struct {
	Questions []questionInput `json:"questions" validate:"required,min=1,max=100,dive"`
}

type questionInput struct {
	Question      string   `json:"question" validate:"required,max=2000"`
	Options       []string `json:"options" validate:"required,min=2,max=10"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation" validate:"max=4000"`
	Topic         string   `json:"topic" validate:"required,max=100"`
	Difficulty    string   `json:"difficulty" validate:"required,max=20"`
}

// GenerateQuiz godoc
// @Summary Generate multiple-choice questions
// @Tags quiz
// @Produce json
// @Param topic query string false "Topic" default(python)
// @Param difficulty query string false "easy, medium or hard" default(easy)
// @Param numQuestions query int false "Number of questions" default(5)
// @Success 200 {array} model.QuizQuestion
// @Router /api/quiz/generate [get]
func GenerateQuiz(quiz service.QuizService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q generateQuizQuery
		if err := c.QueryParser(&q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
		}
		if err := v.Check(&q); err != nil {
			return respondError(c, err)
		}
		qs, err := quiz.Generate(c.UserContext(), q.Topic, q.Difficulty, q.NumQuestions)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(nonNil(qs))
	}
}

// SubmitQuiz godoc
// @Summary Grade quiz answers
// @Description Answers are keyed by question id. Signed-in users get one progress row per question.
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body submitQuizRequest true "Questions and answers"
// @Success 200 {object} model.QuizResult
// @Router /api/quiz/submit [post]
func SubmitQuiz(quiz service.QuizService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req submitQuizRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := quiz.Submit(c.UserContext(), middleware.UserID(c), req.Questions, req.Answers)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ListQuestions godoc
// @Summary Saved questions of the current user
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param topic query string false "Topic filter"
// @Success 200 {array} model.QuizQuestion
// @Router /api/quiz/questions [get]
func ListQuestions(quiz service.QuizService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		qs, err := quiz.ListQuestions(c.UserContext(), middleware.UserID(c), c.Query("topic"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(nonNil(qs))
	}
}

// SaveQuestions godoc
// @Summary Save questions to the current user's bank
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body saveQuestionsRequest true "Questions"
// @Success 201 {array} model.QuizQuestion
// @Failure 400 {object} errorPayload
// @Router /api/quiz/questions [post]
func SaveQuestions(quiz service.QuizService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveQuestionsRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		in := make([]model.QuizQuestion, 0, len(req.Questions))
		for _, q := range req.Questions {
			in = append(in, model.QuizQuestion{
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Topic:         q.Topic,
				Difficulty:    q.Difficulty,
			})
		}
		saved, err := quiz.SaveQuestions(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}

// DeleteQuestion godoc
// @Summary Delete a saved question
// @Tags quiz
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/quiz/questions/{id} [delete]
func DeleteQuestion(quiz service.QuizService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := quiz.DeleteQuestion(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
