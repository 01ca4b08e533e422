package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

type createSessionRequest struct {
	Topic string `json:"topic" validate:"max=200"`
}

type endSessionRequest struct {
	ConfidenceLevel *int `json:"confidenceLevel" validate:"omitnil,min=1,max=10"`
}

type sessionQuestionRequest struct {
	Question string `json:"question" validate:"max=4000"`
}

// ListSessions godoc
// @Summary Study sessions of the current user, newest first
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.StudySession
// @Router /api/sessions [get]
func ListSessions(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := sessions.List(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(nonNil(list))
	}
}

// CreateSession godoc
// @Summary Start a study session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createSessionRequest false "Topic, defaults to general"
// @Success 201 {object} model.StudySession
// @Router /api/sessions [post]
func CreateSession(sessions service.SessionService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createSessionRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		s, err := sessions.Create(c.UserContext(), middleware.UserID(c), req.Topic)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// EndSession godoc
// @Summary End a study session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body endSessionRequest false "Confidence 1-10, defaults to 5"
// @Success 200 {object} model.StudySession
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/sessions/{id}/end [put]
func EndSession(sessions service.SessionService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req endSessionRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		s, err := sessions.End(c.UserContext(), middleware.UserID(c), c.Params("id"), req.ConfidenceLevel)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(s)
	}
}

// SessionQuestion godoc
// @Summary Ask within a session, or just count a question
// @Description With a question the assistant answers it; without one the session counter is incremented.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body sessionQuestionRequest false "Question"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /api/sessions/{id}/question [post]
func SessionQuestion(sessions service.SessionService, assistant service.AssistantService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sessionQuestionRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		userID, sessionID := middleware.UserID(c), c.Params("id")

		if strings.TrimSpace(req.Question) == "" {
			if err := sessions.CountQuestion(c.UserContext(), userID, sessionID); err != nil {
				return respondError(c, err)
			}
			return c.JSON(fiber.Map{"message": "Question counted"})
		}

		answer, err := assistant.Ask(c.UserContext(), userID, sessionID, req.Question)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Question answered", "answer": answer})
	}
}

// UploadMaterial godoc
// @Summary Attach a study material file to a session
// @Tags sessions
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param file formData file true "Material"
// @Success 201 {object} model.StudySession
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/sessions/{id}/materials [post]
func UploadMaterial(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		s, err := sessions.AttachMaterial(c.UserContext(), middleware.UserID(c), c.Params("id"), service.MaterialUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// MaterialURL godoc
// @Summary Presigned download URL for a session material
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param key query string true "Material key from materials_covered"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Router /api/sessions/{id}/materials/url [get]
func MaterialURL(sessions service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("key")
		if key == "" {
			return writeError(c, fiber.StatusBadRequest, "KEY_REQUIRED", "key is required")
		}
		url, ttl, err := sessions.MaterialURL(c.UserContext(), middleware.UserID(c), c.Params("id"), key)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"url": url, "expires_in": int(ttl.Seconds())})
	}
}
