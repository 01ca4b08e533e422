package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Account"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /api/auth/register [post]
func Register(auth service.AuthService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		if _, err := auth.Register(c.UserContext(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		}); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
	}
}

// Login godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(auth service.AuthService, v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := v.Bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := auth.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PublicUser
// @Failure 404 {object} errorPayload
// @Router /api/auth/me [get]
func Me(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, err := auth.Me(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(me)
	}
}
