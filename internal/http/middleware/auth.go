package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDLocalKey is the Fiber locals key holding the authenticated user ID.
	UserIDLocalKey = "user_id"
	// UserIDHeader is the legacy identity header, honoured only when enabled.
	UserIDHeader = "User-ID"
)

// TokenParser validates a bearer token and returns the user ID it was issued for.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// UserChecker reports whether an account still exists.
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Auth resolves the caller's identity from a bearer token.
type Auth struct {
	parser          TokenParser
	users           UserChecker
	allowUserHeader bool
}

// NewAuth constructs the auth middleware. With allowUserHeader a request without an
// Authorization header may name its user in User-ID. When users is set, identities
// that do not match an account are rejected with 401.
func NewAuth(parser TokenParser, users UserChecker, allowUserHeader bool) *Auth {
	return &Auth{parser: parser, users: users, allowUserHeader: allowUserHeader}
}

// Require rejects requests without a valid identity with 401.
func (a *Auth) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := a.identify(c)
		if err != nil {
			return err
		}
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// Optional stores the identity when one is presented and lets anonymous requests
// through. A presented but invalid token is still rejected.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := a.identify(c)
		if err != nil {
			return err
		}
		if userID != "" {
			c.Locals(UserIDLocalKey, userID)
		}
		return c.Next()
	}
}

func (a *Auth) identify(c *fiber.Ctx) (string, error) {
	userID, err := a.resolve(c)
	if err != nil || userID == "" || a.users == nil {
		return userID, err
	}
	ok, err := a.users.Exists(c.UserContext(), userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unknown user")
	}
	return userID, nil
}

func (a *Auth) resolve(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		if a.allowUserHeader {
			return strings.TrimSpace(c.Get(UserIDHeader)), nil
		}
		return "", nil
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "malformed authorization header")
	}
	userID, err := a.parser.ParseToken(token)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}
	return userID, nil
}

// UserID returns the identity stored by Require or Optional, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
