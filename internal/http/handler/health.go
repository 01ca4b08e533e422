package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <title>AI Study Buddy API</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; }
    h1 { color: #4f46e5; }
    .endpoint { background: #f3f4f6; padding: 10px; margin: 5px 0; border-radius: 5px; }
  </style>
</head>
<body>
  <h1>🤖 AI Study Buddy API</h1>
  <p>Server is running successfully! 🚀</p>

  <h2>Available Endpoints:</h2>
  <div class="endpoint"><strong>GET</strong> <a href="/api/health">/api/health</a> - Health check</div>
  <div class="endpoint"><strong>GET</strong> /api/user/profile - Get user profile</div>
  <div class="endpoint"><strong>GET</strong> /api/sessions - Get study sessions</div>
  <div class="endpoint"><strong>GET</strong> <a href="/api/quiz/generate?topic=python&difficulty=easy">/api/quiz/generate</a> - Generate quiz</div>
  <div class="endpoint"><strong>GET</strong> /api/progress - Get progress stats</div>
  <div class="endpoint"><strong>GET</strong> <a href="/api/motivation">/api/motivation</a> - Get motivation</div>
  <div class="endpoint"><strong>GET</strong> /api/study-plans - Get study plans</div>
  <div class="endpoint"><strong>GET</strong> <a href="/swagger/index.html">/swagger/</a> - API documentation</div>

  <h2>Authentication Endpoints:</h2>
  <div class="endpoint"><strong>POST</strong> /api/auth/register - Register new user</div>
  <div class="endpoint"><strong>POST</strong> /api/auth/login - Login user</div>
  <div class="endpoint"><strong>GET</strong> /api/auth/me - Get current user (requires JWT)</div>
</body>
</html>`

// Index serves a static HTML page listing the main endpoints.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(indexHTML)
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports healthy when the database answers a ping.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /api/health [get]
func HealthCheck(db Pinger, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"message":   "AI Study Buddy API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		})
	}
}

// LivenessProbe answers 200 without touching dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
