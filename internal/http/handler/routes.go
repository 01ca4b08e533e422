package handler

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/internal/http/middleware"
	"studybuddy/internal/service"
)

// Services is everything the routes depend on.
type Services struct {
	DB         Pinger
	Version    string
	Auth       service.AuthService
	Profile    service.ProfileService
	Sessions   service.SessionService
	Assistant  service.AssistantService
	Plans      service.PlanService
	Quiz       service.QuizService
	Flashcards service.FlashcardService
	Progress   service.ProgressService

	// AllowUserIDHeader lets requests without a bearer token identify with User-ID.
	AllowUserIDHeader bool
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, s Services) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	auth := middleware.NewAuth(s.Auth, s.Auth, s.AllowUserIDHeader)
	authed := auth.Require()

	app.Get("/", Index())
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/health", HealthCheck(s.DB, s.Version))

	api.Post("/auth/register", Register(s.Auth, v))
	api.Post("/auth/login", Login(s.Auth, v))
	api.Get("/auth/me", authed, Me(s.Auth))

	api.Get("/user/profile", authed, GetProfile(s.Profile))
	api.Put("/user/profile", authed, UpdateProfile(s.Profile, v))

	api.Get("/sessions", authed, ListSessions(s.Sessions))
	api.Post("/sessions", authed, CreateSession(s.Sessions, v))
	api.Put("/sessions/:id/end", authed, EndSession(s.Sessions, v))
	api.Post("/sessions/:id/question", authed, SessionQuestion(s.Sessions, s.Assistant, v))
	api.Post("/sessions/:id/materials", authed, UploadMaterial(s.Sessions))
	api.Get("/sessions/:id/materials/url", authed, MaterialURL(s.Sessions))

	api.Get("/quiz/generate", GenerateQuiz(s.Quiz, v))
	api.Post("/quiz/submit", auth.Optional(), SubmitQuiz(s.Quiz, v))
	api.Get("/quiz/questions", authed, ListQuestions(s.Quiz))
	api.Post("/quiz/questions", authed, SaveQuestions(s.Quiz, v))
	api.Delete("/quiz/questions/:id", authed, DeleteQuestion(s.Quiz))

	api.Get("/progress", authed, Progress(s.Progress))
	api.Get("/motivation", Motivation(s.Assistant))
	api.Post("/ask-question", authed, AskQuestion(s.Assistant, v))
	api.Post("/generate-flashcards", GenerateFlashcards(s.Flashcards, v))

	api.Get("/study-plans", authed, ListPlans(s.Plans))
	api.Post("/study-plans", authed, CreatePlan(s.Plans, v))
	api.Get("/study-plans/:id", authed, GetPlan(s.Plans))
	api.Delete("/study-plans/:id", authed, DeletePlan(s.Plans))

	return nil
}
