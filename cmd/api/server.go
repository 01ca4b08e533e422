package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"studybuddy/docs"
	"studybuddy/internal/ai"
	handlers "studybuddy/internal/http/handler"
	"studybuddy/internal/http/middleware"
	"studybuddy/internal/otel"
	"studybuddy/internal/repository/sqlstore"
	"studybuddy/internal/service"
	"studybuddy/internal/storage"
)

const (
	bodyLimit       = 25 << 20
	shutdownTimeout = 10 * time.Second
)

func serve(ctx context.Context, rt *runtime) error {
	cfg, log := rt.cfg, rt.log

	shutdownTracing, err := otel.Init(ctx, version, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	gen := ai.New(cfg.Gemini, log)
	if g, ok := gen.(*ai.Gemini); ok {
		defer g.Close()
	}

	// Material uploads stay disabled unless an endpoint is configured.
	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(ctx, cfg.MinIO, log)
		if err != nil {
			log.Error("storage_init_failed", zap.String("component", "storage"), zap.Error(err))
			return err
		}
	}

	users := sqlstore.NewUserStore(rt.db)
	sessions := sqlstore.NewSessionStore(rt.db)
	plans := sqlstore.NewPlanStore(rt.db)
	quizzes := sqlstore.NewQuizStore(rt.db)

	app := fiber.New(fiber.Config{
		AppName:      "studybuddy",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
		Immutable:    true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.UserIDHeader + ", " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	app.Use(metrics.Handler())
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	err = handlers.RegisterRoutes(app, handlers.Services{
		DB:                rt.db,
		Version:           version,
		Auth:              service.NewAuthService(users, cfg.Auth),
		Profile:           service.NewProfileService(users),
		Sessions:          service.NewSessionService(sessions, store, cfg.MinIO.URLTTL, log),
		Assistant:         service.NewAssistantService(sessions, gen, log),
		Plans:             service.NewPlanService(plans, gen, log),
		Quiz:              service.NewQuizService(quizzes, gen, log),
		Flashcards:        service.NewFlashcardService(gen, log),
		Progress:          service.NewProgressService(sessions),
		AllowUserIDHeader: cfg.Auth.AllowUserIDHeader,
	})
	if err != nil {
		return err
	}

	if cfg.Auth.AllowUserIDHeader {
		log.Warn("auth_user_header_enabled", zap.String("component", "http"))
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen",
			zap.String("component", "http"),
			zap.String("addr", ":"+cfg.Port),
			zap.String("version", version),
			zap.Bool("ai_available", gen.Available()),
			zap.Bool("storage_enabled", store != nil),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("http_shutdown", zap.String("component", "http"))
	return app.ShutdownWithTimeout(shutdownTimeout)
}
