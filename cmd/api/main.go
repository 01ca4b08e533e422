package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/database"
	"studybuddy/internal/database/migration"
	"studybuddy/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "2.0.0"

// @title AI Study Buddy API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:           "studybuddy",
		Short:         "AI Study Buddy HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), serve)
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(_ context.Context, rt *runtime) error {
				rt.log.Info("migrate_complete", zap.String("driver", rt.db.DriverName()))
				return nil
			})
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runtime carries the dependencies shared by every subcommand.
type runtime struct {
	cfg *config.AppConfig
	log *zap.Logger
	db  *sqlx.DB
}

// withRuntime loads configuration, opens the database and applies migrations before
// handing over to fn.
func withRuntime(ctx context.Context, fn func(context.Context, *runtime) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Error("db_connect_failed", zap.String("component", "database"), zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		return err
	}

	return fn(ctx, &runtime{cfg: cfg, log: log, db: db})
}
