package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/config"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/gemini"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/postgres"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service/auth"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	groupStore store.GroupStore
	generator  generation.JSONGenerator

	tokenService auth.TokenService
	groupService service.GroupService
	studyService service.StudyService
}

// newApplication builds stores, services and the model adapter on top of an
// already-open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.groupStore = postgres.NewPostgresGroupStore(db, logger)

	app.groupService, err = service.NewGroupService(app.groupStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create group service: %w", err)
	}

	// Built without a key too; generation requests then fail as llm-failed.
	app.generator, err = gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	app.studyService, err = service.NewStudyService(app.generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
