package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/velder/taskboard-api/internal/config"
	"github.com/velder/taskboard-api/internal/platform/postgres"
	"github.com/velder/taskboard-api/internal/service"
	"github.com/velder/taskboard-api/internal/service/auth"
	"github.com/velder/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	taskStore    store.TaskStore
	commentStore store.CommentStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	txManager        service.TxManager
	userService      service.UserService
	taskService      service.TaskService
	commentService   service.CommentService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewUserStore(db, bcrypt.DefaultCost, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)
	app.commentStore = postgres.NewCommentStore(db, logger)

	// Initialize transaction manager
	app.txManager = service.NewTxManager(db)

	// Initialize services
	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.txManager,
		logger,
	)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.userStore,
		app.txManager,
		logger,
	)
	app.commentService = service.NewCommentService(
		app.commentStore,
		app.taskStore,
		app.userStore,
		app.txManager,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
