package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	taskStore  store.TaskStore
	transactor store.Transactor

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	authService    service.AuthService
	taskService    service.TaskService
}

// newApplication creates the application with PostgreSQL-backed stores.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		userStore:  postgres.NewPostgresUserStore(db, logger),
		taskStore:  postgres.NewPostgresTaskStore(db, logger),
		transactor: store.NewSQLTransactor(db),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// initServices builds the auth and task services on top of the stores
// already set on app.
func (app *application) initServices() error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes))

	if app.passwordHasher == nil {
		app.passwordHasher, err = auth.NewBcryptHasher(app.config.Auth.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to initialize password hasher: %w", err)
		}
	}

	app.authService, err = service.NewAuthService(app.userStore, app.passwordHasher, app.jwtService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.userStore, app.transactor, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	return nil
}

// Run serves HTTP until a shutdown signal arrives or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	closeDB(app.db, app.logger)
	app.logger.Info("application shutdown completed")
}
