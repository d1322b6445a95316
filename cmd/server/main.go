// Package main implements the entry point for the task API server, a
// multi-user task tracker with token authentication.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("task-api exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until shutdown.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, log)
		return runMigrations(ctx, db, migrateCmd, log)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, postgres.MigrateUp, log); err != nil {
			closeDB(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment
// variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
