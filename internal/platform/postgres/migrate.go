package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
	MigrateReset   = "reset"
)

// MigrationCommands lists the commands Migrate understands.
var MigrationCommands = []string{MigrateUp, MigrateDown, MigrateStatus, MigrateVersion, MigrateReset}

// Migrate runs a goose command against db using the embedded SQL migrations.
// Each call builds its own goose.Provider, so concurrent callers share no
// goose state.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	provider, err := newMigrationProvider(db)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Info("starting migration operation")

	switch command {
	case MigrateUp:
		var results []*goose.MigrationResult
		results, err = provider.Up(ctx)
		logMigrationResults(log, results)
	case MigrateDown:
		var result *goose.MigrationResult
		result, err = provider.Down(ctx)
		if result != nil {
			logMigrationResults(log, []*goose.MigrationResult{result})
		}
	case MigrateReset:
		var results []*goose.MigrationResult
		results, err = provider.DownTo(ctx, 0)
		logMigrationResults(log, results)
	case MigrateStatus:
		var statuses []*goose.MigrationStatus
		statuses, err = provider.Status(ctx)
		for _, st := range statuses {
			log.Info("migration status",
				slog.String("migration", st.Source.Path),
				slog.String("state", string(st.State)),
				slog.Time("applied_at", st.AppliedAt))
		}
	case MigrateVersion:
		var version int64
		version, err = provider.GetDBVersion(ctx)
		if err == nil {
			log.Info("current schema version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("unknown migration command %q: must be one of %v", command, MigrationCommands)
	}

	if err != nil {
		log.Error("migration failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration operation completed",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	// The advisory lock serializes migrations across processes sharing a database.
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("failed to create migration lock: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys,
		goose.WithSessionLocker(locker))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

func logMigrationResults(log *slog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		attrs := []any{
			slog.String("migration", r.Source.Path),
			slog.String("direction", r.Direction),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		}
		if r.Error != nil {
			log.Error("migration step failed", append(attrs, slog.String("error", r.Error.Error()))...)
			continue
		}
		log.Info("migration applied", attrs...)
	}
}
