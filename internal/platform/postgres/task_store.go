package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return err
	}

	query := `
		INSERT INTO tasks (user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.UserID,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.Int64("user_id", task.UserID))
			return fmt.Errorf("%w: user with ID %d not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", task.UserID))
		return storeFailure("task", "create", "failed to insert task", err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.UserID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByIDForUser implements store.TaskStore.GetByIDForUser
func (s *PostgresTaskStore) GetByIDForUser(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.Int64("task_id", taskID),
				slog.Int64("user_id", userID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", taskID))
		return nil, storeFailure("task", "get", "failed to query task", err)
	}

	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID))
		return nil, storeFailure("task", "list", "failed to query tasks", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0, min(limit, 100))
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", redact.Error(err)))
			return nil, storeFailure("task", "list", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			slog.String("error", redact.Error(err)))
		return nil, storeFailure("task", "list", "failed to iterate task rows", err)
	}

	log.Debug("tasks listed",
		slog.Int64("user_id", userID),
		slog.Int("count", len(tasks)),
		slog.Int("limit", limit),
		slog.Int("offset", offset))
	return tasks, nil
}

// CountByUser implements store.TaskStore.CountByUser
func (s *PostgresTaskStore) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID))
		return 0, storeFailure("task", "count", "failed to count tasks", err)
	}
	return count, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", task.ID))
		return storeFailure("task", "update", "failed to update task", err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not updated",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", taskID))
		return storeFailure("task", "delete", "failed to delete task", err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not deleted",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return err
	}

	log.Info("task deleted successfully",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", userID))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", task.ID, err)
	}
	task.Status = parsed

	if description.Valid {
		desc := description.String
		task.Description = &desc
	}
	return &task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
