package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every lookup and
// mutation is scoped to an owner; a task owned by someone else is reported
// as ErrTaskNotFound, exactly like a missing one.
type TaskStore interface {
	// Create saves a new task and sets its ID and timestamps from the database.
	Create(ctx context.Context, task *domain.Task) error

	// GetByIDForUser retrieves the task with the given ID owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByIDForUser(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// ListByUser returns up to limit tasks owned by userID starting at offset,
	// newest first (created_at DESC, id DESC). An offset past the end yields
	// an empty slice.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Task, error)

	// CountByUser returns how many tasks userID owns.
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// Update writes title, description, status and updated_at of an existing
	// task. Owner and creation time are not writable.
	// Returns ErrTaskNotFound if the task does not exist for task.UserID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes the task owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, userID, taskID int64) error

	// WithTx returns a TaskStore that runs against the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
