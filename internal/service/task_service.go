package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// CreateTaskInput holds the fields a client may set when creating a task.
// A nil Status defaults to pending.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
}

// UpdateTaskInput holds a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskPage is one page of an account's tasks, newest first.
type TaskPage struct {
	Content       []*domain.Task
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// TaskService manages tasks on behalf of an authenticated account. Every
// method takes the caller's email and only ever touches that account's tasks.
type TaskService interface {
	// Create adds a task owned by ownerEmail.
	Create(ctx context.Context, ownerEmail string, input CreateTaskInput) (*domain.Task, error)

	// List returns page (zero-based) of size tasks. A page past the end has
	// empty content.
	List(ctx context.Context, ownerEmail string, page, size int) (*TaskPage, error)

	// Get returns a single task. Returns ErrTaskNotFound if it is missing or not owned.
	Get(ctx context.Context, ownerEmail string, taskID int64) (*domain.Task, error)

	// Update applies a partial update. Returns ErrTaskNotFound if the task is
	// missing or not owned.
	Update(ctx context.Context, ownerEmail string, taskID int64, input UpdateTaskInput) (*domain.Task, error)

	// Delete permanently removes a task. Returns ErrTaskNotFound if it is
	// missing or not owned.
	Delete(ctx context.Context, ownerEmail string, taskID int64) error
}

type taskService struct {
	tasks  store.TaskStore
	users  store.UserStore
	tx     store.Transactor
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	tx store.Transactor,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil || users == nil || tx == nil {
		return nil, errors.New("task service requires a task store, user store and transactor")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		tasks:  tasks,
		users:  users,
		tx:     tx,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// resolveOwner maps the authenticated email to its account.
func (s *taskService) resolveOwner(ctx context.Context, operation, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Warn("authenticated identity has no account",
				slog.String("operation", operation))
			return nil, ErrAccountNotFound
		}
		return nil, NewTaskServiceError(operation, "failed to resolve account", err)
	}
	return user, nil
}

// Create implements TaskService.
func (s *taskService) Create(ctx context.Context, ownerEmail string, input CreateTaskInput) (*domain.Task, error) {
	owner, err := s.resolveOwner(ctx, "create", ownerEmail)
	if err != nil {
		return nil, err
	}

	var status domain.TaskStatus
	if input.Status != nil {
		status = *input.Status
	}

	task, err := domain.NewTask(owner.ID, input.Title, input.Description, status)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", owner.ID))
	return task, nil
}

// List implements TaskService.
func (s *taskService) List(ctx context.Context, ownerEmail string, page, size int) (*TaskPage, error) {
	if page < 0 {
		return nil, domain.NewValidationError("page", "must not be negative", nil)
	}
	if size <= 0 {
		return nil, domain.NewValidationError("size", "must be greater than zero", nil)
	}

	owner, err := s.resolveOwner(ctx, "list", ownerEmail)
	if err != nil {
		return nil, err
	}

	total, err := s.tasks.CountByUser(ctx, owner.ID)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to count tasks", err)
	}

	result := &TaskPage{
		Content:       []*domain.Task{},
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}

	// Computed in int64 so huge page numbers cannot overflow.
	offset := int64(page) * int64(size)
	if offset >= total {
		return result, nil
	}

	tasks, err := s.tasks.ListByUser(ctx, owner.ID, size, int(offset))
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	result.Content = tasks

	logger.FromContextOrDefault(ctx, s.logger).Debug("tasks listed",
		slog.Int64("user_id", owner.ID),
		slog.Int("page", page),
		slog.Int("size", size),
		slog.Int("returned", len(tasks)))
	return result, nil
}

// Get implements TaskService.
func (s *taskService) Get(ctx context.Context, ownerEmail string, taskID int64) (*domain.Task, error) {
	owner, err := s.resolveOwner(ctx, "get", ownerEmail)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByIDForUser(ctx, owner.ID, taskID)
	if err != nil {
		return nil, s.mapTaskError("get", err)
	}
	return task, nil
}

// Update implements TaskService.
func (s *taskService) Update(
	ctx context.Context,
	ownerEmail string,
	taskID int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	owner, err := s.resolveOwner(ctx, "update", ownerEmail)
	if err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByIDForUser(ctx, owner.ID, taskID)
		if err != nil {
			return err
		}

		if err := task.ApplyUpdate(domain.TaskUpdate{
			Title:       input.Title,
			Description: input.Description,
			Status:      input.Status,
		}); err != nil {
			return err
		}

		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, s.mapTaskError("update", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		slog.Int64("task_id", updated.ID),
		slog.Int64("user_id", owner.ID))
	return updated, nil
}

// Delete implements TaskService.
func (s *taskService) Delete(ctx context.Context, ownerEmail string, taskID int64) error {
	owner, err := s.resolveOwner(ctx, "delete", ownerEmail)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		if _, err := txTasks.GetByIDForUser(ctx, owner.ID, taskID); err != nil {
			return err
		}
		return txTasks.Delete(ctx, owner.ID, taskID)
	})
	if err != nil {
		return s.mapTaskError("delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", owner.ID))
	return nil
}

// mapTaskError turns store not-found into ErrTaskNotFound and wraps anything else.
func (s *taskService) mapTaskError(operation string, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return fmt.Errorf("%w: %w", ErrTaskNotFound, err)
	}
	return NewTaskServiceError(operation, "task operation failed", err)
}
