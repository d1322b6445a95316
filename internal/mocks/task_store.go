package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory map.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDForUserFn func(ctx context.Context, userID, taskID int64) (*domain.Task, error)
	ListByUserFn     func(ctx context.Context, userID int64, limit, offset int) ([]*domain.Task, error)
	CountByUserFn    func(ctx context.Context, userID int64) (int64, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, userID, taskID int64) error

	Tasks  map[int64]*domain.Task
	nextID int64
	mu     sync.Mutex
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new, empty mock task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[int64]*domain.Task),
	}
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.Description != nil {
		desc := *t.Description
		c.Description = &desc
	}
	return &c
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
		task.UpdatedAt = task.CreatedAt
	}
	m.Tasks[task.ID] = copyTask(task)
	return nil
}

// GetByIDForUser implements the TaskStore interface
func (m *MockTaskStore) GetByIDForUser(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	if m.GetByIDForUserFn != nil {
		return m.GetByIDForUserFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			owned = append(owned, copyTask(task))
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})

	if offset >= len(owned) {
		return []*domain.Task{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// CountByUser implements the TaskStore interface
func (m *MockTaskStore) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if m.CountByUserFn != nil {
		return m.CountByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, task := range m.Tasks {
		if task.UserID == userID {
			count++
		}
	}
	return count, nil
}

// Update implements the TaskStore interface. Only mutable fields are written.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	updated := copyTask(existing)
	updated.Title = task.Title
	updated.Description = copyTask(task).Description
	updated.Status = task.Status
	updated.UpdatedAt = task.UpdatedAt
	m.Tasks[task.ID] = updated
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, userID, taskID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[taskID]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, taskID)
	return nil
}

// WithTx implements the TaskStore interface. The mock ignores the transaction.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
