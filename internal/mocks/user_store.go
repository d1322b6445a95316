package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)

	// Data for default implementation, keyed by email
	Users  map[string]*domain.User
	nextID int64
	mu     sync.Mutex
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.nextID++
	user.ID = m.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
		user.UpdatedAt = user.CreatedAt
	}
	user.Password = ""

	stored := *user
	m.Users[user.Email] = &stored
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// ExistsByEmail implements the UserStore interface
func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.Users[email]
	return exists, nil
}

// WithTx implements the UserStore interface. The mock ignores the transaction.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
