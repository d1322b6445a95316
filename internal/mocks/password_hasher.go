package mocks

import (
	"strings"
	"sync"

	"github.com/phrazzld/task-api/internal/service/auth"
)

// mockHashPrefix marks digests produced by MockPasswordHasher.
const mockHashPrefix = "mock-hash:"

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash prefixes the plaintext and Compare checks the prefix,
// so no bcrypt work is done.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
	mu               sync.Mutex
}

// Ensure MockPasswordHasher implements auth.PasswordHasher interface
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockHashPrefix + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCallCount++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, mockHashPrefix) ||
		strings.TrimPrefix(hashedPassword, mockHashPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

// Calls returns how many times Compare has been called.
func (m *MockPasswordHasher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CompareCallCount
}
