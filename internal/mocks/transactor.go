package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/store"
)

// MockTransactor implements store.Transactor by calling the function
// directly with a nil transaction. Mock stores ignore the transaction in
// WithTx, so this is enough for service tests.
type MockTransactor struct {
	// Err, when set, is returned instead of running the function.
	Err   error
	Calls int
}

// Ensure MockTransactor implements store.Transactor interface
var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements store.Transactor.
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
