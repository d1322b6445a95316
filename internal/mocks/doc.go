// Package mocks provides hand-written test doubles for the store and auth
// interfaces.
//
// Each mock has function fields that override a single method. When a field
// is nil the mock falls back to an in-memory default that behaves like the
// real implementation (unique emails, owner-scoped tasks, newest-first
// listing), so most tests only set the fields they care about:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("database down")
//	}
package mocks
