package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/task-api/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user and sets its ID and timestamps from the database.
	// The user must already carry a HashedPassword.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email address (exact match).
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether an account with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// WithTx returns a UserStore that runs against the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
