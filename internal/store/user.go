package store

import (
	"context"
	"database/sql"

	"github.com/velder/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store, hashing the plaintext password
	// before insert. Returns ErrEmailExists if the email is already taken
	// (the users table enforces uniqueness as a backstop against the
	// exists-then-insert race). Returns validation errors from the domain
	// User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address, case-as-stored.
	// Returns ErrUserNotFound if the user does not exist. The returned user
	// carries the password hash but never a plaintext password.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// WithTx returns a UserStore instance bound to the provided transaction.
	// The transaction is created and managed by the caller (typically a
	// service wrapping the operation in store.RunInTransaction).
	WithTx(tx *sql.Tx) UserStore
}
