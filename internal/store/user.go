package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists or ErrUsernameExists on unique conflicts.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address. The lookup is
	// case-insensitive (emails are stored lowercased).
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details (username, avatar).
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if the new username is taken by another user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. Tasks owned by the
	// user are removed by the schema's cascade rule. Not exposed over HTTP.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
