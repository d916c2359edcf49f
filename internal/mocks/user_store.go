package mocks

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by lowercased email
	Users map[string]*domain.User
}

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

	email := strings.ToLower(user.Email)
	if _, exists := m.Users[email]; exists {
		return store.ErrEmailExists
	}
	for _, u := range m.Users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	m.Users[email] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	u, ok := m.Users[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for _, u := range m.Users {
		if u.ID != user.ID && u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	for email, u := range m.Users {
		if u.ID == user.ID {
			m.Users[email] = user
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, u := range m.Users {
		if u.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements the UserStore interface; the mock ignores transactions.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
