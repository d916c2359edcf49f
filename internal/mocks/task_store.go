package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	ListFn    func(ctx context.Context, userID uuid.UUID, filters store.TaskFilters, params store.ListParams) (*store.TaskPage, error)
	ListAllFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// Data for default implementation, in insertion order
	Tasks []*domain.Task
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, userID)
	}

	for _, t := range m.Tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// List implements the TaskStore interface. The default implementation applies
// filters but not sorting; tests needing ordered pages should set ListFn.
func (m *MockTaskStore) List(ctx context.Context, userID uuid.UUID, filters store.TaskFilters, params store.ListParams) (*store.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, filters, params)
	}

	filters = filters.Normalize()
	params = params.Normalize()

	matched := []*domain.Task{}
	for _, t := range m.Tasks {
		if t.UserID != userID {
			continue
		}
		if filters.Priority != "" && string(t.Priority) != filters.Priority {
			continue
		}
		if filters.Status != "" && string(t.Status) != filters.Status {
			continue
		}
		if filters.Completed != nil && t.Completed != *filters.Completed {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return &store.TaskPage{
		Tasks:      matched[start:end],
		Total:      total,
		Page:       params.Page,
		TotalPages: store.TotalPages(total, params.Limit),
	}, nil
}

// ListAll implements the TaskStore interface
func (m *MockTaskStore) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, userID)
	}

	tasks := []*domain.Task{}
	for _, t := range m.Tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	for i, t := range m.Tasks {
		if t.ID == task.ID && t.UserID == task.UserID {
			m.Tasks[i] = task
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	for i, t := range m.Tasks {
		if t.ID == id && t.UserID == userID {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// WithTx implements the TaskStore interface; the mock ignores transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
