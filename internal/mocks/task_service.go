package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
)

// MockTaskService implements service.TaskService for testing. The default
// implementation performs the read-modify-write against Store without a
// transaction.
type MockTaskService struct {
	UpdateTaskFn func(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	ToggleTaskFn func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	Store *MockTaskStore
}

var _ service.TaskService = (*MockTaskService)(nil)

// NewMockTaskService creates a mock service backed by the given store.
func NewMockTaskService(store *MockTaskStore) *MockTaskService {
	return &MockTaskService{Store: store}
}

// UpdateTask implements the TaskService interface
func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, userID, taskID, update)
	}

	task, err := m.Store.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := task.Apply(update); err != nil {
		return nil, err
	}
	if err := m.Store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleTask implements the TaskService interface
func (m *MockTaskService) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	if m.ToggleTaskFn != nil {
		return m.ToggleTaskFn(ctx, userID, taskID)
	}

	task, err := m.Store.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	task.ToggleComplete()
	if err := m.Store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
