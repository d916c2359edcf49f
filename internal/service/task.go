package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// TaskService provides the task mutations that read and write in one step.
// Plain single-statement operations go straight to the store; these two are
// read-modify-write sequences and run inside a transaction so concurrent
// updates to the same task cannot interleave.
type TaskService interface {
	// UpdateTask applies a partial update to the user's task and returns
	// the updated record. Returns store.ErrTaskNotFound if the task does
	// not belong to the user, or a domain validation error for invalid
	// update values.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// ToggleTask flips the completion flag of the user's task, keeping
	// status in sync, and returns the updated record.
	ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
}

// TaskServiceImpl implements TaskService over a TaskStore and a database
// handle for transaction control.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, log *slog.Logger) (*TaskServiceImpl, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// UpdateTask implements TaskService.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	var task *domain.Task

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		loaded, err := txStore.GetByID(ctx, taskID, userID)
		if err != nil {
			return err
		}

		if err := loaded.Apply(update); err != nil {
			return err
		}

		if err := txStore.Update(ctx, loaded); err != nil {
			return err
		}

		task = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return task, nil
}

// ToggleTask implements TaskService.
func (s *TaskServiceImpl) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	var task *domain.Task

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		loaded, err := txStore.GetByID(ctx, taskID, userID)
		if err != nil {
			return err
		}

		loaded.ToggleComplete()

		if err := txStore.Update(ctx, loaded); err != nil {
			return err
		}

		task = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task completion toggled",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("completed", task.Completed))

	return task, nil
}
