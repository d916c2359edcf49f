package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/store"
)

// taskColumns is the select list shared by every task query.
const taskColumns = "id, user_id, title, priority, status, completed, due_date, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns validation errors from the domain Task if data is invalid.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Priority,
		task.Status,
		task.Completed,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// The match is scoped to {id, userID}: a task owned by someone else is
// reported as store.ErrTaskNotFound.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// List implements store.TaskStore.List
// It normalizes filters and pagination, builds the WHERE clause once, and
// runs the same predicate for both the page query and the total count.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	filters store.TaskFilters,
	params store.ListParams,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filters = filters.Normalize()
	params = params.Normalize()

	// Owner scoping is unconditional; filters only ever narrow further.
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filters.Priority != "" {
		args = append(args, filters.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Completed != nil {
		args = append(args, *filters.Completed)
		conditions = append(conditions, fmt.Sprintf("completed = $%d", len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	// params.SortBy is resolved against a column whitelist in Normalize, so
	// interpolating it here cannot inject SQL.
	listQuery := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		taskColumns,
		whereClause,
		params.SortBy,
		strings.ToUpper(params.Order),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	tasks, err := collectTasks(rows, log)
	if err != nil {
		return nil, err
	}

	log.Debug("listed tasks",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)),
		slog.Int("total", total),
		slog.Int("page", params.Page))

	return &store.TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       params.Page,
		TotalPages: store.TotalPages(total, params.Limit),
	}, nil
}

// ListAll implements store.TaskStore.ListAll
// Returns an empty (non-nil) slice when the user has no tasks.
func (s *PostgresTaskStore) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list all tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return collectTasks(rows, log)
}

// Update implements store.TaskStore.Update
// It persists all mutable fields, matching on {id, user_id}.
// Returns store.ErrTaskNotFound if no row matched.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, priority = $2, status = $3, completed = $4, due_date = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Priority,
		task.Status,
		task.Completed,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("task not found for update",
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns the deleted record so the API can echo it back.
// Returns store.ErrTaskNotFound if no such task belongs to the user.
func (s *PostgresTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns + `
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for delete",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.Completed,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return &task, nil
}

func collectTasks(rows *sql.Rows, log *slog.Logger) ([]*domain.Task, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return tasks, nil
}
