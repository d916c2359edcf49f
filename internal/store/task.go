package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-api/internal/domain"
)

// Pagination bounds for task listings.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// sortColumns whitelists the query-string sort keys and maps each to the
// column it sorts by. Anything else falls back to creation time.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

// TaskFilters narrows a task listing. All fields are optional and combined
// with AND. Unrecognized priority/status values are dropped during
// normalization rather than rejected; the source of this API was permissive
// about filter input and listing never fails on bad filters.
type TaskFilters struct {
	Priority  string
	Status    string
	Completed *bool
}

// Normalize returns a copy of the filters with invalid enum values cleared.
func (f TaskFilters) Normalize() TaskFilters {
	if !domain.Priority(f.Priority).Valid() {
		f.Priority = ""
	}
	if !domain.Status(f.Status).Valid() {
		f.Status = ""
	}
	return f
}

// ListParams controls pagination and ordering of a task listing.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string // query-string key before Normalize, column name after
	Order  string // "asc" or "desc"
}

// Normalize clamps pagination to sane bounds, resolves the sort key against
// the column whitelist, and defaults the order to descending. Ascending
// order is applied only when explicitly requested.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	} else if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if col, ok := sortColumns[p.SortBy]; ok {
		p.SortBy = col
	} else {
		p.SortBy = "created_at"
	}

	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

// Offset returns the number of rows skipped by pagination.
// Call on normalized params only.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a listing: ceil(total/limit).
// An empty result set has zero pages.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// TaskPage is one page of a filtered task listing, along with the total
// match count ignoring pagination.
type TaskPage struct {
	Tasks      []*domain.Task
	Total      int
	Page       int
	TotalPages int
}

// TaskStore defines the interface for task data persistence. Every read and
// write is scoped to an owning user; a task ID that exists under a different
// owner is reported as ErrTaskNotFound, never as a permission failure.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID for the given owner.
	// Returns ErrTaskNotFound if no such task belongs to the user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// List returns one page of the user's tasks matching the filters.
	// Filters and params are normalized internally; List never fails on
	// unrecognized filter or sort input.
	List(ctx context.Context, userID uuid.UUID, filters TaskFilters, params ListParams) (*TaskPage, error)

	// ListAll returns the user's complete task set, unfiltered and
	// unpaginated, ordered by creation time descending. Used by the
	// analytics engine.
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update persists all mutable fields of the task, matching on
	// {ID, UserID}. Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the user's task and returns the deleted record.
	// Returns ErrTaskNotFound if no such task belongs to the user.
	Delete(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
