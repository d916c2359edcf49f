package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrInvalidPriority is returned when a priority is not Low, Medium, or High.
	ErrInvalidPriority = errors.New("priority must be one of Low, Medium, High")

	// ErrInvalidStatus is returned when a status is not in-progress or done.
	ErrInvalidStatus = errors.New("status must be one of in-progress, done")
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists all valid priority values in declaration order.
// Used by the analytics engine to zero-fill per-priority counts.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the three known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority: High sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Status is the progress state of a task. It is kept in lockstep with the
// Completed flag: Completed is true exactly when Status is StatusDone.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists both valid status values.
var Statuses = []Status{StatusInProgress, StatusDone}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusDone
}

// Task represents a single to-do item owned by exactly one user.
// The owner reference is immutable after creation; every store operation
// scopes its match to the owner.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	Priority  Priority   `json:"priority"`
	Status    Status     `json:"status"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task for the given owner. New tasks always start
// in-progress and not completed. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, priority Priority, dueDate *time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Priority:  priority,
		Status:    StatusInProgress,
		Completed: false,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	if !t.Status.Valid() {
		return ErrInvalidStatus
	}

	return nil
}

// ToggleComplete flips the Completed flag and derives Status from the new
// value, keeping the two fields synchronized.
func (t *Task) ToggleComplete() {
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = StatusDone
	} else {
		t.Status = StatusInProgress
	}
	t.UpdatedAt = time.Now().UTC()
}

// TaskUpdate carries a partial update: nil fields are left untouched.
type TaskUpdate struct {
	Title     *string
	Priority  *Priority
	Status    *Status
	DueDate   *time.Time
	Completed *bool
}

// Validate checks the supplied fields of a partial update.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return ErrTaskTitleEmpty
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return ErrInvalidPriority
	}
	if u.Status != nil && !u.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Apply merges a partial update into the task and resolves the
// completed/status pair. Resolution precedence:
//
//  1. status explicitly done       -> completed = true
//  2. status explicitly in-progress -> completed = false
//  3. completed = true, no status   -> status = done
//  4. completed = false, no status  -> status = in-progress
//
// An explicit status always wins over an explicit completed flag supplied in
// the same update, so the invariant completed == (status == done) holds
// after every partial update.
func (t *Task) Apply(u TaskUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.DueDate != nil {
		t.DueDate = u.DueDate
	}

	switch {
	case u.Status != nil && *u.Status == StatusDone:
		t.Status = StatusDone
		t.Completed = true
	case u.Status != nil && *u.Status == StatusInProgress:
		t.Status = StatusInProgress
		t.Completed = false
	case u.Completed != nil && *u.Completed:
		t.Completed = true
		t.Status = StatusDone
	case u.Completed != nil && !*u.Completed:
		t.Completed = false
		t.Status = StatusInProgress
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}
