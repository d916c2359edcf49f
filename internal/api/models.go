package api

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// Both fields are optional; absent fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Avatar   *string `json:"avatar,omitempty"   validate:"omitempty,url"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title    string     `json:"title"    validate:"required,min=1,max=200"`
	Priority string     `json:"priority" validate:"required"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest defines the payload for task updates. All fields are
// optional; absent fields are left untouched.
type UpdateTaskRequest struct {
	Title     *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Priority  *string    `json:"priority,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// TaskListResponse defines the paginated response for task listing.
type TaskListResponse struct {
	Tasks      []*domain.Task `json:"tasks"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// DeleteTaskResponse confirms a deletion and echoes the removed task.
type DeleteTaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// MessageResponse is a generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
