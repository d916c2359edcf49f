package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/store"
)

// TaskHandler handles task-related API requests. Every operation is scoped
// to the authenticated user; a task owned by someone else is indistinguishable
// from a missing one.
type TaskHandler struct {
	taskStore   store.TaskStore
	taskService service.TaskService
	analytics   *service.AnalyticsService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	taskService service.TaskService,
	analytics *service.AnalyticsService,
) *TaskHandler {
	return &TaskHandler{
		taskStore:   taskStore,
		taskService: taskService,
		analytics:   analytics,
		validator:   validator.New(),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	priority := domain.Priority(req.Priority)
	if !priority.Valid() {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid priority")
		return
	}

	task, err := domain.NewTask(userID, req.Title, priority, req.DueDate)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	h.analytics.Invalidate(r.Context(), userID)
	RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks with optional filtering, sorting and pagination.
//
// Unknown filter values are dropped rather than rejected, and out-of-range
// pagination values are clamped, so a stale or hand-edited query string still
// returns a sensible page.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	filters, params := parseListQuery(r)

	page, err := h.taskStore.List(r.Context(), userID, filters, params)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks:      page.Tasks,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load task", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /tasks/{id}, applying a partial update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := domain.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
		DueDate:   req.DueDate,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		update.Priority = &p
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		update.Status = &s
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, update)
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			RespondWithErrorAndLog(w, r, status, "Failed to update task", err)
		} else {
			RespondWithError(w, r, status, GetSafeErrorMessage(err))
		}
		return
	}

	h.analytics.Invalidate(r.Context(), userID)
	RespondWithJSON(w, r, http.StatusOK, task)
}

// ToggleComplete handles PATCH /tasks/{id}/complete, flipping the completion
// flag and keeping the status in sync.
func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.ToggleTask(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update task", err)
		return
	}

	h.analytics.Invalidate(r.Context(), userID)
	RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}. The response echoes the deleted task so
// clients can offer an undo without a prior fetch.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskStore.Delete(r.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete task", err)
		return
	}

	h.analytics.Invalidate(r.Context(), userID)
	RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Message: "Task deleted",
		Task:    task,
	})
}

// Analytics handles GET /tasks/analytics, returning the aggregate summary of
// the authenticated user's full task set.
func (h *TaskHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.analytics.Analyze(r.Context(), userID)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to compute analytics", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// parseTaskID extracts and parses the {id} URL parameter.
func parseTaskID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// parseListQuery builds filters and pagination parameters from the query
// string. Invalid numeric values fall back to defaults via Normalize; the
// completed filter treats any value other than "true" as false when present.
func parseListQuery(r *http.Request) (store.TaskFilters, store.ListParams) {
	q := r.URL.Query()

	filters := store.TaskFilters{
		Priority: q.Get("priority"),
		Status:   q.Get("status"),
	}
	if q.Has("completed") {
		completed := q.Get("completed") == "true"
		filters.Completed = &completed
	}

	params := store.ListParams{
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Limit = n
		}
	}

	return filters, params
}
