package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/mocks"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/store"
)

// taskTestEnv wires a TaskHandler to mock storage behind a real chi router
// so URL parameters and route precedence behave as in production.
type taskTestEnv struct {
	userID    uuid.UUID
	taskStore *mocks.MockTaskStore
	cache     *mocks.MockAnalyticsCache
	router    chi.Router
}

func newTaskTestEnv(t *testing.T) *taskTestEnv {
	t.Helper()

	env := &taskTestEnv{
		userID:    uuid.New(),
		taskStore: mocks.NewMockTaskStore(),
		cache:     mocks.NewMockAnalyticsCache(),
	}

	analytics, err := service.NewAnalyticsService(env.taskStore, env.cache, slog.Default())
	require.NoError(t, err)
	handler := NewTaskHandler(env.taskStore, mocks.NewMockTaskService(env.taskStore), analytics)

	r := chi.NewRouter()
	// Stand-in for the auth middleware: attach this user's claims
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := shared.WithClaims(req.Context(), &auth.Claims{UserID: env.userID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/tasks/analytics", handler.Analytics)
	r.Get("/api/tasks", handler.List)
	r.Post("/api/tasks", handler.Create)
	r.Get("/api/tasks/{id}", handler.Get)
	r.Patch("/api/tasks/{id}", handler.Update)
	r.Patch("/api/tasks/{id}/complete", handler.ToggleComplete)
	r.Delete("/api/tasks/{id}", handler.Delete)
	env.router = r

	return env
}

func (env *taskTestEnv) do(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *taskTestEnv) seedTask(t *testing.T, title string, priority domain.Priority) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(env.userID, title, priority, nil)
	require.NoError(t, err)
	env.taskStore.Tasks = append(env.taskStore.Tasks, task)
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("new task starts in progress", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", CreateTaskRequest{
			Title:    "write report",
			Priority: "Medium",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var task domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, "write report", task.Title)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
		assert.Equal(t, domain.StatusInProgress, task.Status)
		assert.False(t, task.Completed)
		assert.Equal(t, env.userID, task.UserID)

		assert.Equal(t, 1, env.cache.InvalidateCalls)
	})

	t.Run("rejects missing priority", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", CreateTaskRequest{Title: "no priority supplied"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, env.cache.InvalidateCalls)
	})

	t.Run("accepts explicit priority and due date", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

		w := env.do(t, http.MethodPost, "/api/tasks", CreateTaskRequest{
			Title:    "file taxes",
			Priority: "High",
			DueDate:  &due,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var task domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(due))
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", CreateTaskRequest{Title: "x", Priority: "Urgent"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, env.cache.InvalidateCalls)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/tasks", CreateTaskRequest{Priority: "Low"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	t.Run("returns paginated envelope", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		env.seedTask(t, "one", domain.PriorityLow)
		env.seedTask(t, "two", domain.PriorityHigh)

		w := env.do(t, http.MethodGet, "/api/tasks", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Len(t, resp.Tasks, 2)
	})

	t.Run("passes filters and pagination through", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		var gotFilters store.TaskFilters
		var gotParams store.ListParams
		env.taskStore.ListFn = func(ctx context.Context, userID uuid.UUID, filters store.TaskFilters, params store.ListParams) (*store.TaskPage, error) {
			gotFilters = filters
			gotParams = params
			return &store.TaskPage{Tasks: []*domain.Task{}, Page: params.Page}, nil
		}

		w := env.do(t, http.MethodGet, "/api/tasks?priority=High&completed=true&page=2&limit=5&sortBy=dueDate&order=asc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "High", gotFilters.Priority)
		require.NotNil(t, gotFilters.Completed)
		assert.True(t, *gotFilters.Completed)
		assert.Equal(t, 2, gotParams.Page)
		assert.Equal(t, 5, gotParams.Limit)
		assert.Equal(t, "dueDate", gotParams.SortBy)
		assert.Equal(t, "asc", gotParams.Order)
	})

	t.Run("empty listing keeps tasks array non-null", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tasks":[]`)
		assert.Contains(t, w.Body.String(), `"totalPages":0`)
	})

	t.Run("filters by completion", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		done := env.seedTask(t, "done", domain.PriorityLow)
		done.ToggleComplete()
		env.seedTask(t, "open", domain.PriorityLow)

		w := env.do(t, http.MethodGet, "/api/tasks?completed=true", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Tasks, 1)
		assert.Equal(t, done.ID, resp.Tasks[0].ID)
	})
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	t.Run("returns owned task", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "mine", domain.PriorityLow)

		w := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign task reads as not found", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		foreign, err := domain.NewTask(uuid.New(), "not mine", domain.PriorityLow, nil)
		require.NoError(t, err)
		env.taskStore.Tasks = append(env.taskStore.Tasks, foreign)

		w := env.do(t, http.MethodGet, "/api/tasks/"+foreign.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("applies partial update", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "draft", domain.PriorityLow)

		w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String(), UpdateTaskRequest{
			Title:    strPtr("final"),
			Priority: strPtr("High"),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "final", got.Title)
		assert.Equal(t, domain.PriorityHigh, got.Priority)
		assert.Equal(t, 1, env.cache.InvalidateCalls)
	})

	t.Run("completed true derives done status", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "sync", domain.PriorityMedium)

		w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String(), UpdateTaskRequest{
			Completed: boolPtr(true),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.Completed)
		assert.Equal(t, domain.StatusDone, got.Status)
	})

	t.Run("explicit status wins over completed flag", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "conflict", domain.PriorityMedium)

		w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String(), UpdateTaskRequest{
			Status:    strPtr("in-progress"),
			Completed: boolPtr(true),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.Completed)
		assert.Equal(t, domain.StatusInProgress, got.Status)
	})

	t.Run("invalid enum is a bad request", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "strict", domain.PriorityMedium)

		w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String(), UpdateTaskRequest{
			Status: strPtr("archived"),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, env.cache.InvalidateCalls)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodPatch, "/api/tasks/"+uuid.NewString(), UpdateTaskRequest{
			Title: strPtr("ghost"),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleTask(t *testing.T) {
	t.Parallel()

	env := newTaskTestEnv(t)
	task := env.seedTask(t, "flip me", domain.PriorityLow)

	w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Completed)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, 1, env.cache.InvalidateCalls)

	w = env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Completed)
	assert.Equal(t, domain.StatusInProgress, got.Status)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("returns confirmation with deleted task", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		task := env.seedTask(t, "remove me", domain.PriorityLow)

		w := env.do(t, http.MethodDelete, "/api/tasks/"+task.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp DeleteTaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Task deleted", resp.Message)
		require.NotNil(t, resp.Task)
		assert.Equal(t, task.ID, resp.Task.ID)
		assert.Empty(t, env.taskStore.Tasks)
		assert.Equal(t, 1, env.cache.InvalidateCalls)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodDelete, "/api/tasks/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 0, env.cache.InvalidateCalls)
	})
}

func TestTaskAnalytics(t *testing.T) {
	t.Parallel()

	t.Run("analytics route is not shadowed by the id route", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)
		env.seedTask(t, "one", domain.PriorityHigh)
		done := env.seedTask(t, "two", domain.PriorityLow)
		done.ToggleComplete()

		w := env.do(t, http.MethodGet, "/api/tasks/analytics", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result service.AnalyticsResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Completed)
		assert.Equal(t, 1, result.Pending)
	})

	t.Run("zero-fills breakdowns for empty task sets", func(t *testing.T) {
		t.Parallel()
		env := newTaskTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/tasks/analytics", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, `"Low":0`)
		assert.Contains(t, body, `"Medium":0`)
		assert.Contains(t, body, `"High":0`)
		assert.Contains(t, body, `"in-progress":0`)
		assert.Contains(t, body, `"done":0`)
		assert.Contains(t, body, `"sortedByPriority":[]`)
	})
}
