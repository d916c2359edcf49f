package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/store"
)

// stubTaskStore implements store.TaskStore over a fixed slice. Only ListAll
// is exercised by the analytics engine.
type stubTaskStore struct {
	tasks []*domain.Task
	err   error
}

func (s *stubTaskStore) Create(ctx context.Context, task *domain.Task) error { return nil }
func (s *stubTaskStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	return nil, store.ErrTaskNotFound
}
func (s *stubTaskStore) List(ctx context.Context, userID uuid.UUID, filters store.TaskFilters, params store.ListParams) (*store.TaskPage, error) {
	return nil, nil
}
func (s *stubTaskStore) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.tasks, s.err
}
func (s *stubTaskStore) Update(ctx context.Context, task *domain.Task) error { return nil }
func (s *stubTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	return nil, store.ErrTaskNotFound
}
func (s *stubTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return s }

// stubCache records interactions and can be primed with a result or errors.
type stubCache struct {
	entry           *AnalyticsResult
	getErr          error
	setErr          error
	invalidateErr   error
	setCalls        int
	invalidateCalls int
}

func (c *stubCache) Get(ctx context.Context, userID uuid.UUID) (*AnalyticsResult, error) {
	return c.entry, c.getErr
}
func (c *stubCache) Set(ctx context.Context, userID uuid.UUID, result *AnalyticsResult) error {
	c.setCalls++
	if c.setErr == nil {
		c.entry = result
	}
	return c.setErr
}
func (c *stubCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.invalidateCalls++
	c.entry = nil
	return c.invalidateErr
}

func testTask(t *testing.T, priority domain.Priority, completed bool, createdAt time.Time) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(uuid.New(), "task", priority, nil)
	require.NoError(t, err)
	if completed {
		task.ToggleComplete()
	}
	task.CreatedAt = createdAt
	return task
}

func TestAnalyzeEmptyTaskSet(t *testing.T) {
	t.Parallel()

	svc, err := NewAnalyticsService(&stubTaskStore{}, nil, slog.Default())
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Completed)
	assert.Equal(t, 0, result.Pending)
	assert.Equal(t, PriorityBreakdown{}, result.ByPriority)
	assert.Equal(t, StatusBreakdown{}, result.ByStatus)
	assert.Equal(t, 0, result.ThisWeek)
	assert.NotNil(t, result.SortedByPriority)
	assert.Empty(t, result.SortedByPriority)
}

func TestAnalyzeCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC) // a Wednesday
	old := now.AddDate(0, -1, 0)

	tasks := []*domain.Task{
		testTask(t, domain.PriorityHigh, true, old),
		testTask(t, domain.PriorityHigh, false, now),
		testTask(t, domain.PriorityMedium, false, now),
		testTask(t, domain.PriorityLow, true, old),
	}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, nil, slog.Default())
	require.NoError(t, err)
	svc.timeFunc = func() time.Time { return now }

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Completed)
	assert.Equal(t, 2, result.Pending)
	assert.Equal(t, PriorityBreakdown{Low: 1, Medium: 1, High: 2}, result.ByPriority)
	assert.Equal(t, StatusBreakdown{InProgress: 2, Done: 2}, result.ByStatus)
	assert.Equal(t, 2, result.ThisWeek)
}

func TestAnalyzeWeekStartsMonday(t *testing.T) {
	t.Parallel()

	// Wednesday June 18 2025; the week began Monday June 16 at midnight.
	now := time.Date(2025, 6, 18, 10, 30, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	tasks := []*domain.Task{
		testTask(t, domain.PriorityLow, false, monday),                     // exactly on the boundary
		testTask(t, domain.PriorityLow, false, monday.Add(-time.Second)),   // Sunday night, previous week
		testTask(t, domain.PriorityLow, false, monday.Add(48*time.Hour)),   // midweek
		testTask(t, domain.PriorityLow, false, monday.AddDate(0, 0, -7)),   // previous Monday
	}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, nil, slog.Default())
	require.NoError(t, err)
	svc.timeFunc = func() time.Time { return now }

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, result.ThisWeek)
}

func TestAnalyzeOnSundayCountsFromPriorMonday(t *testing.T) {
	t.Parallel()

	// Sunday June 22 2025 still belongs to the week of Monday June 16.
	now := time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	tasks := []*domain.Task{
		testTask(t, domain.PriorityLow, false, monday.Add(time.Hour)),
		testTask(t, domain.PriorityLow, false, monday.Add(-time.Hour)),
	}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, nil, slog.Default())
	require.NoError(t, err)
	svc.timeFunc = func() time.Time { return now }

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ThisWeek)
}

func TestAnalyzePrioritySortIsStable(t *testing.T) {
	t.Parallel()

	now := time.Now()
	low := testTask(t, domain.PriorityLow, false, now)
	highA := testTask(t, domain.PriorityHigh, false, now)
	medium := testTask(t, domain.PriorityMedium, false, now)
	highB := testTask(t, domain.PriorityHigh, false, now)

	tasks := []*domain.Task{low, highA, medium, highB}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, nil, slog.Default())
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, result.SortedByPriority, 4)
	assert.Equal(t, highA.ID, result.SortedByPriority[0].ID)
	assert.Equal(t, highB.ID, result.SortedByPriority[1].ID)
	assert.Equal(t, medium.ID, result.SortedByPriority[2].ID)
	assert.Equal(t, low.ID, result.SortedByPriority[3].ID)

	// The input slice order must be untouched
	assert.Equal(t, low.ID, tasks[0].ID)
}

func TestAnalyzeUsesCache(t *testing.T) {
	t.Parallel()

	cached := &AnalyticsResult{Total: 42}
	cache := &stubCache{entry: cached}
	taskStore := &stubTaskStore{err: errors.New("store should not be called on cache hit")}

	svc, err := NewAnalyticsService(taskStore, cache, slog.Default())
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 42, result.Total)
}

func TestAnalyzePopulatesCacheOnMiss(t *testing.T) {
	t.Parallel()

	cache := &stubCache{}
	tasks := []*domain.Task{testTask(t, domain.PriorityLow, false, time.Now())}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, cache, slog.Default())
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, result, cache.entry)
}

func TestAnalyzeSurvivesCacheFailures(t *testing.T) {
	t.Parallel()

	cache := &stubCache{
		getErr: errors.New("redis down"),
		setErr: errors.New("redis down"),
	}
	tasks := []*domain.Task{testTask(t, domain.PriorityMedium, true, time.Now())}

	svc, err := NewAnalyticsService(&stubTaskStore{tasks: tasks}, cache, slog.Default())
	require.NoError(t, err)

	result, err := svc.Analyze(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Completed)
}

func TestAnalyzePropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	svc, err := NewAnalyticsService(&stubTaskStore{err: storeErr}, nil, slog.Default())
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeErr)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	cache := &stubCache{entry: &AnalyticsResult{Total: 7}}
	svc, err := NewAnalyticsService(&stubTaskStore{}, cache, slog.Default())
	require.NoError(t, err)

	svc.Invalidate(context.Background(), uuid.New())
	assert.Equal(t, 1, cache.invalidateCalls)
	assert.Nil(t, cache.entry)

	// Invalidation failures are swallowed
	cache.invalidateErr = errors.New("redis down")
	svc.Invalidate(context.Background(), uuid.New())
	assert.Equal(t, 2, cache.invalidateCalls)

	// A nil cache is a no-op
	noCache, err := NewAnalyticsService(&stubTaskStore{}, nil, slog.Default())
	require.NoError(t, err)
	noCache.Invalidate(context.Background(), uuid.New())
}

func TestNewAnalyticsServiceRequiresTaskStore(t *testing.T) {
	t.Parallel()

	_, err := NewAnalyticsService(nil, nil, slog.Default())
	assert.Error(t, err)
}
