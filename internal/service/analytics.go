package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/store"
)

// PriorityBreakdown holds per-priority task counts. All three priorities are
// always present in the JSON output, zero-filled when absent.
type PriorityBreakdown struct {
	Low    int `json:"Low"`
	Medium int `json:"Medium"`
	High   int `json:"High"`
}

// StatusBreakdown holds per-status task counts, both statuses always present.
type StatusBreakdown struct {
	InProgress int `json:"in-progress"`
	Done       int `json:"done"`
}

// AnalyticsResult is the aggregate summary over a user's full task set.
type AnalyticsResult struct {
	Total            int               `json:"total"`
	Completed        int               `json:"completed"`
	Pending          int               `json:"pending"`
	ByPriority       PriorityBreakdown `json:"byPriority"`
	ByStatus         StatusBreakdown   `json:"byStatus"`
	ThisWeek         int               `json:"thisWeek"`
	SortedByPriority []*domain.Task    `json:"sortedByPriority"`
}

// AnalyticsCache caches computed analytics per user. Implementations must
// return (nil, nil) on a cache miss so callers can distinguish miss from
// failure.
type AnalyticsCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*AnalyticsResult, error)
	Set(ctx context.Context, userID uuid.UUID, result *AnalyticsResult) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// AnalyticsService computes aggregate statistics over a user's task set.
// Results are optionally cached per user; concurrent requests for the same
// user collapse into a single computation via singleflight. Cache failures
// degrade to a recompute and are never surfaced to the caller.
type AnalyticsService struct {
	taskStore store.TaskStore
	cache     AnalyticsCache // nil disables caching
	group     singleflight.Group
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing the week boundary
}

// NewAnalyticsService creates an AnalyticsService. The cache is optional;
// pass nil to compute on every request.
func NewAnalyticsService(
	taskStore store.TaskStore,
	cache AnalyticsCache,
	log *slog.Logger,
) (*AnalyticsService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AnalyticsService{
		taskStore: taskStore,
		cache:     cache,
		logger:    log.With(slog.String("component", "analytics_service")),
		timeFunc:  time.Now,
	}, nil
}

// Analyze returns the analytics summary for the user's full (unpaginated)
// task set. An empty task set yields all-zero counts and an empty sorted
// list, never an error.
func (s *AnalyticsService) Analyze(ctx context.Context, userID uuid.UUID) (*AnalyticsResult, error) {
	v, err, shared := s.group.Do(userID.String(), func() (interface{}, error) {
		return s.analyze(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.FromContextOrDefault(ctx, s.logger).Debug("analytics computation shared",
			slog.String("user_id", userID.String()))
	}
	return v.(*AnalyticsResult), nil
}

func (s *AnalyticsService) analyze(ctx context.Context, userID uuid.UUID) (*AnalyticsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Warn("analytics cache read failed, recomputing",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		} else if cached != nil {
			log.Debug("analytics cache hit", slog.String("user_id", userID.String()))
			return cached, nil
		}
	}

	tasks, err := s.taskStore.ListAll(ctx, userID)
	if err != nil {
		log.Error("failed to load tasks for analytics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	result := computeAnalytics(tasks, s.timeFunc())

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, result); err != nil {
			log.Warn("analytics cache write failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
	}

	return result, nil
}

// Invalidate drops the cached summary for the user. Called after every task
// mutation. A cache failure is logged and swallowed: the worst case is one
// stale read until the TTL expires.
func (s *AnalyticsService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("analytics cache invalidation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

// computeAnalytics derives the summary from the task set. The week boundary
// is the most recent Monday 00:00:00 in now's location (ISO-style week).
// The priority sort is stable: tasks of equal priority keep their relative
// order from the input.
func computeAnalytics(tasks []*domain.Task, now time.Time) *AnalyticsResult {
	result := &AnalyticsResult{
		Total:            len(tasks),
		SortedByPriority: []*domain.Task{},
	}

	weekStart := startOfWeek(now)

	for _, t := range tasks {
		if t.Completed {
			result.Completed++
		}

		switch t.Priority {
		case domain.PriorityLow:
			result.ByPriority.Low++
		case domain.PriorityMedium:
			result.ByPriority.Medium++
		case domain.PriorityHigh:
			result.ByPriority.High++
		}

		switch t.Status {
		case domain.StatusInProgress:
			result.ByStatus.InProgress++
		case domain.StatusDone:
			result.ByStatus.Done++
		}

		if !t.CreatedAt.Before(weekStart) {
			result.ThisWeek++
		}
	}

	result.Pending = result.Total - result.Completed

	result.SortedByPriority = append(result.SortedByPriority, tasks...)
	sort.SliceStable(result.SortedByPriority, func(i, j int) bool {
		return result.SortedByPriority[i].Priority.Rank() < result.SortedByPriority[j].Priority.Rank()
	})

	return result
}

// startOfWeek returns Monday 00:00:00 of the week containing now, in now's
// location. Go's Weekday numbers Sunday as 0, so shifting by six maps the
// week onto a Monday start.
func startOfWeek(now time.Time) time.Time {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday)
}
