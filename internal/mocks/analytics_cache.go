package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/service"
)

// MockAnalyticsCache implements service.AnalyticsCache for testing
type MockAnalyticsCache struct {
	GetFn        func(ctx context.Context, userID uuid.UUID) (*service.AnalyticsResult, error)
	SetFn        func(ctx context.Context, userID uuid.UUID, result *service.AnalyticsResult) error
	InvalidateFn func(ctx context.Context, userID uuid.UUID) error

	// Entries backs the default implementation
	Entries map[uuid.UUID]*service.AnalyticsResult

	// Call counters for asserting cache interaction
	GetCalls        int
	SetCalls        int
	InvalidateCalls int
}

// NewMockAnalyticsCache creates a new mock cache with initialized defaults
func NewMockAnalyticsCache() *MockAnalyticsCache {
	return &MockAnalyticsCache{
		Entries: make(map[uuid.UUID]*service.AnalyticsResult),
	}
}

// Get implements the AnalyticsCache interface; a miss returns (nil, nil).
func (m *MockAnalyticsCache) Get(ctx context.Context, userID uuid.UUID) (*service.AnalyticsResult, error) {
	m.GetCalls++
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return m.Entries[userID], nil
}

// Set implements the AnalyticsCache interface
func (m *MockAnalyticsCache) Set(ctx context.Context, userID uuid.UUID, result *service.AnalyticsResult) error {
	m.SetCalls++
	if m.SetFn != nil {
		return m.SetFn(ctx, userID, result)
	}
	m.Entries[userID] = result
	return nil
}

// Invalidate implements the AnalyticsCache interface
func (m *MockAnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	m.InvalidateCalls++
	if m.InvalidateFn != nil {
		return m.InvalidateFn(ctx, userID)
	}
	delete(m.Entries, userID)
	return nil
}
