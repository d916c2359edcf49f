package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskFiltersNormalize(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name string
		in   TaskFilters
		want TaskFilters
	}{
		{
			name: "valid filters pass through",
			in:   TaskFilters{Priority: "High", Status: "done", Completed: boolPtr(true)},
			want: TaskFilters{Priority: "High", Status: "done", Completed: boolPtr(true)},
		},
		{
			name: "unknown priority dropped",
			in:   TaskFilters{Priority: "Urgent", Status: "in-progress"},
			want: TaskFilters{Status: "in-progress"},
		},
		{
			name: "unknown status dropped",
			in:   TaskFilters{Priority: "Low", Status: "archived"},
			want: TaskFilters{Priority: "Low"},
		},
		{
			name: "case matters for enums",
			in:   TaskFilters{Priority: "high", Status: "DONE"},
			want: TaskFilters{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestListParamsNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			name: "zero value gets defaults",
			in:   ListParams{},
			want: ListParams{Page: 1, Limit: 20, SortBy: "created_at", Order: "desc"},
		},
		{
			name: "negative page clamped to first",
			in:   ListParams{Page: -3, Limit: 10},
			want: ListParams{Page: 1, Limit: 10, SortBy: "created_at", Order: "desc"},
		},
		{
			name: "limit clamped to maximum",
			in:   ListParams{Page: 2, Limit: 500},
			want: ListParams{Page: 2, Limit: 100, SortBy: "created_at", Order: "desc"},
		},
		{
			name: "sort key resolved to column",
			in:   ListParams{Page: 1, Limit: 20, SortBy: "dueDate", Order: "asc"},
			want: ListParams{Page: 1, Limit: 20, SortBy: "due_date", Order: "asc"},
		},
		{
			name: "unknown sort key falls back to creation time",
			in:   ListParams{Page: 1, Limit: 20, SortBy: "id; DROP TABLE tasks"},
			want: ListParams{Page: 1, Limit: 20, SortBy: "created_at", Order: "desc"},
		},
		{
			name: "non-asc order becomes desc",
			in:   ListParams{Page: 1, Limit: 20, SortBy: "title", Order: "ASC"},
			want: ListParams{Page: 1, Limit: 20, SortBy: "title", Order: "desc"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ListParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, ListParams{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 45, ListParams{Page: 10, Limit: 5}.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty set has zero pages", 0, 20, 0},
		{"exact multiple", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"fewer than one page", 5, 20, 1},
		{"zero limit guards division", 10, 0, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit))
		})
	}
}
