package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name        string
		in          ListParams
		wantPage    int
		wantPerPage int
		wantOrderBy string
		wantSortBy  string
	}{
		{
			name:        "zero values fall back to defaults",
			in:          ListParams{},
			wantPage:    DefaultPage,
			wantPerPage: DefaultPerPage,
			wantOrderBy: DefaultOrderBy,
			wantSortBy:  DefaultSortBy,
		},
		{
			name:        "negative page and limit",
			in:          ListParams{Page: -3, PerPage: -1},
			wantPage:    DefaultPage,
			wantPerPage: DefaultPerPage,
			wantOrderBy: DefaultOrderBy,
			wantSortBy:  DefaultSortBy,
		},
		{
			name:        "limit is capped",
			in:          ListParams{Page: 2, PerPage: MaxPerPage + 50, SortBy: "email", OrderBy: "asc"},
			wantPage:    2,
			wantPerPage: MaxPerPage,
			wantOrderBy: "asc",
			wantSortBy:  "email",
		},
		{
			name:        "order direction is normalized",
			in:          ListParams{Page: 1, PerPage: 10, SortBy: "email", OrderBy: "DESC"},
			wantPage:    1,
			wantPerPage: 10,
			wantOrderBy: "desc",
			wantSortBy:  "email",
		},
		{
			name:        "unknown order direction falls back",
			in:          ListParams{Page: 1, PerPage: 10, SortBy: "email", OrderBy: "sideways"},
			wantPage:    1,
			wantPerPage: 10,
			wantOrderBy: DefaultOrderBy,
			wantSortBy:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPerPage, tt.in.PerPage)
			assert.Equal(t, tt.wantOrderBy, tt.in.OrderBy)
			assert.Equal(t, tt.wantSortBy, tt.in.SortBy)
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 1, PerPage: 10}
	assert.Equal(t, 0, p.CalculateOffset())

	p = ListParams{Page: 4, PerPage: 25}
	assert.Equal(t, 75, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"zero items means zero pages", 0, 10, 0},
		{"exact division", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"fewer items than a page", 3, 10, 1},
		{"guards against a zero divisor", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.perPage))
		})
	}
}

func TestNewPaginatedResult(t *testing.T) {
	items := []string{"a", "b"}
	result := NewPaginatedResult(items, ListParams{Page: 2, PerPage: 2}, 5)

	assert.Equal(t, items, result.Items)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.Limit)
	assert.EqualValues(t, 5, result.Total)
	assert.Equal(t, 3, result.TotalPages)
}
