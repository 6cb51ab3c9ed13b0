package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
	DefaultSortBy  = "created_at"
)

// ListParams carries pagination/sorting/filter values parsed from the query
// string. Filters not relevant to a given list are simply ignored by it.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"limit"`
	SortBy  string `query:"sortBy"`
	OrderBy string `query:"sortOrder"`

	// Optional filters.
	FirstName  string `query:"firstName"`
	LastName   string `query:"lastName"`
	Role       string `query:"role"`
	Profession string `query:"profession"`
	Status     string `query:"status"`
}

// DefaultListParams returns params sorted by the given column, newest first.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate clamps page/per-page and normalizes the sort direction in place.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
}

// CalculateOffset converts page/per-page into the SQL offset.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages rounds up; zero items means zero pages.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	pages := totalItems / int64(perPage)
	if totalItems%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

// PaginatedResult is the wire shape of every list response.
type PaginatedResult struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginatedResult assembles the list envelope from items and a total count.
func NewPaginatedResult(items any, params ListParams, total int64) *PaginatedResult {
	return &PaginatedResult{
		Items:      items,
		Page:       params.Page,
		Limit:      params.PerPage,
		Total:      total,
		TotalPages: CalculateTotalPages(total, params.PerPage),
	}
}
