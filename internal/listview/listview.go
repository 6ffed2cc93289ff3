// Package listview is the one filter/search/paginate pipeline shared by every
// entity table in the dashboard: free-text search across entity-declared
// fields, categorical filters with an "all" sentinel, and fixed-size
// pagination with page auto-reset when the view changes.
package listview

import "strings"

// Searchable is implemented by every view model that appears in a table.
type Searchable interface {
	SearchFields() []string
}

// FilterValueAll bypasses a categorical filter.
const FilterValueAll = "all"

type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalCount int
	Empty      bool
}

// Extractor pulls the normalized categorical token out of an item, e.g. the
// frontend status key of an appointment.
type Extractor[T any] func(T) string

// Apply runs the full pipeline over an in-memory collection, in received
// order. An item is included only when it matches the search term AND every
// active categorical filter. The page number is clamped into
// [1, totalPages]; out-of-range requests reset to page 1 so a filter change
// can never leave the view on a page that no longer exists.
func Apply[T Searchable](items []T, q Query, extractors map[string]Extractor[T]) Page[T] {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	var filtered []T
	for _, item := range items {
		if !matchesSearch(item, term) {
			continue
		}
		if !matchesFilters(item, q.Filters, extractors) {
			continue
		}
		filtered = append(filtered, item)
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	totalCount := len(filtered)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Page[T]{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Empty:      totalCount == 0,
	}
}

func matchesSearch[T Searchable](item T, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T Searchable](item T, filters map[string]string, extractors map[string]Extractor[T]) bool {
	for name, value := range filters {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" || normalized == FilterValueAll {
			continue
		}
		extract, ok := extractors[name]
		if !ok {
			// A filter without an extractor cannot match anything; treat it
			// as excluding so the mismatch is visible instead of silently
			// showing unfiltered rows.
			return false
		}
		if extract(item) != normalized {
			return false
		}
	}
	return true
}
