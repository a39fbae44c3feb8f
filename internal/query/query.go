// Package query implements the filter -> sort -> paginate pipeline
// shared by every paged listing.
package query

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys supported by listings.
const (
	SortByName      = "name"
	SortByCreatedAt = "createdAt"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Defaults applied by NormalizeListOptions when a parameter is absent.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListOptions describes a normalized listing request.
type ListOptions struct {
	Page  int
	Limit int
	Sort  string
	Dir   string
}

// Pagination describes the position of a page within the filtered set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of a filtered, sorted listing.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NormalizeListOptions clamps options to sane bounds and fills in the
// defaults: page 1, limit 20, newest first.
func NormalizeListOptions(opts ListOptions) ListOptions {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}
	if opts.Sort != SortByName {
		opts.Sort = SortByCreatedAt
	}
	if opts.Dir != Asc && opts.Dir != Desc {
		if opts.Sort == SortByName {
			opts.Dir = Asc
		} else {
			opts.Dir = Desc
		}
	}
	return opts
}

// Filter returns the items for which every predicate holds. A nil
// predicate is a no-op.
func Filter[T any](items []T, predicates ...func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range predicates {
			if pred != nil && !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, item)
		}
	}
	return result
}

// SortItems sorts a copy of items by the requested key and direction.
// Name ordering is locale-aware; createdAt is chronological.
func SortItems[T any](items []T, opts ListOptions, name func(T) string, createdAt func(T) time.Time) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	var less func(a, b T) bool
	switch opts.Sort {
	case SortByName:
		// Collators keep internal buffers, so each sort gets its own.
		collator := collate.New(language.English)
		less = func(a, b T) bool { return collator.CompareString(name(a), name(b)) < 0 }
	default:
		less = func(a, b T) bool { return createdAt(a).Before(createdAt(b)) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if opts.Dir == Desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// Paginate slices items into the requested page. A page past the end
// yields empty data with the pagination metadata intact.
func Paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	totalPages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	data := make([]T, end-offset)
	copy(data, items[offset:end])

	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// List runs the full pipeline: filter, sort, paginate.
func List[T any](items []T, opts ListOptions, name func(T) string, createdAt func(T) time.Time, predicates ...func(T) bool) Page[T] {
	opts = NormalizeListOptions(opts)
	filtered := Filter(items, predicates...)
	sorted := SortItems(filtered, opts, name, createdAt)
	return Paginate(sorted, opts.Page, opts.Limit)
}
