package ledger

import (
	"context"

	"expenses/internal/core"
)

// DefaultPageSize replaces non-positive page sizes.
const DefaultPageSize = 10

// Page is one bounded slice of a collection with paging metadata. Numbers
// are zero-based. Constructed fresh per query, never persisted.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"currentPage"`
	Size          int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func (p Page[T]) HasNext() bool     { return p.Number < p.TotalPages-1 }
func (p Page[T]) HasPrevious() bool { return p.Number > 0 }

// clampPage normalizes the requested page and size: negative pages go to 0,
// non-positive sizes to DefaultPageSize, and a page beyond the last valid
// one is clamped to TotalPages-1 (when any pages exist).
func clampPage(page, size int, totalElements int64) (int, int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := int((totalElements + int64(size) - 1) / int64(size))
	if page >= totalPages && totalPages > 0 {
		page = totalPages - 1
	}
	return page, size, totalPages
}

// PageOf slices an in-memory collection into one page.
func PageOf(records []core.Expense, page, size int) Page[core.Expense] {
	total := int64(len(records))
	page, size, totalPages := clampPage(page, size, total)

	start := page * size
	if start > len(records) {
		start = len(records)
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}

	content := make([]core.Expense, end-start)
	copy(content, records[start:end])

	return Page[core.Expense]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Page returns one store-backed page across all owners, ordered by date
// descending then id descending.
func (s *Service) Page(ctx context.Context, page, size int) (Page[core.Expense], error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return Page[core.Expense]{}, err
	}
	page, size, totalPages := clampPage(page, size, total)

	content, err := s.store.FindPage(ctx, page, size)
	if err != nil {
		return Page[core.Expense]{}, err
	}
	return Page[core.Expense]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// PageForOwner returns one store-backed page scoped to an owner.
func (s *Service) PageForOwner(ctx context.Context, page, size int, owner int64) (Page[core.Expense], error) {
	total, err := s.store.CountByOwner(ctx, owner)
	if err != nil {
		return Page[core.Expense]{}, err
	}
	page, size, totalPages := clampPage(page, size, total)

	content, err := s.store.FindPageByOwner(ctx, page, size, owner)
	if err != nil {
		return Page[core.Expense]{}, err
	}
	return Page[core.Expense]{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}
