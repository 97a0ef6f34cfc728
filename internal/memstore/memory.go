// Package memstore provides an in-memory record store. It backs the
// DATA_BACKEND=memory mode and the service tests; semantics match the
// SQLite store, including page ordering.
package memstore

import (
	"context"
	"sort"
	"sync"

	"expenses/internal/core"
)

type Store struct {
	mu      sync.RWMutex
	records []core.Expense
}

func New() *Store {
	return &Store{}
}

func (s *Store) FindAll(ctx context.Context) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Expense, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) FindAllByOwner(ctx context.Context, owner int64) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Expense
	for _, e := range s.records {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.records {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) FindByIDAndOwner(ctx context.Context, id, owner int64) (*core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.records {
		if e.ID == id && e.Owner == owner {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) Insert(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing.ID == e.ID && existing.Owner == e.Owner {
			return &core.StorageError{Op: "insert", Err: errDuplicateID}
		}
	}
	s.records = append(s.records, e)
	return nil
}

func (s *Store) Update(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.ID == e.ID && existing.Owner == e.Owner {
			s.records[i] = e
			return nil
		}
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = deleteWhere(s.records, func(e core.Expense) bool { return e.ID == id })
	return nil
}

func (s *Store) DeleteByIDAndOwner(ctx context.Context, id, owner int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = deleteWhere(s.records, func(e core.Expense) bool {
		return e.ID == id && e.Owner == owner
	})
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func (s *Store) DeleteAllByOwner(ctx context.Context, owner int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = deleteWhere(s.records, func(e core.Expense) bool { return e.Owner == owner })
	return nil
}

func (s *Store) FindPage(ctx context.Context, page, size int) ([]core.Expense, error) {
	all, _ := s.FindAll(ctx)
	return pageSlice(all, page, size), nil
}

func (s *Store) FindPageByOwner(ctx context.Context, page, size int, owner int64) ([]core.Expense, error) {
	scoped, _ := s.FindAllByOwner(ctx, owner)
	return pageSlice(scoped, page, size), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *Store) CountByOwner(ctx context.Context, owner int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.records {
		if e.Owner == owner {
			n++
		}
	}
	return n, nil
}

func deleteWhere(records []core.Expense, match func(core.Expense) bool) []core.Expense {
	out := records[:0]
	for _, e := range records {
		if !match(e) {
			out = append(out, e)
		}
	}
	return out
}

// pageSlice orders by date descending then id descending, matching the
// SQLite store's page order.
func pageSlice(records []core.Expense, page, size int) []core.Expense {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date.Time) {
			return records[i].Date.After(records[j].Date.Time)
		}
		return records[i].ID > records[j].ID
	})

	start := page * size
	if start < 0 || start >= len(records) {
		return nil
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	out := make([]core.Expense, end-start)
	copy(out, records[start:end])
	return out
}
