package ledger

import (
	"context"
	"sort"

	"expenses/internal/core"
)

// Allocator computes the smallest positive id not currently assigned
// within a scope, recycling ids freed by deletion. The gap scan and the
// caller's subsequent insert are not atomic against the store, so callers
// must hold the scope's critical section across both (the Service owns
// those locks).
type Allocator struct {
	store RecordStore
}

func NewAllocator(store RecordStore) *Allocator {
	return &Allocator{store: store}
}

// Next returns the next usable id in the global pool.
func (a *Allocator) Next(ctx context.Context) (int64, error) {
	records, err := a.store.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return firstFreeID(records), nil
}

// NextForOwner returns the next usable id in one owner's pool.
func (a *Allocator) NextForOwner(ctx context.Context, owner int64) (int64, error) {
	records, err := a.store.FindAllByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	return firstFreeID(records), nil
}

// firstFreeID scans the assigned ids ascending and returns the first gap,
// starting at 1. A gapless set {1..n} yields n+1; an empty scope yields 1.
func firstFreeID(records []core.Expense) int64 {
	ids := make([]int64, 0, len(records))
	for _, e := range records {
		ids = append(ids, e.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	next := int64(1)
	for _, id := range ids {
		if id > next {
			break
		}
		if id == next {
			next++
		}
	}
	return next
}
