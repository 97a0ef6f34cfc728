package ledger

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"expenses/internal/core"
)

// Service is the sole entry point for mutating operations and the scoping
// authority for reads. Scoped and unscoped variants are separate methods so
// the caller's choice is visible at the call site.
type Service struct {
	store  RecordStore
	ids    *Allocator
	events EventPublisher // optional

	// sharedPool allocates ids from one global pool instead of
	// partitioning them per owner.
	sharedPool bool

	mu     sync.Mutex
	scopes map[int64]*sync.Mutex
}

type Option func(*Service)

// WithEvents attaches a best-effort event publisher.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithSharedIDPool switches id allocation from per-owner pools to a single
// pool spanning all owners.
func WithSharedIDPool() Option {
	return func(s *Service) { s.sharedPool = true }
}

func NewService(store RecordStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		ids:    NewAllocator(store),
		scopes: make(map[int64]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scopeLock returns the mutex serializing id allocation for one pool.
// It is held across the read-ids, pick-gap and insert sequence; without it
// two concurrent saves in the same scope could claim the same id.
func (s *Service) scopeLock(owner int64) *sync.Mutex {
	if s.sharedPool {
		owner = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.scopes[owner]
	if !ok {
		l = &sync.Mutex{}
		s.scopes[owner] = l
	}
	return l
}

// GetAll returns every record across all owners, in store order.
func (s *Service) GetAll(ctx context.Context) ([]core.Expense, error) {
	return s.store.FindAll(ctx)
}

// GetAllForOwner returns every record belonging to one owner.
func (s *Service) GetAllForOwner(ctx context.Context, owner int64) ([]core.Expense, error) {
	return s.store.FindAllByOwner(ctx, owner)
}

// GetByID returns the record with the given id regardless of owner, or
// (nil, nil) when absent. A miss is not an error.
func (s *Service) GetByID(ctx context.Context, id int64) (*core.Expense, error) {
	return s.store.FindByID(ctx, id)
}

// GetByIDForOwner returns the record only if it exists and belongs to the
// owner; otherwise (nil, nil).
func (s *Service) GetByIDForOwner(ctx context.Context, id, owner int64) (*core.Expense, error) {
	return s.store.FindByIDAndOwner(ctx, id, owner)
}

// Save persists the record. With an unset id it allocates the smallest free
// id in the record's scope (holding the scope's critical section across
// allocation and insert) and returns the record with the id populated.
// With a set id it persists directly without allocation.
func (s *Service) Save(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if e.ID == 0 {
		lock := s.scopeLock(e.Owner)
		lock.Lock()
		defer lock.Unlock()

		id, err := s.allocate(ctx, e.Owner)
		if err != nil {
			return core.Expense{}, err
		}
		e.ID = id
		if err := s.store.Insert(ctx, e); err != nil {
			return core.Expense{}, err
		}
	} else {
		if err := s.store.Update(ctx, e); err != nil {
			return core.Expense{}, err
		}
	}

	s.publishSaved(ctx, e)
	return e, nil
}

func (s *Service) allocate(ctx context.Context, owner int64) (int64, error) {
	if s.sharedPool {
		return s.ids.Next(ctx)
	}
	return s.ids.NextForOwner(ctx, owner)
}

// Update persists the mutable fields of an existing record. Scoping is the
// caller's responsibility when constructing the record to update; id and
// owner are never reassigned here.
func (s *Service) Update(ctx context.Context, e core.Expense) error {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.store.Update(ctx, e); err != nil {
		return err
	}
	s.publishSaved(ctx, e)
	return nil
}

// DeleteByID removes the record unconditionally. Deleting an absent id is
// a silent no-op.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publishDeleted(ctx, id, 0)
	return nil
}

// DeleteByIDForOwner removes the record if it belongs to the owner.
// Absent or out-of-scope ids are a silent no-op.
func (s *Service) DeleteByIDForOwner(ctx context.Context, id, owner int64) error {
	if err := s.store.DeleteByIDAndOwner(ctx, id, owner); err != nil {
		return err
	}
	s.publishDeleted(ctx, id, owner)
	return nil
}

// DeleteAll removes every record across all owners.
func (s *Service) DeleteAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

// DeleteAllForOwner removes every record in one owner's scope.
func (s *Service) DeleteAllForOwner(ctx context.Context, owner int64) error {
	return s.store.DeleteAllByOwner(ctx, owner)
}

// TotalAmount sums the amount over all records. An empty ledger sums to
// zero.
func (s *Service) TotalAmount(ctx context.Context) (core.Money, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return core.Money{}, err
	}
	return sumAmounts(records), nil
}

// TotalAmountForOwner sums the amount over one owner's records.
func (s *Service) TotalAmountForOwner(ctx context.Context, owner int64) (core.Money, error) {
	records, err := s.store.FindAllByOwner(ctx, owner)
	if err != nil {
		return core.Money{}, err
	}
	return sumAmounts(records), nil
}

func sumAmounts(records []core.Expense) core.Money {
	var total core.Money
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}

var generatedDescriptions = []string{
	"Lunch", "Coffee", "Groceries", "Bus ticket", "Taxi", "Gas bill",
	"Movie ticket", "Shopping", "Dinner", "Breakfast", "Electricity bill",
	"Water bill", "Rent payment",
}

// AddGenerated saves one record with a randomized description and category,
// an amount in [5.00, 100.00) and a date within the last 30 days, scoped to
// owner, via the normal save path.
func (s *Service) AddGenerated(ctx context.Context, owner int64) (core.Expense, error) {
	cats := core.Categories()
	e := core.Expense{
		Description: generatedDescriptions[rand.IntN(len(generatedDescriptions))],
		Amount:      core.Money{Cents: 500 + rand.Int64N(9500)},
		Category:    cats[rand.IntN(len(cats))],
		Date:        core.DateOf(time.Now().AddDate(0, 0, -rand.IntN(30))),
		Owner:       owner,
	}
	return s.Save(ctx, e)
}

func (s *Service) publishSaved(ctx context.Context, e core.Expense) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseSaved(ctx, e); err != nil {
		// Best effort: the record is already persisted.
		slog.ErrorContext(ctx, "Failed to publish expense saved event",
			"id", e.ID, "owner", e.Owner, "error", err)
	}
}

func (s *Service) publishDeleted(ctx context.Context, id, owner int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseDeleted(ctx, id, owner); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense deleted event",
			"id", id, "owner", owner, "error", err)
	}
}
