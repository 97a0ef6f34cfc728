package ledger

import (
	"sort"
	"strings"

	"expenses/internal/core"
)

// Sort keys understood by SortBy.
const (
	SortByID          = "id"
	SortByDescription = "description"
	SortByAmount      = "amount"
	SortByCategory    = "category"
	SortByDate        = "date"
)

// SortBy returns a new slice ordered ascending by the named key. String
// keys compare case-insensitively; category compares display names. An
// unrecognized key is not an error: every pair compares equal, so the
// stable sort returns the input order unchanged.
func SortBy(records []core.Expense, key string) []core.Expense {
	out := make([]core.Expense, len(records))
	copy(out, records)

	less := comparatorFor(strings.ToLower(key))
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func comparatorFor(key string) func(a, b core.Expense) bool {
	switch key {
	case SortByID:
		return func(a, b core.Expense) bool { return a.ID < b.ID }
	case SortByDescription:
		return func(a, b core.Expense) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	case SortByAmount:
		return func(a, b core.Expense) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortByCategory:
		return func(a, b core.Expense) bool {
			return strings.ToLower(a.Category.DisplayName()) < strings.ToLower(b.Category.DisplayName())
		}
	case SortByDate:
		return func(a, b core.Expense) bool { return a.Date.Before(b.Date.Time) }
	default:
		return func(a, b core.Expense) bool { return false }
	}
}
