package ledger

import (
	"strings"

	"expenses/internal/core"
)

// Filter keeps records matching the date range and category, composed with
// logical AND. The range applies only when both bounds are set and is
// inclusive at both ends. The category matches the display name
// case-insensitively after trimming; a blank category is no filter at all.
// Absent filters make this the identity. Pure: the input is never mutated.
func Filter(records []core.Expense, from, to core.Date, category string) []core.Expense {
	out := make([]core.Expense, 0, len(records))

	byDate := !from.IsEmpty() && !to.IsEmpty()
	cat := strings.TrimSpace(category)

	for _, e := range records {
		if byDate && (e.Date.Before(from.Time) || e.Date.After(to.Time)) {
			continue
		}
		if cat != "" && !strings.EqualFold(e.Category.DisplayName(), cat) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterByCategory keeps records whose category display name equals the
// given string case-insensitively.
func FilterByCategory(records []core.Expense, category string) []core.Expense {
	return Filter(records, core.Date{}, core.Date{}, category)
}

// FilterByDateRange keeps records with from <= date <= to.
func FilterByDateRange(records []core.Expense, from, to core.Date) []core.Expense {
	return Filter(records, from, to, "")
}
