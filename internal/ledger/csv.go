package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"expenses/internal/core"
)

var csvHeader = []string{"ID", "Description", "Amount", "Category", "Date"}

// ExportCSV renders records as CSV with an ID,Description,Amount,Category,
// Date header. Amounts carry two fractional digits, dates are ISO formatted.
func ExportCSV(records []core.Expense) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, e := range records {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Description,
			e.Amount.String(),
			e.Category.DisplayName(),
			e.Date.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// ExportAllCSV exports records across all owners, optionally filtered.
func (s *Service) ExportAllCSV(ctx context.Context, from, to core.Date, category string) (string, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return "", err
	}
	return ExportCSV(Filter(records, from, to, category))
}

// ExportCSVForOwner exports one owner's records, optionally filtered.
func (s *Service) ExportCSVForOwner(ctx context.Context, owner int64, from, to core.Date, category string) (string, error) {
	records, err := s.store.FindAllByOwner(ctx, owner)
	if err != nil {
		return "", err
	}
	return ExportCSV(Filter(records, from, to, category))
}
