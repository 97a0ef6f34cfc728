package ledger

import (
	"context"
	"sort"

	"expenses/internal/core"
)

type (
	// CategoryTotal is the spending accumulated under one category.
	CategoryTotal struct {
		Category core.Category `json:"category"`
		Total    core.Money    `json:"total"`
	}

	// MonthTotal is the spending accumulated in one yyyy-MM month.
	MonthTotal struct {
		Month string     `json:"month"`
		Total core.Money `json:"total"`
	}

	// DashboardSummary aggregates one scope's spending for presentation.
	DashboardSummary struct {
		Total      core.Money      `json:"total"`
		Count      int             `json:"count"`
		ByCategory []CategoryTotal `json:"byCategory"`
		ByMonth    []MonthTotal    `json:"byMonth"`
	}
)

// Dashboard summarizes spending across all owners.
func (s *Service) Dashboard(ctx context.Context) (DashboardSummary, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	return summarize(records), nil
}

// DashboardForOwner summarizes one owner's spending.
func (s *Service) DashboardForOwner(ctx context.Context, owner int64) (DashboardSummary, error) {
	records, err := s.store.FindAllByOwner(ctx, owner)
	if err != nil {
		return DashboardSummary{}, err
	}
	return summarize(records), nil
}

func summarize(records []core.Expense) DashboardSummary {
	summary := DashboardSummary{
		Total: sumAmounts(records),
		Count: len(records),
	}

	byCategory := make(map[core.Category]int64)
	byMonth := make(map[string]int64)
	for _, e := range records {
		byCategory[e.Category] += e.Amount.Cents
		byMonth[e.Date.Format("2006-01")] += e.Amount.Cents
	}

	// Categories keep their declaration order; months sort chronologically.
	for _, c := range core.Categories() {
		if cents, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, CategoryTotal{
				Category: c,
				Total:    core.Money{Cents: cents},
			})
		}
	}
	for month, cents := range byMonth {
		summary.ByMonth = append(summary.ByMonth, MonthTotal{
			Month: month,
			Total: core.Money{Cents: cents},
		})
	}
	sort.Slice(summary.ByMonth, func(i, j int) bool {
		return summary.ByMonth[i].Month < summary.ByMonth[j].Month
	})
	return summary
}
