package ledger

import (
	"context"
	"testing"

	"expenses/internal/core"
)

func TestDashboardForOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	save := func(owner int64, cents int64, cat core.Category, date core.Date) {
		t.Helper()
		e := validExpense(owner)
		e.Amount.Cents = cents
		e.Category = cat
		e.Date = date
		if _, err := svc.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	save(1, 1000, core.Food, core.NewDate(2024, 1, 5))
	save(1, 2000, core.Food, core.NewDate(2024, 2, 5))
	save(1, 500, core.Transport, core.NewDate(2024, 2, 10))
	save(2, 9999, core.Rent, core.NewDate(2024, 1, 1))

	summary, err := svc.DashboardForOwner(ctx, 1)
	if err != nil {
		t.Fatalf("DashboardForOwner: %v", err)
	}

	if summary.Count != 3 {
		t.Errorf("Count = %d, want 3", summary.Count)
	}
	if summary.Total.Cents != 3500 {
		t.Errorf("Total = %d, want 3500", summary.Total.Cents)
	}

	if len(summary.ByCategory) != 2 {
		t.Fatalf("ByCategory = %v, want 2 entries", summary.ByCategory)
	}
	// Categories come out in declaration order: Food before Transport
	if summary.ByCategory[0].Category != core.Food || summary.ByCategory[0].Total.Cents != 3000 {
		t.Errorf("ByCategory[0] = %+v, want Food 3000", summary.ByCategory[0])
	}
	if summary.ByCategory[1].Category != core.Transport || summary.ByCategory[1].Total.Cents != 500 {
		t.Errorf("ByCategory[1] = %+v, want Transport 500", summary.ByCategory[1])
	}

	if len(summary.ByMonth) != 2 {
		t.Fatalf("ByMonth = %v, want 2 entries", summary.ByMonth)
	}
	if summary.ByMonth[0].Month != "2024-01" || summary.ByMonth[0].Total.Cents != 1000 {
		t.Errorf("ByMonth[0] = %+v, want 2024-01 1000", summary.ByMonth[0])
	}
	if summary.ByMonth[1].Month != "2024-02" || summary.ByMonth[1].Total.Cents != 2500 {
		t.Errorf("ByMonth[1] = %+v, want 2024-02 2500", summary.ByMonth[1])
	}
}

func TestDashboardEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	summary, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if summary.Count != 0 || summary.Total.Cents != 0 {
		t.Errorf("empty dashboard = %+v", summary)
	}
	if len(summary.ByCategory) != 0 || len(summary.ByMonth) != 0 {
		t.Errorf("empty dashboard has breakdowns: %+v", summary)
	}
}
