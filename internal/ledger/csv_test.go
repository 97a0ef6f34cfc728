package ledger

import (
	"context"
	"strings"
	"testing"

	"expenses/internal/core"
)

func TestExportCSV(t *testing.T) {
	records := []core.Expense{
		{ID: 1, Description: "Lunch", Amount: core.Money{Cents: 1250}, Category: core.Food, Date: core.NewDate(2024, 3, 15)},
		{ID: 2, Description: "Taxi, downtown", Amount: core.Money{Cents: 800}, Category: core.Transport, Date: core.NewDate(2024, 3, 16)},
	}

	out, err := ExportCSV(records)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "ID,Description,Amount,Category,Date" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,Lunch,12.50,Food,2024-03-15" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Embedded comma must be quoted
	if lines[2] != `2,"Taxi, downtown",8.00,Transport,2024-03-16` {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	out, err := ExportCSV(nil)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if strings.TrimRight(out, "\n") != "ID,Description,Amount,Category,Date" {
		t.Errorf("empty export = %q, want header only", out)
	}
}

func TestExportAllCSVFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	e := validExpense(1)
	e.Description = "Keep owner one"
	e.Category = core.Food
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e = validExpense(2)
	e.Description = "Keep owner two"
	e.Category = core.Food
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e = validExpense(2)
	e.Description = "Drop by category"
	e.Category = core.Rent
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := svc.ExportAllCSV(ctx, core.Date{}, core.Date{}, "Food")
	if err != nil {
		t.Fatalf("ExportAllCSV: %v", err)
	}

	// Filters apply, but the export still spans every owner
	if !strings.Contains(out, "Keep owner one") || !strings.Contains(out, "Keep owner two") {
		t.Errorf("export missing matching records:\n%s", out)
	}
	if strings.Contains(out, "Drop by category") {
		t.Errorf("export contains filtered record:\n%s", out)
	}
}

func TestExportCSVForOwnerFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	e := validExpense(1)
	e.Description = "Keep"
	e.Category = core.Food
	e.Date = core.NewDate(2024, 3, 10)
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e = validExpense(1)
	e.Description = "Drop by category"
	e.Category = core.Rent
	e.Date = core.NewDate(2024, 3, 10)
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e = validExpense(2)
	e.Description = "Drop by owner"
	if _, err := svc.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := svc.ExportCSVForOwner(ctx, 1, core.NewDate(2024, 3, 1), core.NewDate(2024, 3, 31), "Food")
	if err != nil {
		t.Fatalf("ExportCSVForOwner: %v", err)
	}

	if !strings.Contains(out, "Keep") {
		t.Errorf("export missing matching record:\n%s", out)
	}
	if strings.Contains(out, "Drop by category") || strings.Contains(out, "Drop by owner") {
		t.Errorf("export contains filtered records:\n%s", out)
	}
}
