package ledger

import (
	"context"
	"testing"

	"expenses/internal/core"
)

func makeRecords(n int) []core.Expense {
	out := make([]core.Expense, n)
	for i := range out {
		out[i] = core.Expense{
			ID:          int64(i + 1),
			Description: "record",
			Amount:      core.Money{Cents: 100},
			Category:    core.Other,
			Date:        core.NewDate(2024, 1, 1),
			Owner:       1,
		}
	}
	return out
}

func TestPageOf(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page, size int
		wantNumber int
		wantSize   int
		wantLen    int
		wantPages  int
	}{
		{"first page full", 25, 0, 10, 0, 10, 10, 3},
		{"last page partial", 25, 2, 10, 2, 10, 5, 3},
		{"page beyond end clamps to last", 25, 10, 10, 2, 10, 5, 3},
		{"negative page becomes zero", 25, -3, 10, 0, 10, 10, 3},
		{"zero size uses default", 25, 0, 0, 0, DefaultPageSize, 10, 3},
		{"negative size uses default", 25, 1, -5, 1, DefaultPageSize, 10, 3},
		{"exact multiple", 20, 1, 10, 1, 10, 10, 2},
		{"empty collection keeps requested page", 0, 3, 10, 3, 10, 0, 0},
		{"single short page", 4, 0, 10, 0, 10, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageOf(makeRecords(tt.total), tt.page, tt.size)

			if p.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", p.Number, tt.wantNumber)
			}
			if p.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", p.Size, tt.wantSize)
			}
			if len(p.Content) != tt.wantLen {
				t.Errorf("len(Content) = %d, want %d", len(p.Content), tt.wantLen)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.TotalElements != int64(tt.total) {
				t.Errorf("TotalElements = %d, want %d", p.TotalElements, tt.total)
			}
		})
	}
}

func TestPageOfContent(t *testing.T) {
	p := PageOf(makeRecords(25), 2, 10)

	want := []int64{21, 22, 23, 24, 25}
	if !equalIDs(idsOf(p.Content), want) {
		t.Errorf("Content ids = %v, want %v", idsOf(p.Content), want)
	}
}

func TestPageNavigation(t *testing.T) {
	first := PageOf(makeRecords(25), 0, 10)
	if !first.HasNext() || first.HasPrevious() {
		t.Errorf("first page: HasNext=%v HasPrevious=%v, want true false", first.HasNext(), first.HasPrevious())
	}

	last := PageOf(makeRecords(25), 2, 10)
	if last.HasNext() || !last.HasPrevious() {
		t.Errorf("last page: HasNext=%v HasPrevious=%v, want false true", last.HasNext(), last.HasPrevious())
	}

	empty := PageOf(nil, 0, 10)
	if empty.HasNext() || empty.HasPrevious() {
		t.Errorf("empty page must have no neighbors")
	}
}

func TestServicePageForOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for i := 0; i < 12; i++ {
		e := validExpense(1)
		e.Date = core.NewDate(2024, 1, i+1)
		if _, err := svc.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if _, err := svc.Save(ctx, validExpense(2)); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := svc.PageForOwner(ctx, 1, 5, 1)
	if err != nil {
		t.Fatalf("PageForOwner: %v", err)
	}

	if p.TotalElements != 12 {
		t.Errorf("TotalElements = %d, want 12", p.TotalElements)
	}
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if len(p.Content) != 5 {
		t.Errorf("len(Content) = %d, want 5", len(p.Content))
	}
	for _, e := range p.Content {
		if e.Owner != 1 {
			t.Errorf("page leaked record of owner %d", e.Owner)
		}
	}

	// Store order is date descending, so page 1 of 5 starts at the 6th
	// newest date
	if !p.Content[0].Date.Equal(core.NewDate(2024, 1, 7).Time) {
		t.Errorf("page start date = %v, want 2024-01-07", p.Content[0].Date)
	}
}
