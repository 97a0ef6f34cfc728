package core

import (
	"errors"
	"testing"
	"time"
)

func validExpense() Expense {
	return Expense{
		Description: "Lunch",
		Amount:      Money{Cents: 1250},
		Category:    Food,
		Date:        NewDate(2024, 1, 15),
		Owner:       1,
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := validExpense().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Expense)
		field  string
		want   error
	}{
		{"empty description", func(e *Expense) { e.Description = "   " }, "description", ErrEmptyDescription},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, "amount", ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -100} }, "amount", ErrInvalidAmount},
		{"oversized amount", func(e *Expense) { e.Amount = Money{Cents: MaxCents + 1} }, "amount", ErrInvalidAmount},
		{"unknown category", func(e *Expense) { e.Category = "Snacks" }, "category", ErrInvalidCategory},
		{"missing date", func(e *Expense) { e.Date = Date{} }, "date", ErrMissingDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validExpense()
			tc.mutate(&e)
			err := e.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestExpenseNormalize(t *testing.T) {
	e := validExpense()
	e.Description = "  Lunch \n"
	e.Normalize()
	if e.Description != "Lunch" {
		t.Fatalf("expected trimmed description, got %q", e.Description)
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 2, 29).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: MaxCents}).Validate(); err != nil {
		t.Fatalf("expected ok at upper bound, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	verr := &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	if !IsValidation(verr) {
		t.Fatalf("expected IsValidation true")
	}
	if IsStorage(verr) {
		t.Fatalf("expected IsStorage false for validation error")
	}
	serr := &StorageError{Op: "insert", Err: errors.New("locked")}
	if !IsStorage(serr) {
		t.Fatalf("expected IsStorage true")
	}
}
