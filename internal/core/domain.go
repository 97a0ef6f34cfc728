package core

import (
	"strings"
	"time"
)

type (
	// Date is a calendar date. Only year, month and day are meaningful;
	// the time portion is always midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single ledger record. ID is unique within its owner's
	// pool and immutable once assigned; Owner never changes after creation.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Category    Category
		Date        Date
		Owner       int64
	}
)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// IsEmpty returns true if the date is zero.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return &ValidationError{Field: "date", Err: ErrMissingDate}
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxCents {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	return nil
}

// Normalize trims surrounding whitespace from the description.
func (e *Expense) Normalize() {
	e.Description = strings.TrimSpace(e.Description)
}

// Validate checks every field invariant. It reports the first violation
// as a ValidationError naming the offending field.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Err: ErrInvalidCategory}
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}
