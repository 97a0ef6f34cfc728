package amqp

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

// Event types carried on the expense events queue.
const (
	EventExpenseSaved   = "expense.saved"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is a lightweight audit message describing one mutation.
type ExpenseEvent struct {
	Type        string    `json:"type"`
	ID          int64     `json:"id"`
	Owner       int64     `json:"owner"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewSavedEvent(e core.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		Type:        EventExpenseSaved,
		ID:          e.ID,
		Owner:       e.Owner,
		Description: e.Description,
		AmountCents: e.Amount.Cents,
		Category:    e.Category.DisplayName(),
		Date:        e.Date.Format("2006-01-02"),
		Timestamp:   time.Now(),
	}
}

func NewDeletedEvent(id, owner int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      EventExpenseDeleted,
		ID:        id,
		Owner:     owner,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON creates an event from JSON bytes
func EventFromJSON(data []byte) (*ExpenseEvent, error) {
	var event ExpenseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
