package core

import "strings"

// Category is a closed enumeration of expense categories. The value is the
// canonical display name.
type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Rent          Category = "Rent"
	Other         Category = "Other"
)

var categories = []Category{Food, Transport, Utilities, Entertainment, Shopping, Rent, Other}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory maps a string to its category, matching the display name
// case-insensitively after trimming. Unknown values are rejected.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Err: ErrInvalidCategory}
}

func (c Category) Valid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

// DisplayName returns the canonical display name.
func (c Category) DisplayName() string { return string(c) }
