package core

import "time"

// User is an account whose id scopes record visibility. Admins may invoke
// the unscoped ledger operations from the presentation layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}

// Session is a login session identified by an opaque token.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
