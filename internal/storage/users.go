package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"expenses/internal/core"
)

const timestampLayout = time.RFC3339

// CreateUser inserts a new account and returns it with the id populated.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash string, admin bool) (core.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?)`,
		username, passwordHash, admin, now.Format(timestampLayout))
	if err != nil {
		return core.User{}, &core.StorageError{Op: "create_user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, &core.StorageError{Op: "create_user", Err: err}
	}
	return core.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Admin:        admin,
		CreatedAt:    now,
	}, nil
}

// UserByUsername returns the account, or (nil, nil) when absent.
func (r *SQLiteRepository) UserByUsername(ctx context.Context, username string) (*core.User, error) {
	return r.queryUser(ctx,
		`SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = ?`, username)
}

// UserByID returns the account, or (nil, nil) when absent.
func (r *SQLiteRepository) UserByID(ctx context.Context, id int64) (*core.User, error) {
	return r.queryUser(ctx,
		`SELECT id, username, password_hash, is_admin, created_at FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) queryUser(ctx context.Context, query string, args ...any) (*core.User, error) {
	var (
		u       core.User
		created string
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Admin, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: "find_user", Err: err}
	}
	if t, perr := time.Parse(timestampLayout, created); perr == nil {
		u.CreatedAt = t
	}
	return &u, nil
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, s core.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		s.Token, s.UserID, s.ExpiresAt.UTC().Format(timestampLayout))
	if err != nil {
		return &core.StorageError{Op: "create_session", Err: err}
	}
	return nil
}

// SessionByToken returns the session, or (nil, nil) when absent.
func (r *SQLiteRepository) SessionByToken(ctx context.Context, token string) (*core.Session, error) {
	var (
		s       core.Session
		expires string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token).
		Scan(&s.Token, &s.UserID, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.StorageError{Op: "find_session", Err: err}
	}
	t, err := time.Parse(timestampLayout, expires)
	if err != nil {
		return nil, &core.StorageError{Op: "find_session", Err: err}
	}
	s.ExpiresAt = t
	return &s, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return &core.StorageError{Op: "delete_session", Err: err}
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and reports how
// many were swept.
func (r *SQLiteRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, now.UTC().Format(timestampLayout))
	if err != nil {
		return 0, &core.StorageError{Op: "sweep_sessions", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
