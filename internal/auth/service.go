// Package auth provides account registration, login and session handling.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expenses/internal/core"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// UserStore is the durable storage collaborator for accounts and sessions.
// Read misses return (nil, nil).
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string, admin bool) (core.User, error)
	UserByUsername(ctx context.Context, username string) (*core.User, error)
	UserByID(ctx context.Context, id int64) (*core.User, error)
	CreateSession(ctx context.Context, s core.Session) error
	SessionByToken(ctx context.Context, token string) (*core.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	store UserStore
	ttl   time.Duration
}

func NewService(store UserStore, sessionTTL time.Duration) *Service {
	return &Service{store: store, ttl: sessionTTL}
}

// Register creates a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password string, admin bool) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, ErrInvalidCredentials
	}
	if len(password) < 8 {
		return core.User{}, ErrWeakPassword
	}

	existing, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return core.User{}, err
	}
	if existing != nil {
		return core.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, username, string(hash), admin)
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(ctx context.Context, username, password string) (core.Session, error) {
	user, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return core.Session{}, err
	}
	if user == nil {
		return core.Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return core.Session{}, ErrInvalidCredentials
	}

	session := core.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return core.Session{}, err
	}
	return session, nil
}

// Logout closes the session. Closing an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// Authenticate resolves a session token to its user, or (nil, nil) for
// unknown or expired tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (*core.User, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.store.SessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, nil
	}
	return s.store.UserByID(ctx, session.UserID)
}

// SweepExpired removes expired sessions and reports how many were removed.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx, time.Now())
}
