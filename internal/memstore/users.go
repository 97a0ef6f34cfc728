package memstore

import (
	"context"
	"sync"
	"time"

	"expenses/internal/core"
)

// UserStore is an in-memory account and session store for the memory
// backend and tests. Read misses return (nil, nil).
type UserStore struct {
	mu       sync.RWMutex
	nextID   int64
	users    []core.User
	sessions map[string]core.Session
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:   1,
		sessions: make(map[string]core.Session),
	}
}

func (s *UserStore) CreateUser(ctx context.Context, username, passwordHash string, admin bool) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return core.User{}, &core.StorageError{Op: "create user", Err: errDuplicateUsername}
		}
	}
	user := core.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Admin:        admin,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

func (s *UserStore) UserByUsername(ctx context.Context, username string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *UserStore) UserByID(ctx context.Context, id int64) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *UserStore) CreateSession(ctx context.Context, session core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *UserStore) SessionByToken(ctx context.Context, token string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *UserStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *UserStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			n++
		}
	}
	return n, nil
}
