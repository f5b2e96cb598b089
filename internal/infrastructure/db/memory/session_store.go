// Package memory provides an in-memory session store for development and
// tests. It honors the same atomicity contract as the Redis store.
package memory

import (
	"context"
	"sync"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// SessionStore keeps sessions in a map guarded by a mutex. Each session is
// one value, so token and member can never be observed separately.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Read(_ context.Context, sessionID string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrNoSession
	}
	return session, nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
