package session

import (
	"context"
	"sync"

	"sesaco/internal/auth/models"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/requestcontext"
)

// InMemory keeps sessions in a map. Expiry is checked on read; revoked
// sessions are deleted outright.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[string]models.Session)}
}

func (s *InMemory) Save(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return models.Session{}, sentinel.ErrNotFound
	}
	if session.Expired(requestcontext.Now(ctx)) {
		return models.Session{}, sentinel.ErrExpired
	}
	return session, nil
}

func (s *InMemory) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
