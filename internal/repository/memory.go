package repository

import (
	"context"
	"sync"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

// MemorySessionStore keeps sessions in process memory. Sessions do not
// survive a restart, which matches the browser-session lifetime contract.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore constructs an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *MemorySessionStore) Put(_ context.Context, sessionID string, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
