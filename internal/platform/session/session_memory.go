package session

import (
	"context"
	"sync"
	"time"

	"contract_analyzer/internal/feature/auth/domain/entity"
	"contract_analyzer/internal/feature/auth/usecase"
)

// SessionMemory is the in-process fallback used when Redis is unreachable.
// Entries expire after their TTL, matching the Redis behaviour.
type SessionMemory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

var _ usecase.SessionRepository = (*SessionMemory)(nil)

// NewSessionMemory creates an empty in-memory session store.
func NewSessionMemory() *SessionMemory {
	return &SessionMemory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save stores a copy of the session until ttl elapses.
func (m *SessionMemory) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[session.ID] = memoryEntry{
		session:   *session,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// FindByID returns a copy of the stored session.
func (m *SessionMemory) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, usecase.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

// Delete removes a session.
func (m *SessionMemory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *SessionMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
