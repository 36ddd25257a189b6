package journey

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore keeps sessions in a mutex-guarded map. It is the default
// when Postgres is not configured; sessions do not survive a restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]Session)}
}

func (s *InMemoryStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *InMemoryStore) FindByToken(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[token]; ok {
		return session, nil
	}
	return Session{}, ErrNotFound
}

func (s *InMemoryStore) ListRecentActive(_ context.Context, limit int) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := make([]Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if session.Active {
			recent = append(recent, session)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].LastAccessed.After(recent[j].LastAccessed)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (s *InMemoryStore) DeactivateIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deactivated := 0
	for token, session := range s.sessions {
		if session.Active && session.LastAccessed.Before(cutoff) {
			session.Active = false
			s.sessions[token] = session
			deactivated++
		}
	}
	return deactivated, nil
}
