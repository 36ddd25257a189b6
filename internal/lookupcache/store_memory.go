package lookupcache

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps cache entries in a mutex-guarded map. It favors
// clarity over performance and is the default when Redis is not configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewInMemoryStore creates an empty in-memory cache store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]Entry)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[key]; ok {
		return entry, nil
	}
	return Entry{}, ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = entry
	return nil
}

func (s *InMemoryStore) Touch(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return ErrNotFound
	}
	entry.AccessCount++
	s.entries[key] = entry
	return nil
}

func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, entry := range s.entries {
		if now.After(entry.ValidUntil) {
			delete(s.entries, key)
			deleted++
		}
	}
	return deleted, nil
}
