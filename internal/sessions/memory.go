package sessions

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in a process-local map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Principal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]Principal{}}
}

func (s *MemoryStore) Put(ctx context.Context, token string, p Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = p
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (Principal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.sessions[token]
	return p, ok, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
