package notify

import (
	"context"
	"sync"
	"time"
)

type queue struct {
	flashes []Flash
	expires time.Time
}

// MemoryStore is the in-process store used when Redis is not configured.
type MemoryStore struct {
	mu     sync.Mutex
	queues map[string]*queue
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		queues: make(map[string]*queue),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Push implements Store
func (s *MemoryStore) Push(_ context.Context, session string, f Flash) error {
	if session == "" {
		return ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	q, ok := s.queues[session]
	if !ok {
		q = &queue{}
		s.queues[session] = q
	}
	q.flashes = append(q.flashes, f)
	if len(q.flashes) > MaxQueued {
		q.flashes = q.flashes[len(q.flashes)-MaxQueued:]
	}
	q.expires = now.Add(s.ttl)
	return nil
}

// Pop implements Store
func (s *MemoryStore) Pop(_ context.Context, session string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[session]
	if !ok {
		return nil, nil
	}
	delete(s.queues, session)
	if !s.now().Before(q.expires) {
		return nil, nil
	}
	return q.flashes, nil
}

// sweep drops expired queues; mu must be held.
func (s *MemoryStore) sweep(now time.Time) {
	for id, q := range s.queues {
		if !now.Before(q.expires) {
			delete(s.queues, id)
		}
	}
}
