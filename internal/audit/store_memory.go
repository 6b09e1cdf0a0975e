package audit

import (
	"context"
	"sync"
)

// InMemoryStore retains recent audit events for the admin API. It is bounded:
// once capacity is reached the oldest events are discarded.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	cap    int
}

const defaultCapacity = 4096

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cap: defaultCapacity}
}

// NewInMemoryStoreWithCapacity is used by tests that exercise eviction.
func NewInMemoryStoreWithCapacity(capacity int) *InMemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &InMemoryStore{cap: capacity}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.cap {
		s.events = s.events[len(s.events)-s.cap:]
	}
	return nil
}

// ListRecent returns the most recent limit events, newest last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.events) - limit
	if limit <= 0 || start < 0 {
		start = 0
	}
	return append([]Event{}, s.events[start:]...), nil
}

// ListByTenant returns all retained events attached to the given tenant.
func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}
