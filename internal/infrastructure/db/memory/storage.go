// Package memory provides in-process session storage and submit guards for
// single-instance runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shaggymission/adoption-web/internal/core/ports"
)

type item struct {
	value     string
	expiresAt time.Time
}

func (i item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// Storage is an in-memory ports.Storage. Expired items are dropped lazily
// on read and by Sweep.
type Storage struct {
	mu         sync.RWMutex
	sessions   map[string]map[string]item
	sessionTTL time.Duration
	now        func() time.Time
}

// NewStorage creates an empty store. sessionTTL applies to items set
// without their own ttl; zero keeps them forever.
func NewStorage(sessionTTL time.Duration) *Storage {
	return &Storage{
		sessions:   make(map[string]map[string]item),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

var _ ports.Storage = (*Storage)(nil)

func (s *Storage) GetItem(_ context.Context, sid, key string) (string, error) {
	s.mu.RLock()
	it, ok := s.sessions[sid][key]
	s.mu.RUnlock()

	if !ok || it.expired(s.now()) {
		return "", ports.ErrItemNotFound
	}
	return it.value, nil
}

func (s *Storage) SetItem(_ context.Context, sid, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.sessionTTL
	}
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.sessions[sid]
	if !ok {
		items = make(map[string]item)
		s.sessions[sid] = items
	}
	items[key] = it
	return nil
}

func (s *Storage) RemoveItem(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sid], key)
	return nil
}

func (s *Storage) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

// Sweep removes expired items and empty sessions.
func (s *Storage) Sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, items := range s.sessions {
		for k, it := range items {
			if it.expired(now) {
				delete(items, k)
			}
		}
		if len(items) == 0 {
			delete(s.sessions, sid)
		}
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *Storage) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
