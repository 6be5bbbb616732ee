package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	count     int64
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryStore is an in-process Store backed by a map. A janitor goroutine
// sweeps expired entries so long-running processes do not leak keys.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry

	janitorTicker *time.Ticker
	janitorStop   chan struct{}
	stopOnce      sync.Once
}

// NewMemoryStore creates a memory store. A non-positive sweepInterval
// disables the janitor; expired entries are still invisible to readers,
// they just linger until overwritten.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
	}
	if sweepInterval > 0 {
		s.janitorTicker = time.NewTicker(sweepInterval)
		s.janitorStop = make(chan struct{})
		go s.janitor()
	}
	return s
}

// Get returns the live value at key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.expired(time.Now()) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set writes value under key with the given TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Incr increments the counter at key inside a fixed window.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok || e.expired(now) {
		e = &memoryEntry{expiresAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Count returns the live counter value at key.
func (s *MemoryStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.expired(time.Now()) {
		return 0, nil
	}
	return e.count, nil
}

// Stop halts the janitor goroutine. Safe to call more than once.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		if s.janitorTicker != nil {
			s.janitorTicker.Stop()
			close(s.janitorStop)
		}
	})
}

func (s *MemoryStore) janitor() {
	for {
		select {
		case <-s.janitorTicker.C:
			s.sweep()
		case <-s.janitorStop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
}
