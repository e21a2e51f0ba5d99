package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sliding windows in process memory. Suitable for a
// single instance; multi-instance deployments should use RedisStore so
// counters are shared.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	retention time.Duration // longest window observed; bounds eviction

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type window struct {
	timestamps []time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often fully-expired windows are evicted.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates an in-memory store with a background eviction
// loop for keys whose windows have fully expired.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// RecordIfAllowed implements Store.
func (s *MemoryStore) RecordIfAllowed(_ context.Context, key string, now time.Time, windowDur time.Duration, limit int) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if windowDur > s.retention {
		s.retention = windowDur
	}

	w, exists := s.windows[key]
	if !exists {
		w = &window{}
		s.windows[key] = w
	}

	cutoff := now.Add(-windowDur)
	valid := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	w.timestamps = valid

	if len(w.timestamps) >= limit {
		return false, int64(len(w.timestamps)), nil
	}

	w.timestamps = append(w.timestamps, now)
	return true, int64(len(w.timestamps)), nil
}

// CountInWindow implements Store.
func (s *MemoryStore) CountInWindow(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.windows[key]
	if !exists {
		return 0, nil
	}

	cutoff := time.Now().Add(-windowDur)
	var count int64
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			count++
		}
	}
	return count, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

// evictExpired drops keys whose newest timestamp has left every window the
// store has served; the per-call pruning in RecordIfAllowed handles the rest.
func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-max(s.retention, s.cleanupInterval))
	for key, w := range s.windows {
		if len(w.timestamps) == 0 || !w.timestamps[len(w.timestamps)-1].After(cutoff) {
			delete(s.windows, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}
