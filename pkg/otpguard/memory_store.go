package otpguard

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   int64
	expires time.Time
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	used     map[string]entry
	attempts map[string]entry
	now      func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired entries are purged.
// Set to 0 to disable background cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithStoreClock overrides time.Now. Intended for tests.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store. Call Close to stop the cleanup goroutine.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		used:            make(map[string]entry),
		attempts:        make(map[string]entry),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}
	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}
	return ms
}

func (ms *MemoryStore) MarkUsed(_ context.Context, accountID string, counter int64, ttl time.Duration) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if e, ok := ms.used[accountID]; ok && now.Before(e.expires) && counter <= e.value {
		return false, nil
	}
	ms.used[accountID] = entry{value: counter, expires: now.Add(ttl)}
	return true, nil
}

func (ms *MemoryStore) IncrementAttempts(_ context.Context, accountID string, window time.Duration) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	e, ok := ms.attempts[accountID]
	if !ok || !now.Before(e.expires) {
		e = entry{expires: now.Add(window)}
	}
	e.value++
	ms.attempts[accountID] = e
	return e.value, nil
}

func (ms *MemoryStore) Attempts(_ context.Context, accountID string) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.attempts[accountID]
	if !ok || !ms.now().Before(e.expires) {
		return 0, nil
	}
	return e.value, nil
}

func (ms *MemoryStore) ResetAttempts(_ context.Context, accountID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.attempts, accountID)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopCleanup)
	})
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for _, m := range []map[string]entry{ms.used, ms.attempts} {
		for key, e := range m {
			if !now.Before(e.expires) {
				delete(m, key)
			}
		}
	}
}
