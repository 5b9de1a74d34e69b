package otpguard_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrymomot/sealkit/pkg/otpguard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStoreMarkUsed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	store := otpguard.NewMemoryStore(otpguard.WithCleanupInterval(0), otpguard.WithStoreClock(clock.Now))
	defer store.Close()

	ok, err := store.MarkUsed(ctx, "acc", 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = store.MarkUsed(ctx, "acc", 10, time.Minute)
	assert.False(t, ok)
	ok, _ = store.MarkUsed(ctx, "acc", 9, time.Minute)
	assert.False(t, ok)
	ok, _ = store.MarkUsed(ctx, "acc", 11, time.Minute)
	assert.True(t, ok)

	clock.Advance(2 * time.Minute)
	ok, _ = store.MarkUsed(ctx, "acc", 5, time.Minute)
	assert.True(t, ok, "expired marker must not block")
}

func TestMemoryStoreAttempts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	store := otpguard.NewMemoryStore(otpguard.WithCleanupInterval(0), otpguard.WithStoreClock(clock.Now))
	defer store.Close()

	for i := int64(1); i <= 3; i++ {
		n, err := store.IncrementAttempts(ctx, "acc", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	// window is anchored at the first failure
	clock.Advance(50 * time.Second)
	n, _ := store.IncrementAttempts(ctx, "acc", time.Minute)
	assert.Equal(t, int64(4), n)

	clock.Advance(11 * time.Second)
	n, err := store.Attempts(ctx, "acc")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, _ = store.IncrementAttempts(ctx, "acc", time.Minute)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.ResetAttempts(ctx, "acc"))
	n, _ = store.Attempts(ctx, "acc")
	assert.Zero(t, n)
}

func TestMemoryStoreConcurrentMarkUsed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := otpguard.NewMemoryStore(otpguard.WithCleanupInterval(0))
	defer store.Close()

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkUsed(ctx, "acc", 42, time.Minute); ok {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), accepted.Load())
}

func TestMemoryStoreCleanup(t *testing.T) {
	t.Parallel()
	store := otpguard.NewMemoryStore(otpguard.WithCleanupInterval(10 * time.Millisecond))
	_, err := store.IncrementAttempts(context.Background(), "acc", time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		n, _ := store.Attempts(context.Background(), "acc")
		return n == 0
	}, time.Second, 10*time.Millisecond)

	store.Close()
	store.Close()
}
