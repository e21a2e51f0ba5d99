package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlzenie/intake/pkg/ratelimit"
)

func TestNewSlidingWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		store       ratelimit.Store
		limit       int
		window      time.Duration
		expectError error
	}{
		{
			name:        "nil store",
			store:       nil,
			limit:       10,
			window:      time.Second,
			expectError: ratelimit.ErrStoreRequired,
		},
		{
			name:        "zero limit",
			store:       ratelimit.NewMemoryStore(),
			limit:       0,
			window:      time.Second,
			expectError: ratelimit.ErrInvalidLimit,
		},
		{
			name:        "zero window",
			store:       ratelimit.NewMemoryStore(),
			limit:       10,
			window:      0,
			expectError: ratelimit.ErrInvalidWindow,
		},
		{
			name:   "valid configuration",
			store:  ratelimit.NewMemoryStore(),
			limit:  10,
			window: time.Second,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sw, err := ratelimit.NewSlidingWindow(tt.store, tt.limit, tt.window)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, sw)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, sw)
			}
		})
	}
}

func TestSlidingWindowAllow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), 3, time.Minute)
		require.NoError(t, err)

		result, err := sw.Allow(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
		assert.Nil(t, result)
	})

	t.Run("enforces limit within window", func(t *testing.T) {
		t.Parallel()

		sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), 3, time.Minute)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			result, err := sw.Allow(ctx, "203.0.113.5")
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should be allowed", i+1)
			assert.Equal(t, 3, result.Limit)
			assert.Equal(t, 2-i, result.Remaining)
		}

		result, err := sw.Allow(ctx, "203.0.113.5")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), 1, time.Minute)
		require.NoError(t, err)

		first, err := sw.Allow(ctx, "203.0.113.1")
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		second, err := sw.Allow(ctx, "203.0.113.2")
		require.NoError(t, err)
		assert.True(t, second.Allowed)
	})

	t.Run("window expiry re-admits", func(t *testing.T) {
		t.Parallel()

		sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), 1, 50*time.Millisecond)
		require.NoError(t, err)

		result, err := sw.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		require.True(t, result.Allowed)

		result, err = sw.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		require.False(t, result.Allowed)

		time.Sleep(60 * time.Millisecond)

		result, err = sw.Allow(ctx, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("concurrent requests never exceed limit", func(t *testing.T) {
		t.Parallel()

		const limit = 10
		sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), limit, time.Minute)
		require.NoError(t, err)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := sw.Allow(ctx, "shared")
				if err == nil && result.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, limit, allowed)
	})
}

func TestSlidingWindowStatusAndReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sw, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), 2, time.Minute)
	require.NoError(t, err)

	_, err = sw.Allow(ctx, "key")
	require.NoError(t, err)

	status, err := sw.Status(ctx, "key")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 1, status.Remaining)

	// Status must not consume a slot.
	status, err = sw.Status(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Remaining)

	require.NoError(t, sw.Reset(ctx, "key"))

	status, err = sw.Status(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Remaining)
}
