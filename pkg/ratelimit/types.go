package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the rate limit window resets.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter defines the interface for rate limiting implementations.
type Limiter interface {
	// Allow checks whether one more request is permitted for the key,
	// consuming a slot if so.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status returns the current state for the key without consuming a slot.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset clears the recorded requests for the key.
	Reset(ctx context.Context, key string) error
}

// Store is the storage backend for sliding-window limiting.
type Store interface {
	// RecordIfAllowed atomically checks whether recording now would keep the
	// key within limit, records if so, and returns the decision together
	// with the in-window count after the call.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int64, err error)

	// CountInWindow returns the number of recorded requests still inside the window.
	CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error)

	// Delete removes all state for the key.
	Delete(ctx context.Context, key string) error
}
