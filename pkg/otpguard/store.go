package otpguard

import (
	"context"
	"time"
)

// Store persists replay and attempt state.
type Store interface {
	// MarkUsed records counter as the last accepted step for accountID.
	// It returns false, without changing state, when counter is not greater
	// than the step already recorded.
	MarkUsed(ctx context.Context, accountID string, counter int64, ttl time.Duration) (bool, error)

	// IncrementAttempts atomically adds an attempt and returns the new count.
	// The count expires window after the first attempt.
	IncrementAttempts(ctx context.Context, accountID string, window time.Duration) (int64, error)

	// Attempts returns the current failed attempt count.
	Attempts(ctx context.Context, accountID string) (int64, error)

	// ResetAttempts clears the failed attempt count.
	ResetAttempts(ctx context.Context, accountID string) error
}
