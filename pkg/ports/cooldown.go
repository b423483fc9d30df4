package ports

import (
	"context"
	"time"
)

// CooldownStore owns the per (caster, skill) cooldown table. Implementations
// must be safe for concurrent use: the cast path and background expiry sweeps
// run on different goroutines.
type CooldownStore interface {
	// Remaining returns how long the cooldown still runs, 0 when inactive.
	Remaining(ctx context.Context, casterID, skillID string) (time.Duration, error)

	// Acquire atomically starts a cooldown of ttl. It returns false, without
	// changing anything, when a cooldown is already active.
	Acquire(ctx context.Context, casterID, skillID string, ttl time.Duration) (bool, error)

	// Reset clears the cooldown.
	Reset(ctx context.Context, casterID, skillID string) error
}
