package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock acquired from a CasterLocker.
type UnlockFunc func(ctx context.Context) error

// CasterLocker serializes casts of one caster across engine instances.
type CasterLocker interface {
	// Lock blocks until the lock for key is held or ctx is done. The lock
	// expires after ttl even if the UnlockFunc is never called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
