package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/skilltree/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// unlockScript deletes the lock only while it still holds our token.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.CasterLocker with SET NX PX and a polling retry.
type Locker struct {
	client *backend.Client
	prefix string
	poll   time.Duration
}

// NewLocker creates a locker from an existing client.
func NewLocker(client *backend.Client, opts ...Option) *Locker {
	o := buildOptions(opts)
	return &Locker{client: client, prefix: o.prefix, poll: 25 * time.Millisecond}
}

// Lock acquires the lock for key, retrying until ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := strconv.FormatInt(time.Now().UnixNano(), 36)

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
