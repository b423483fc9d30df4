package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "skilltree:"

// Option configures the Redis adapters.
type Option func(*options)

type options struct {
	prefix string
}

// WithPrefix sets the key prefix shared by every key the adapter writes.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func buildOptions(opts []Option) options {
	o := options{prefix: defaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient opens a go-redis client for the given address.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// Cooldowns implements ports.CooldownStore using Redis keys that expire with
// the cooldown. Acquire is a single SET NX PX, so several engine instances
// sharing one Redis never double-start a cooldown.
type Cooldowns struct {
	client *backend.Client
	prefix string
}

// NewCooldowns creates a cooldown store from an existing client.
func NewCooldowns(client *backend.Client, opts ...Option) *Cooldowns {
	o := buildOptions(opts)
	return &Cooldowns{client: client, prefix: o.prefix}
}

func (c *Cooldowns) key(casterID, skillID string) string {
	return c.prefix + "cooldown:" + casterID + ":" + skillID
}

// Remaining returns the key's remaining TTL.
func (c *Cooldowns) Remaining(ctx context.Context, casterID, skillID string) (time.Duration, error) {
	ttl, err := c.client.PTTL(ctx, c.key(casterID, skillID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis error reading cooldown: %w", err)
	}
	// -2: missing key, -1: no expiry (never written by this adapter).
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

// Acquire starts the cooldown unless one is active.
func (c *Cooldowns) Acquire(ctx context.Context, casterID, skillID string, ttl time.Duration) (bool, error) {
	if ttl < time.Millisecond {
		remaining, err := c.Remaining(ctx, casterID, skillID)
		return remaining == 0, err
	}

	val := strconv.FormatInt(time.Now().Add(ttl).UnixMilli(), 10)
	ok, err := c.client.SetNX(ctx, c.key(casterID, skillID), val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis error acquiring cooldown: %w", err)
	}
	return ok, nil
}

// Reset deletes the cooldown key.
func (c *Cooldowns) Reset(ctx context.Context, casterID, skillID string) error {
	if err := c.client.Del(ctx, c.key(casterID, skillID)).Err(); err != nil {
		return fmt.Errorf("redis error clearing cooldown: %w", err)
	}
	return nil
}
