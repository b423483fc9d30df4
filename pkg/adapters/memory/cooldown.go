package memory

import (
	"context"
	"sync"
	"time"
)

type cooldownKey struct {
	caster string
	skill  string
}

// Cooldowns implements ports.CooldownStore in memory.
// Safe for concurrent use.
type Cooldowns struct {
	until map[cooldownKey]time.Time
	now   func() time.Time
	mu    sync.Mutex
}

// CooldownOption configures Cooldowns.
type CooldownOption func(*Cooldowns)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CooldownOption {
	return func(c *Cooldowns) {
		c.now = now
	}
}

// NewCooldowns creates a new in-memory cooldown table.
func NewCooldowns(opts ...CooldownOption) *Cooldowns {
	c := &Cooldowns{
		until: make(map[cooldownKey]time.Time),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remaining returns the time left on the cooldown.
func (c *Cooldowns) Remaining(ctx context.Context, casterID, skillID string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining(cooldownKey{casterID, skillID}), nil
}

func (c *Cooldowns) remaining(k cooldownKey) time.Duration {
	until, ok := c.until[k]
	if !ok {
		return 0
	}
	left := until.Sub(c.now())
	if left <= 0 {
		delete(c.until, k)
		return 0
	}
	return left
}

// Acquire starts the cooldown unless one is active.
func (c *Cooldowns) Acquire(ctx context.Context, casterID, skillID string, ttl time.Duration) (bool, error) {
	k := cooldownKey{casterID, skillID}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining(k) > 0 {
		return false, nil
	}
	if ttl > 0 {
		c.until[k] = c.now().Add(ttl)
	}
	return true, nil
}

// Reset clears the cooldown.
func (c *Cooldowns) Reset(ctx context.Context, casterID, skillID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.until, cooldownKey{casterID, skillID})
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (c *Cooldowns) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, until := range c.until {
		if !until.After(now) {
			delete(c.until, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked cooldowns, expired or not.
func (c *Cooldowns) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.until)
}
