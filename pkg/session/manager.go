package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/skilltree/internal/logging"
	"github.com/aretw0/skilltree/pkg/ports"
)

// DefaultTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultTTL = 10 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager hands out per-caster locks.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.CasterLocker
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.CasterLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithTTL sets the distributed lock TTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking it.
func (m *Manager) acquire(casterID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[casterID]
	if !ok {
		entry = &lockEntry{}
		m.locks[casterID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(casterID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[casterID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, casterID)
	}
}

// Len returns how many casters currently hold or wait on a lock.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// WithLock runs fn while holding the caster's lock. fn must not start another
// cast of the same caster.
func (m *Manager) WithLock(ctx context.Context, casterID string, fn func(context.Context) error) error {
	entry := m.acquire(casterID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(casterID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, "caster:"+casterID, m.ttl)
		if err != nil {
			return fmt.Errorf("lock caster %s: %w", casterID, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release caster lock (will expire via TTL)",
					"caster", casterID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
