// Package passive keeps track of the passive skills each caster has equipped
// and reapplies them periodically.
package passive

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/skilltree/internal/logging"
	"github.com/aretw0/skilltree/pkg/domain"
)

// DefaultInterval is the reapplication period used by Run.
const DefaultInterval = 5 * time.Second

// Applier runs a passive skill's tree for a caster.
type Applier interface {
	ApplyPassive(ctx context.Context, caster domain.Caster, skillID string, level int) error
}

type entry struct {
	caster domain.Caster
	level  int
}

// Manager is the per-caster active passive table. The table is shared between
// the game loop (Equip, Unequip) and the maintenance goroutine (Run), so it is
// internally synchronized.
type Manager struct {
	applier  Applier
	logger   *slog.Logger
	interval time.Duration

	mu     sync.Mutex
	active map[string]map[string]entry
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithInterval sets the reapplication period.
func WithInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewManager creates a manager applying skills through applier.
func NewManager(applier Applier, opts ...Option) *Manager {
	m := &Manager{
		applier:  applier,
		interval: DefaultInterval,
		active:   make(map[string]map[string]entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	return m
}

// Equip applies the skill once and records it for reapplication. Calling it
// again for the same skill updates the level, which is how level-ups are applied.
func (m *Manager) Equip(ctx context.Context, caster domain.Caster, skillID string, level int) error {
	if err := m.applier.ApplyPassive(ctx, caster, skillID, level); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	skills, ok := m.active[caster.ID()]
	if !ok {
		skills = make(map[string]entry)
		m.active[caster.ID()] = skills
	}
	skills[skillID] = entry{caster: caster, level: level}
	return nil
}

// Unequip stops reapplying the skill for the caster.
func (m *Manager) Unequip(casterID, skillID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if skills, ok := m.active[casterID]; ok {
		delete(skills, skillID)
		if len(skills) == 0 {
			delete(m.active, casterID)
		}
	}
}

// Active returns the caster's equipped passives and their levels.
func (m *Manager) Active(casterID string) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.active[casterID]))
	for id, e := range m.active[casterID] {
		out[id] = e.level
	}
	return out
}

// Forget drops the skills from every caster, e.g. after a reload removed them.
func (m *Manager) Forget(skillIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for casterID, skills := range m.active {
		for _, id := range skillIDs {
			delete(skills, id)
		}
		if len(skills) == 0 {
			delete(m.active, casterID)
		}
	}
}

type job struct {
	skillID string
	entry
}

func (m *Manager) snapshot() []job {
	m.mu.Lock()
	defer m.mu.Unlock()
	var jobs []job
	for _, skills := range m.active {
		for id, e := range skills {
			jobs = append(jobs, job{skillID: id, entry: e})
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].caster.ID() != jobs[j].caster.ID() {
			return jobs[i].caster.ID() < jobs[j].caster.ID()
		}
		return jobs[i].skillID < jobs[j].skillID
	})
	return jobs
}

// Reapply runs every equipped passive once and returns how many were applied.
// Skills that no longer exist are forgotten.
func (m *Manager) Reapply(ctx context.Context) int {
	applied := 0
	for _, j := range m.snapshot() {
		if ctx.Err() != nil {
			break
		}
		err := m.applier.ApplyPassive(ctx, j.caster, j.skillID, j.level)
		switch {
		case err == nil:
			applied++
		case errors.Is(err, domain.ErrSkillNotFound), errors.Is(err, domain.ErrNotPassive):
			m.logger.Warn("dropping passive", "skill", j.skillID, "caster", j.caster.ID(), "err", err)
			m.Unequip(j.caster.ID(), j.skillID)
		default:
			m.logger.Error("passive reapplication failed", "skill", j.skillID, "caster", j.caster.ID(), "err", err)
		}
	}
	return applied
}

// Run reapplies passives every interval until ctx is canceled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Debug("passive maintenance started", "interval", m.interval)
	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("passive maintenance stopped")
			return nil
		case <-ticker.C:
			m.Reapply(ctx)
		}
	}
}
