package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/skilltree/internal/logging"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/ports"
)

// ReloadReport summarizes a diffing reload.
type ReloadReport struct {
	LoadedCount int      `json:"loaded_count"`
	RemovedIDs  []string `json:"removed_ids"`
	// AffectedCasterCount is the number of distinct casters holding at least
	// one removed skill.
	AffectedCasterCount int `json:"affected_caster_count"`
	// RevokedIDs lists the removed skills whose records were dropped. It is
	// filled by the engine, not by ReloadWithCleanup.
	RevokedIDs []string `json:"revoked_ids,omitempty"`
}

// Skills stores validated skill definitions. Definitions are immutable and
// replaced wholesale, so readers may keep a *domain.Skill across a reload.
type Skills struct {
	mu      sync.RWMutex
	skills  map[string]*domain.Skill
	records ports.SkillRecords
	logger  *slog.Logger
}

// Option configures Skills.
type Option func(*Skills)

// WithRecords sets the caster records consulted by ReloadWithCleanup.
func WithRecords(records ports.SkillRecords) Option {
	return func(s *Skills) {
		s.records = records
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Skills) {
		s.logger = logger
	}
}

// NewSkills creates an empty skill registry.
func NewSkills(opts ...Option) *Skills {
	s := &Skills{skills: make(map[string]*domain.Skill)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

func checkSkill(skill *domain.Skill) error {
	if skill == nil || skill.ID == "" {
		return errors.New("skill definition without id")
	}
	if skill.Tree == nil || len(skill.Tree.Nodes) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEmptyTree, skill.ID)
	}
	return nil
}

// Register installs a definition, replacing any previous one with the same ID.
func (s *Skills) Register(skill *domain.Skill) error {
	if err := checkSkill(skill); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills[skill.ID] = skill
	return nil
}

// Get returns a definition by ID.
func (s *Skills) Get(id string) (*domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skill, ok := s.skills[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSkillNotFound, id)
	}
	return skill, nil
}

// List returns every definition ordered by ID.
func (s *Skills) List() []*domain.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Skill, 0, len(s.skills))
	for _, skill := range s.skills {
		out = append(out, skill)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of installed definitions.
func (s *Skills) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.skills)
}

// ReloadWithCleanup replaces the whole set of definitions with defs and
// reports which previously installed skills disappeared and how many caster
// records reference them. Revoking those records is left to the caller.
func (s *Skills) ReloadWithCleanup(ctx context.Context, defs []*domain.Skill) (ReloadReport, error) {
	next := make(map[string]*domain.Skill, len(defs))
	for _, skill := range defs {
		if err := checkSkill(skill); err != nil {
			return ReloadReport{}, err
		}
		next[skill.ID] = skill
	}

	s.mu.Lock()
	removed := []string{}
	for id := range s.skills {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}
	s.skills = next
	s.mu.Unlock()

	sort.Strings(removed)
	report := ReloadReport{LoadedCount: len(next), RemovedIDs: removed}

	if s.records != nil && len(removed) > 0 {
		n, err := s.records.CountHolders(ctx, removed)
		if err != nil {
			return report, fmt.Errorf("failed to count affected casters: %w", err)
		}
		report.AffectedCasterCount = n
	}

	s.logger.Info("skills reloaded",
		"loaded", report.LoadedCount,
		"removed", len(report.RemovedIDs),
		"affected_casters", report.AffectedCasterCount)
	return report, nil
}
