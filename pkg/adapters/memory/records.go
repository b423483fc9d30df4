package memory

import (
	"context"
	"maps"
	"sync"
)

// Records implements ports.SkillRecords in memory.
// Safe for concurrent use.
type Records struct {
	casters map[string]map[string]int
	mu      sync.RWMutex
}

// NewRecords creates an empty record table.
func NewRecords() *Records {
	return &Records{
		casters: make(map[string]map[string]int),
	}
}

// Grant records the skill level for the caster.
func (r *Records) Grant(ctx context.Context, casterID, skillID string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skills, ok := r.casters[casterID]
	if !ok {
		skills = make(map[string]int)
		r.casters[casterID] = skills
	}
	skills[skillID] = level
	return nil
}

// Revoke removes the skill from the caster.
func (r *Records) Revoke(ctx context.Context, casterID, skillID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if skills, ok := r.casters[casterID]; ok {
		delete(skills, skillID)
		if len(skills) == 0 {
			delete(r.casters, casterID)
		}
	}
	return nil
}

// Skills returns a copy of the caster's skills.
func (r *Records) Skills(ctx context.Context, casterID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.casters[casterID]))
	maps.Copy(out, r.casters[casterID])
	return out, nil
}

// CountHolders counts casters holding at least one of skillIDs.
func (r *Records) CountHolders(ctx context.Context, skillIDs []string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, skills := range r.casters {
		for _, id := range skillIDs {
			if _, ok := skills[id]; ok {
				n++
				break
			}
		}
	}
	return n, nil
}

// RevokeEverywhere removes the skills from every caster.
func (r *Records) RevokeEverywhere(ctx context.Context, skillIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for casterID, skills := range r.casters {
		for _, id := range skillIDs {
			delete(skills, id)
		}
		if len(skills) == 0 {
			delete(r.casters, casterID)
		}
	}
	return nil
}
