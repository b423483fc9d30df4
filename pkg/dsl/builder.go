package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
)

// Builder manages the construction of a skill set.
type Builder struct {
	skills map[string]*SkillBuilder
}

// New creates a new skill set builder.
func New() *Builder {
	return &Builder{
		skills: make(map[string]*SkillBuilder),
	}
}

// Add creates a new skill in the set.
// If the skill already exists, it returns the existing builder.
func (b *Builder) Add(id string) *SkillBuilder {
	if sb, ok := b.skills[id]; ok {
		return sb
	}
	sb := &SkillBuilder{raw: domain.RawSkill{ID: id}}
	b.skills[id] = sb
	return sb
}

// Skills returns the built documents ordered by ID.
func (b *Builder) Skills() []domain.RawSkill {
	out := make([]domain.RawSkill, 0, len(b.skills))
	for _, sb := range b.skills {
		out = append(out, sb.Build())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Build serializes the set into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromSkills(b.Skills()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// SkillBuilder configures one skill document.
type SkillBuilder struct {
	raw   domain.RawSkill
	roots []*NodeBuilder
}

// Name sets the display name.
func (s *SkillBuilder) Name(name string) *SkillBuilder {
	s.raw.Name = name
	return s
}

// Description sets the description.
func (s *SkillBuilder) Description(text string) *SkillBuilder {
	s.raw.Description = text
	return s
}

// Passive marks the skill as applied on equip rather than cast.
func (s *SkillBuilder) Passive() *SkillBuilder {
	s.raw.Class = string(domain.SkillPassive)
	return s
}

// MaxLevel caps the level casts are clamped to. Zero means unbounded.
func (s *SkillBuilder) MaxLevel(n int) *SkillBuilder {
	s.raw.MaxLevel = n
	return s
}

// Components appends root nodes. A valid skill has exactly one trigger root.
func (s *SkillBuilder) Components(roots ...*NodeBuilder) *SkillBuilder {
	s.roots = append(s.roots, roots...)
	return s
}

// Build returns the document.
func (s *SkillBuilder) Build() domain.RawSkill {
	out := s.raw
	out.Components = make([]domain.RawNode, len(s.roots))
	for i, r := range s.roots {
		out.Components[i] = r.Build()
	}
	return out
}
