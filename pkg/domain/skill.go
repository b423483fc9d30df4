package domain

// SkillClass distinguishes manually cast skills from passive ones.
type SkillClass string

const (
	SkillActive  SkillClass = "active"
	SkillPassive SkillClass = "passive"
)

// Skill is a validated skill definition. It is replaced wholesale on reload
// and never mutated after registration.
type Skill struct {
	ID          string
	Name        string
	Description string
	Class       SkillClass
	MaxLevel    int
	Tree        *Tree
	// Source is where the definition was loaded from, for diagnostics.
	Source string
}

// Passive reports whether the skill is applied on equip rather than cast.
func (s *Skill) Passive() bool { return s.Class == SkillPassive }

// ClampLevel bounds level into [1, MaxLevel].
func (s *Skill) ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if s.MaxLevel > 0 && level > s.MaxLevel {
		return s.MaxLevel
	}
	return level
}
