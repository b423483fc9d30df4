package components

import "github.com/aretw0/skilltree/pkg/domain"

// Mechanic binds a mechanic node to its effect implementation.
type Mechanic struct {
	key      string
	settings domain.Settings
	apply    domain.EffectFunc
}

func (m *Mechanic) Category() domain.Category { return domain.CategoryMechanic }

// Key returns the effect key.
func (m *Mechanic) Key() string { return m.key }

// Apply runs the effect on one subject. Unbound mechanics do nothing.
func (m *Mechanic) Apply(c *domain.Cast, subject domain.Entity) error {
	if m.apply == nil {
		return nil
	}
	return m.apply(c, subject, m.settings)
}
