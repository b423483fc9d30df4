package components

import (
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
)

// Relation is a filter predicate over the caster/subject relationship.
type Relation struct {
	name string
	test func(caster, subject domain.Entity) bool
}

func (r *Relation) Category() domain.Category { return domain.CategoryFilter }

func (r *Relation) Test(c *domain.Cast, subject domain.Entity) bool {
	return r.test(c.Caster, subject)
}

func (r *Relation) String() string { return r.name }

var relations = []struct {
	key     string
	summary string
	test    func(caster, subject domain.Entity) bool
}{
	{"hostile", "non-human entities other than the caster", hostile},
	{"ally", "human entities other than the caster", func(caster, subject domain.Entity) bool {
		return subject.ID() != caster.ID() && subject.Human()
	}},
	{"human", "person-controlled entities, caster included", func(_, subject domain.Entity) bool {
		return subject.Human()
	}},
	{"exclude-caster", "everything but the caster", func(caster, subject domain.Entity) bool {
		return subject.ID() != caster.ID()
	}},
	{"alive", "living entities", func(_, subject domain.Entity) bool {
		return subject.Alive()
	}},
}

func filterSpecs() []Spec {
	specs := make([]Spec, 0, len(relations))
	for _, rel := range relations {
		specs = append(specs, predicateSpec(domain.CategoryFilter, rel.key, rel.summary, schema.Schema{},
			func(domain.Settings) (domain.Component, error) {
				return &Relation{name: rel.key, test: rel.test}, nil
			}))
	}
	return specs
}
