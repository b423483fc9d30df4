package grammar_test

import (
	"testing"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/grammar"
	"github.com/stretchr/testify/assert"
)

func TestGrammar_ParentChildViewsAgree(t *testing.T) {
	for _, p := range domain.Categories {
		for _, c := range domain.Categories {
			place := grammar.CanPlace(p, c)
			asChild := grammar.AllowedChildren(p).Has(c)
			asParent := grammar.AllowedParents(c).Has(p)

			assert.Equal(t, asChild, place, "canPlace(%s, %s) disagrees with allowedChildren", p, c)
			assert.Equal(t, asParent, place, "canPlace(%s, %s) disagrees with allowedParents", p, c)
		}
	}
}

func TestGrammar_OnlyTriggerIsRoot(t *testing.T) {
	for _, c := range domain.Categories {
		assert.Equal(t, c == domain.CategoryTrigger, grammar.CanBeRoot(c), c.Tag())
	}
}

func TestGrammar_Caps(t *testing.T) {
	assert.Equal(t, 1, grammar.MaxCount(domain.CategoryTrigger))
	assert.Equal(t, 1, grammar.MaxCount(domain.CategoryCost))
	assert.Equal(t, 1, grammar.MaxCount(domain.CategoryCooldown))
	assert.Equal(t, grammar.Unbounded, grammar.MaxCount(domain.CategoryTarget))
	assert.Equal(t, grammar.Unbounded, grammar.MaxCount(domain.CategoryMechanic))
}

func TestGrammar_GatesAreLeaves(t *testing.T) {
	assert.True(t, grammar.AllowedChildren(domain.CategoryCost).Empty())
	assert.True(t, grammar.AllowedChildren(domain.CategoryCooldown).Empty())
	assert.False(t, grammar.CanPlace(domain.CategoryTarget, domain.CategoryCost))
	assert.True(t, grammar.CanPlace(domain.CategoryTrigger, domain.CategoryCooldown))
}

func TestGrammar_TriggerDoesNotHoldMechanics(t *testing.T) {
	assert.False(t, grammar.CanPlace(domain.CategoryTrigger, domain.CategoryMechanic))
	assert.False(t, grammar.CanPlace(domain.CategoryTrigger, domain.CategoryCondition))
}
