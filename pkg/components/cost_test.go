package components_test

import (
	"testing"

	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costGate(t *testing.T, key string, raw map[string]any) domain.CostGate {
	t.Helper()
	g, ok := build(t, domain.CategoryCost, key, raw).(domain.CostGate)
	require.True(t, ok, "%s is not a cost gate", key)
	return g
}

func TestHealthCost_Floor(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		health float64
		ok     bool
		left   float64
	}{
		{"keeps one point", map[string]any{"health": 10.0}, 10, false, 10},
		{"leaves one point", map[string]any{"health": 9.0}, 10, true, 1},
		{"allow zero", map[string]any{"health": 10.0, "allow-zero": true}, 10, true, 0},
		{"allow zero still needs the health", map[string]any{"health": 11.0, "allow-zero": true}, 10, false, 10},
		{"nothing to pay", map[string]any{}, 10, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := entity.New("caster", entity.WithHealth(tt.health, 20))
			c := newCast(caster, nil)

			assert.Equal(t, tt.ok, costGate(t, "health", tt.raw).Consume(c))
			assert.Equal(t, tt.left, caster.Health())
		})
	}
}

func TestItemCost(t *testing.T) {
	t.Run("check only keeps items", func(t *testing.T) {
		caster := entity.New("caster", entity.WithItem("arrow", 2))
		g := costGate(t, "item", map[string]any{"item": "arrow", "quantity": 2.0, "check-only": true})

		assert.True(t, g.Consume(newCast(caster, nil)))
		assert.True(t, g.Consume(newCast(caster, nil)))
		assert.Equal(t, 2, caster.ItemCount("arrow"))
	})

	t.Run("consumes items", func(t *testing.T) {
		caster := entity.New("caster", entity.WithItem("arrow", 2))
		g := costGate(t, "item", map[string]any{"item": "Arrow", "quantity": 2.0})

		assert.True(t, g.Consume(newCast(caster, nil)))
		assert.Equal(t, 0, caster.ItemCount("arrow"))
		assert.False(t, g.Consume(newCast(caster, nil)))
	})

	t.Run("check only still requires items", func(t *testing.T) {
		caster := entity.New("caster", entity.WithItem("arrow", 1))
		g := costGate(t, "item", map[string]any{"item": "arrow", "quantity": 2.0, "check-only": true})

		assert.False(t, g.Consume(newCast(caster, nil)))
		assert.Equal(t, 1, caster.ItemCount("arrow"))
	})

	t.Run("quantity scales with level", func(t *testing.T) {
		caster := entity.New("caster", entity.WithItem("arrow", 3))
		g := costGate(t, "item", map[string]any{"item": "arrow", "quantity": 1.0, "quantity-per-level": 1.0})
		c := newCast(caster, nil)
		c.Level = 3

		assert.True(t, g.Consume(c))
		assert.Equal(t, 0, caster.ItemCount("arrow"))
	})
}

func TestItemCost_RequiresItem(t *testing.T) {
	s, err := domain.NewSettings(map[string]any{"quantity": 1.0})
	require.NoError(t, err)

	_, _, err = components.NewCatalog(nil).Build(domain.CategoryCost, "item", s)
	assert.Error(t, err)
}

func TestStaminaCost_AlwaysPays(t *testing.T) {
	caster := entity.New("caster", entity.WithMana(0, 0), entity.WithHealth(1, 20))
	g := costGate(t, "stamina", map[string]any{"stamina": 1000.0})

	assert.True(t, g.Consume(newCast(caster, nil)))
	assert.Equal(t, 1.0, caster.Health())
	assert.Equal(t, 0.0, caster.Mana())
}

func TestManaCost(t *testing.T) {
	caster := entity.New("caster", entity.WithMana(15, 50))
	g := costGate(t, "mana", map[string]any{"mana": 10.0})

	assert.True(t, g.Consume(newCast(caster, nil)))
	assert.Equal(t, 5.0, caster.Mana())
	assert.False(t, g.Consume(newCast(caster, nil)))
	assert.Equal(t, 5.0, caster.Mana())
}
