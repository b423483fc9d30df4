package registry_test

import (
	"testing"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/aretw0/skilltree/pkg/registry"
	"github.com/aretw0/skilltree/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffects(t *testing.T) {
	reg := registry.NewEffects()

	var hit []string
	reg.RegisterWithSchema("Damage", func(_ *domain.Cast, subject domain.Entity, s domain.Settings) error {
		hit = append(hit, subject.ID())
		return nil
	}, schema.Schema{"amount": schema.Required(schema.Float())})
	reg.Register("ignite", func(*domain.Cast, domain.Entity, domain.Settings) error { return nil })

	fn, s, ok := reg.Effect("damage")
	require.True(t, ok, "keys are case-insensitive")
	assert.NotNil(t, fn)
	assert.Contains(t, s, "amount")

	assert.Equal(t, []string{"damage", "ignite"}, reg.Keys())

	require.NoError(t, reg.Apply("damage", &domain.Cast{}, entity.New("zombie"), nil))
	assert.Equal(t, []string{"zombie"}, hit)

	assert.Error(t, reg.Apply("unknown", &domain.Cast{}, entity.New("zombie"), nil))
}
