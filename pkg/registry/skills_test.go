package registry_test

import (
	"context"
	"testing"

	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skill(id string) *domain.Skill {
	return &domain.Skill{
		ID:    id,
		Class: domain.SkillActive,
		Tree: &domain.Tree{Nodes: []domain.Node{{
			Category: domain.CategoryTrigger,
			Key:      "cast",
			Parent:   domain.NoParent,
			Path:     "trigger[0]",
		}}},
	}
}

func TestSkills_RegisterGet(t *testing.T) {
	reg := registry.NewSkills()
	require.NoError(t, reg.Register(skill("firebolt")))
	require.NoError(t, reg.Register(skill("heal")))

	got, err := reg.Get("firebolt")
	require.NoError(t, err)
	assert.Equal(t, "firebolt", got.ID)

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSkillNotFound)

	ids := []string{}
	for _, s := range reg.List() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"firebolt", "heal"}, ids)

	assert.Error(t, reg.Register(&domain.Skill{ID: "empty"}))
	assert.Error(t, reg.Register(nil))
}

func TestSkills_ReloadWithCleanup(t *testing.T) {
	ctx := context.Background()
	records := memory.NewRecords()
	reg := registry.NewSkills(registry.WithRecords(records))

	require.NoError(t, reg.Register(skill("firebolt")))
	require.NoError(t, reg.Register(skill("heal")))

	for _, caster := range []string{"alex", "steve", "notch"} {
		require.NoError(t, records.Grant(ctx, caster, "firebolt", 1))
	}
	require.NoError(t, records.Grant(ctx, "alex", "heal", 2))
	require.NoError(t, records.Grant(ctx, "herobrine", "heal", 1))

	report, err := reg.ReloadWithCleanup(ctx, []*domain.Skill{skill("heal"), skill("blink")})
	require.NoError(t, err)

	assert.Equal(t, 2, report.LoadedCount)
	assert.Equal(t, []string{"firebolt"}, report.RemovedIDs)
	assert.Equal(t, 3, report.AffectedCasterCount)

	_, err = reg.Get("firebolt")
	assert.ErrorIs(t, err, domain.ErrSkillNotFound)
	_, err = reg.Get("blink")
	assert.NoError(t, err)
}

func TestSkills_ReloadNothingRemoved(t *testing.T) {
	reg := registry.NewSkills()
	require.NoError(t, reg.Register(skill("heal")))

	report, err := reg.ReloadWithCleanup(context.Background(), []*domain.Skill{skill("heal")})
	require.NoError(t, err)
	assert.Empty(t, report.RemovedIDs)
	assert.Zero(t, report.AffectedCasterCount)
}

func TestSkills_ReloadRejectsInvalid(t *testing.T) {
	reg := registry.NewSkills()
	require.NoError(t, reg.Register(skill("heal")))

	_, err := reg.ReloadWithCleanup(context.Background(), []*domain.Skill{{ID: "broken"}})
	assert.ErrorIs(t, err, domain.ErrEmptyTree)
	assert.Equal(t, 1, reg.Len(), "a rejected reload leaves the registry untouched")
}
