package passive_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/aretw0/skilltree/pkg/passive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	mu      sync.Mutex
	calls   []string
	missing map[string]bool
}

func (f *fakeApplier) ApplyPassive(_ context.Context, caster domain.Caster, skillID string, level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[skillID] {
		return fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skillID)
	}
	f.calls = append(f.calls, fmt.Sprintf("%s/%s@%d", caster.ID(), skillID, level))
	return nil
}

func (f *fakeApplier) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestManager_EquipAndReapply(t *testing.T) {
	app := &fakeApplier{missing: map[string]bool{}}
	m := passive.NewManager(app)
	ctx := context.Background()
	alex := entity.New("alex")
	steve := entity.New("steve")

	require.NoError(t, m.Equip(ctx, steve, "regen", 1))
	require.NoError(t, m.Equip(ctx, alex, "thorns", 2))
	require.NoError(t, m.Equip(ctx, steve, "regen", 3))

	assert.Equal(t, map[string]int{"regen": 3}, m.Active("steve"))

	assert.Equal(t, 2, m.Reapply(ctx))
	assert.Equal(t, []string{
		"steve/regen@1", "alex/thorns@2", "steve/regen@3",
		"alex/thorns@2", "steve/regen@3",
	}, app.Calls())
}

func TestManager_EquipFailureIsNotRecorded(t *testing.T) {
	app := &fakeApplier{missing: map[string]bool{"ghost": true}}
	m := passive.NewManager(app)

	err := m.Equip(context.Background(), entity.New("alex"), "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrSkillNotFound)
	assert.Empty(t, m.Active("alex"))
}

func TestManager_ReapplyDropsRemovedSkills(t *testing.T) {
	app := &fakeApplier{missing: map[string]bool{}}
	m := passive.NewManager(app)
	ctx := context.Background()
	alex := entity.New("alex")

	require.NoError(t, m.Equip(ctx, alex, "regen", 1))
	require.NoError(t, m.Equip(ctx, alex, "thorns", 1))

	app.mu.Lock()
	app.missing["thorns"] = true
	app.mu.Unlock()

	assert.Equal(t, 1, m.Reapply(ctx))
	assert.Equal(t, map[string]int{"regen": 1}, m.Active("alex"))
}

func TestManager_ForgetAndUnequip(t *testing.T) {
	m := passive.NewManager(&fakeApplier{})
	ctx := context.Background()

	require.NoError(t, m.Equip(ctx, entity.New("alex"), "regen", 1))
	require.NoError(t, m.Equip(ctx, entity.New("steve"), "regen", 1))
	require.NoError(t, m.Equip(ctx, entity.New("steve"), "thorns", 1))

	m.Forget("regen")
	assert.Empty(t, m.Active("alex"))
	assert.Equal(t, map[string]int{"thorns": 1}, m.Active("steve"))

	m.Unequip("steve", "thorns")
	assert.Empty(t, m.Active("steve"))
}

func TestManager_Run(t *testing.T) {
	app := &fakeApplier{}
	m := passive.NewManager(app, passive.WithInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Equip(ctx, entity.New("alex"), "regen", 1))

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	assert.Eventually(t, func() bool { return len(app.Calls()) >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
