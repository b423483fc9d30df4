package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/aretw0/skilltree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCooldowns_Contract(t *testing.T) {
	ports.RunCooldownStoreContract(t, memory.NewCooldowns())
}

func TestMemoryRecords_Contract(t *testing.T) {
	ports.RunSkillRecordsContract(t, memory.NewRecords())
}

func TestMemoryCooldowns_Expiry(t *testing.T) {
	now := time.Unix(1000, 0)
	store := memory.NewCooldowns(memory.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "steve", "firebolt", 3*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Second)
	remaining, err := store.Remaining(ctx, "steve", "firebolt")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, remaining)

	now = now.Add(2 * time.Second)
	ok, err = store.Acquire(ctx, "steve", "firebolt", 3*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "cooldown ends exactly at its deadline")
}

func TestMemoryCooldowns_Sweep(t *testing.T) {
	now := time.Unix(1000, 0)
	store := memory.NewCooldowns(memory.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, _ = store.Acquire(ctx, "a", "firebolt", time.Second)
	_, _ = store.Acquire(ctx, "b", "firebolt", time.Minute)
	_, _ = store.Acquire(ctx, "c", "firebolt", 0)
	assert.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestWorld_Nearby(t *testing.T) {
	a := entity.New("a", entity.At(0, 0, 0))
	b := entity.New("b", entity.At(3, 0, 0))
	c := entity.New("c", entity.At(10, 0, 0))
	w := memory.NewWorld(c, b, a)

	got := w.Nearby(domain.Vec3{}, 3)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID())
	assert.Equal(t, "b", got[1].ID())

	w.Remove("b")
	assert.Len(t, w.Nearby(domain.Vec3{}, 3), 1)
}

func TestWorld_TimeWraps(t *testing.T) {
	w := memory.NewWorld()
	w.SetTime(domain.DayTicks + 500)
	assert.Equal(t, int64(500), w.Time())
	w.SetTime(-1)
	assert.Equal(t, int64(domain.DayTicks-1), w.Time())
}
