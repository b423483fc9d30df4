package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCooldownStoreContract runs a suite of tests to verify that a CooldownStore
// implementation adheres to the defined interface contract.
func RunCooldownStoreContract(t *testing.T, store CooldownStore) {
	ctx := context.Background()
	caster := "contract-caster-" + time.Now().Format("20060102150405")

	t.Run("Acquire then blocked", func(t *testing.T) {
		ok, err := store.Acquire(ctx, caster, "firebolt", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "first acquire should succeed")

		ok, err = store.Acquire(ctx, caster, "firebolt", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok, "second acquire should be blocked")

		remaining, err := store.Remaining(ctx, caster, "firebolt")
		require.NoError(t, err)
		assert.Greater(t, remaining, time.Duration(0))
		assert.LessOrEqual(t, remaining, time.Minute)
	})

	t.Run("Keys are per skill", func(t *testing.T) {
		ok, err := store.Acquire(ctx, caster, "frostbolt", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Reset", func(t *testing.T) {
		require.NoError(t, store.Reset(ctx, caster, "firebolt"))

		remaining, err := store.Remaining(ctx, caster, "firebolt")
		require.NoError(t, err)
		assert.Zero(t, remaining)

		ok, err := store.Acquire(ctx, caster, "firebolt", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Inactive", func(t *testing.T) {
		remaining, err := store.Remaining(ctx, "nobody-"+caster, "firebolt")
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})
}

// RunSkillRecordsContract runs a suite of tests to verify that a SkillRecords
// implementation adheres to the defined interface contract.
func RunSkillRecordsContract(t *testing.T, records SkillRecords) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405") + "-"
	a, b, c := prefix+"a", prefix+"b", prefix+"c"
	fire, ice := prefix+"firebolt", prefix+"icebolt"

	t.Run("Grant and Skills", func(t *testing.T) {
		require.NoError(t, records.Grant(ctx, a, fire, 2))
		require.NoError(t, records.Grant(ctx, a, ice, 1))

		skills, err := records.Skills(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{fire: 2, ice: 1}, skills)
	})

	t.Run("CountHolders is distinct", func(t *testing.T) {
		require.NoError(t, records.Grant(ctx, b, fire, 1))
		require.NoError(t, records.Grant(ctx, c, ice, 1))

		n, err := records.CountHolders(ctx, []string{fire})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = records.CountHolders(ctx, []string{fire, ice})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = records.CountHolders(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Revoke", func(t *testing.T) {
		require.NoError(t, records.Revoke(ctx, a, ice))

		skills, err := records.Skills(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{fire: 2}, skills)
	})

	t.Run("RevokeEverywhere", func(t *testing.T) {
		require.NoError(t, records.RevokeEverywhere(ctx, []string{fire}))

		n, err := records.CountHolders(ctx, []string{fire})
		require.NoError(t, err)
		assert.Zero(t, n)

		skills, err := records.Skills(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, skills)
	})
}
