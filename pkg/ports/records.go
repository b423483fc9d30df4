package ports

import "context"

// SkillRecords owns the caster → acquired skills table.
type SkillRecords interface {
	// Grant records that the caster holds the skill at level.
	Grant(ctx context.Context, casterID, skillID string, level int) error

	// Revoke removes the skill from the caster.
	Revoke(ctx context.Context, casterID, skillID string) error

	// Skills returns the caster's skills and their levels.
	Skills(ctx context.Context, casterID string) (map[string]int, error)

	// CountHolders returns the number of distinct casters holding any of skillIDs.
	CountHolders(ctx context.Context, skillIDs []string) (int, error)

	// RevokeEverywhere removes the skills from every caster.
	RevokeEverywhere(ctx context.Context, skillIDs []string) error
}
