package redis

import (
	"context"
	"fmt"
	"strconv"

	backend "github.com/redis/go-redis/v9"
)

// Records implements ports.SkillRecords using Redis.
//
// Layout:
//   - <prefix>caster:<casterID>  HASH skillID → level
//   - <prefix>holders:<skillID>  SET of casterIDs (reverse index)
type Records struct {
	client *backend.Client
	prefix string
}

// NewRecords creates a record store from an existing client.
func NewRecords(client *backend.Client, opts ...Option) *Records {
	o := buildOptions(opts)
	return &Records{client: client, prefix: o.prefix}
}

func (r *Records) casterKey(casterID string) string {
	return r.prefix + "caster:" + casterID
}

func (r *Records) holdersKey(skillID string) string {
	return r.prefix + "holders:" + skillID
}

// Grant writes the level and the reverse index entry in one transaction.
func (r *Records) Grant(ctx context.Context, casterID, skillID string, level int) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.casterKey(casterID), skillID, level)
	pipe.SAdd(ctx, r.holdersKey(skillID), casterID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to grant skill in redis: %w", err)
	}
	return nil
}

// Revoke removes the skill from the caster.
func (r *Records) Revoke(ctx context.Context, casterID, skillID string) error {
	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, r.casterKey(casterID), skillID)
	pipe.SRem(ctx, r.holdersKey(skillID), casterID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke skill in redis: %w", err)
	}
	return nil
}

// Skills reads the caster hash.
func (r *Records) Skills(ctx context.Context, casterID string) (map[string]int, error) {
	raw, err := r.client.HGetAll(ctx, r.casterKey(casterID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read skills from redis: %w", err)
	}
	skills := make(map[string]int, len(raw))
	for id, v := range raw {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt level for %s/%s: %w", casterID, id, err)
		}
		skills[id] = level
	}
	return skills, nil
}

// CountHolders is the cardinality of SUNION over the holder sets.
func (r *Records) CountHolders(ctx context.Context, skillIDs []string) (int, error) {
	if len(skillIDs) == 0 {
		return 0, nil
	}
	keys := make([]string, len(skillIDs))
	for i, id := range skillIDs {
		keys[i] = r.holdersKey(id)
	}
	members, err := r.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count holders in redis: %w", err)
	}
	return len(members), nil
}

// RevokeEverywhere drops the skills from every holder and deletes the index.
func (r *Records) RevokeEverywhere(ctx context.Context, skillIDs []string) error {
	for _, skillID := range skillIDs {
		holders, err := r.client.SMembers(ctx, r.holdersKey(skillID)).Result()
		if err != nil {
			return fmt.Errorf("failed to list holders of %s: %w", skillID, err)
		}

		pipe := r.client.TxPipeline()
		for _, casterID := range holders {
			pipe.HDel(ctx, r.casterKey(casterID), skillID)
		}
		pipe.Del(ctx, r.holdersKey(skillID))
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to revoke %s in redis: %w", skillID, err)
		}
	}
	return nil
}
