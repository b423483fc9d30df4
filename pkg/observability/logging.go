package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/skilltree/pkg/domain"
)

// LoggingHooks logs every cast at Info and every node transition at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter",
				"skill_id", e.SkillID,
				"caster_id", e.CasterID,
				"path", e.Path,
				"candidates", e.Candidates,
			)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_leave",
				"skill_id", e.SkillID,
				"path", e.Path,
				"passed", e.Passed,
			)
		},
		OnCast: func(ctx context.Context, e *domain.CastEvent) {
			logger.InfoContext(ctx, "cast",
				"skill_id", e.SkillID,
				"caster_id", e.CasterID,
				"level", e.Level,
				"success", e.Success,
				"reason", e.Reason,
				"duration", e.Duration,
			)
		},
	}
}
