package runtime

import (
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
)

func (in *Interpreter) base(c *domain.Cast, t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: in.now(),
		Type:      t,
		SkillID:   c.Skill.ID,
		CasterID:  c.Caster.ID(),
	}
}

func (in *Interpreter) emitNodeEnter(c *domain.Cast, n *domain.Node, candidates int) {
	if in.hooks.OnNodeEnter == nil {
		return
	}
	in.hooks.OnNodeEnter(c.Ctx, &domain.NodeEvent{
		EventBase:  in.base(c, domain.EventNodeEnter),
		Path:       n.Path,
		Category:   n.Category,
		Key:        n.Key,
		Candidates: candidates,
	})
}

func (in *Interpreter) emitNodeLeave(c *domain.Cast, n *domain.Node, candidates int, passed bool) {
	if in.hooks.OnNodeLeave == nil {
		return
	}
	in.hooks.OnNodeLeave(c.Ctx, &domain.NodeEvent{
		EventBase:  in.base(c, domain.EventNodeLeave),
		Path:       n.Path,
		Category:   n.Category,
		Key:        n.Key,
		Candidates: candidates,
		Passed:     passed,
	})
}

func (in *Interpreter) emitCast(c *domain.Cast, res Result, d time.Duration) {
	if in.hooks.OnCast == nil {
		return
	}
	in.hooks.OnCast(c.Ctx, &domain.CastEvent{
		EventBase: in.base(c, domain.EventCast),
		Level:     c.Level,
		Success:   res.Success,
		Reason:    res.Reason,
		Duration:  d,
	})
}
