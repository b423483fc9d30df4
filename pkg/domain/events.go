package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
	EventCast      EventType = "cast"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SkillID   string    `json:"skill_id"`
	CasterID  string    `json:"caster_id"`
}

// NodeEvent represents entry into or exit from a node during traversal.
type NodeEvent struct {
	EventBase
	Path       string   `json:"path"`
	Category   Category `json:"category"`
	Key        string   `json:"key,omitempty"`
	Candidates int      `json:"candidates"`
	Passed     bool     `json:"passed,omitempty"`
}

// CastEvent reports the outcome of a whole cast.
type CastEvent struct {
	EventBase
	Level    int           `json:"level"`
	Success  bool          `json:"success"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
	OnCast      func(context.Context, *CastEvent)
}

// Merge returns hooks that call h first and then o.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: chain(h.OnNodeEnter, o.OnNodeEnter),
		OnNodeLeave: chain(h.OnNodeLeave, o.OnNodeLeave),
		OnCast:      chain(h.OnCast, o.OnCast),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
