package http

import (
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
)

// SkillSummary is the list view of a skill.
type SkillSummary struct {
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	Class    domain.SkillClass `json:"class"`
	MaxLevel int               `json:"max_level"`
	Nodes    int               `json:"nodes"`
	Depth    int               `json:"depth"`
}

// SkillDetail is a skill with its compiled tree.
type SkillDetail struct {
	SkillSummary
	Description string     `json:"description,omitempty"`
	Source      string     `json:"source,omitempty"`
	Tree        []NodeView `json:"tree"`
}

// NodeView is one compiled node.
type NodeView struct {
	Index    int             `json:"index"`
	Category domain.Category `json:"category"`
	Key      string          `json:"key,omitempty"`
	Path     string          `json:"path"`
	Settings map[string]any  `json:"settings,omitempty"`
	Children []int           `json:"children,omitempty"`
}

// ComponentView describes one catalog entry and the settings it accepts.
type ComponentView struct {
	Category domain.Category `json:"category"`
	Key      string          `json:"key"`
	Summary  string          `json:"summary,omitempty"`
	Settings schema.Schema   `json:"settings,omitempty"`
}

// CastRequest is the body of POST /skills/{id}/cast. Level defaults to 1.
type CastRequest struct {
	CasterID string `json:"caster_id"`
	Level    int    `json:"level"`
}

// CastResponse reports the cast outcome.
type CastResponse struct {
	SkillID          string  `json:"skill_id"`
	CasterID         string  `json:"caster_id"`
	Success          bool    `json:"success"`
	Reason           string  `json:"reason,omitempty"`
	Applied          int     `json:"applied"`
	RemainingSeconds float64 `json:"remaining_seconds,omitempty"`
}

// EventRequest is the optional body of POST /casters/{id}/events/{event}.
// SubjectID defaults to the caster.
type EventRequest struct {
	SubjectID string `json:"subject_id"`
}

func summarize(s *domain.Skill) SkillSummary {
	sum := SkillSummary{ID: s.ID, Name: s.Name, Class: s.Class, MaxLevel: s.MaxLevel}
	if s.Tree != nil {
		sum.Nodes = len(s.Tree.Nodes)
		sum.Depth = s.Tree.MaxDepth()
	}
	return sum
}

func detail(s *domain.Skill) SkillDetail {
	d := SkillDetail{SkillSummary: summarize(s), Description: s.Description, Source: s.Source}
	if s.Tree == nil {
		return d
	}
	d.Tree = make([]NodeView, len(s.Tree.Nodes))
	for i, n := range s.Tree.Nodes {
		d.Tree[i] = NodeView{
			Index:    n.Index,
			Category: n.Category,
			Key:      n.Key,
			Path:     n.Path,
			Settings: n.Settings.Map(),
			Children: n.Children,
		}
	}
	return d
}
