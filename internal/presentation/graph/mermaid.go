package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/skilltree/pkg/domain"
)

// Overlay contains traversal state to visualize on the graph, keyed by node path.
type Overlay struct {
	Passed []string
	Failed []string
}

// GenerateMermaid produces a Mermaid flowchart for a compiled skill tree.
// It applies semantic styling:
// - Trigger: ((Circle))
// - Cost/Cooldown: {{Hexagon}}
// - Filter/Condition: {Rhombus}
// - Mechanic: [[Subroutine]]
// - Target: [Rectangle]
// Gates hang off the trigger with dotted edges. Overlay styles are applied if provided.
func GenerateMermaid(skill *domain.Skill, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if skill == nil || skill.Tree == nil || len(skill.Tree.Nodes) == 0 {
		return sb.String()
	}
	tree := skill.Tree

	byPath := make(map[string]string, len(tree.Nodes))
	tree.Walk(func(n *domain.Node) bool {
		id := nodeID(n)
		byPath[n.Path] = id

		opener, closer := "[", "]"
		switch n.Category {
		case domain.CategoryTrigger:
			opener, closer = "((", "))"
		case domain.CategoryCost, domain.CategoryCooldown:
			opener, closer = "{{", "}}"
		case domain.CategoryFilter, domain.CategoryCondition:
			opener, closer = "{", "}"
		case domain.CategoryMechanic:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label(skill, n), closer)

		for _, child := range tree.ChildrenOf(n) {
			arrow := "-->"
			if child.Category == domain.CategoryCost || child.Category == domain.CategoryCooldown {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", id, arrow, nodeID(child))
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef passed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		writeClass(&sb, byPath, overlay.Passed, "passed")
		writeClass(&sb, byPath, overlay.Failed, "failed")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, byPath map[string]string, paths []string, class string) {
	seen := make(map[string]bool)
	for _, p := range paths {
		// Paths from another revision of the skill are skipped.
		id, ok := byPath[p]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(sb, "    class %s %s;\n", id, class)
	}
}

func nodeID(n *domain.Node) string {
	return fmt.Sprintf("n%d", n.Index)
}

func label(skill *domain.Skill, n *domain.Node) string {
	text := n.Category.Tag()
	if n.Key != "" {
		text += ": " + n.Key
	}
	if n.Category == domain.CategoryTrigger {
		name := skill.Name
		if name == "" {
			name = skill.ID
		}
		text = name + " <br/> " + text
	}
	if keys := n.Settings.Keys(); len(keys) > 0 {
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+n.Settings[k].String())
		}
		text += " <br/> " + strings.Join(parts, ", ")
	}
	return strings.ReplaceAll(text, "\"", "'")
}

// Trace records which nodes a traversal passed or failed, for use as an overlay.
type Trace struct {
	mu     sync.Mutex
	passed map[string]bool
	failed map[string]bool
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{passed: make(map[string]bool), failed: make(map[string]bool)}
}

// Hooks returns lifecycle hooks feeding the trace.
func (t *Trace) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if e.Passed {
				t.passed[e.Path] = true
				delete(t.failed, e.Path)
			} else if !t.passed[e.Path] {
				t.failed[e.Path] = true
			}
		},
	}
}

// Overlay returns the recorded paths sorted.
func (t *Trace) Overlay() *Overlay {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &Overlay{Passed: sortedKeys(t.passed), Failed: sortedKeys(t.failed)}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
