// Package validator enforces the placement grammar on raw skill trees.
//
// Validation is a pure pass: it never touches the registry or any store and
// may run off the main loop during hot-reload.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/grammar"
)

// Entry is one raw node in the flattened, preorder node list.
type Entry struct {
	Raw      *domain.RawNode
	Category domain.Category
	// Known is false when the type tag did not resolve to a category.
	Known    bool
	Parent   int
	Children []int
	Depth    int
	Path     string
}

// Option configures a validation pass.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth overrides the depth ceiling (grammar.MaxDepth by default).
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// Flatten lists every raw node in preorder with its parent link and path.
func Flatten(roots []domain.RawNode) []Entry {
	var out []Entry
	var visit func(n *domain.RawNode, parent, depth int, path string) int
	visit = func(n *domain.RawNode, parent, depth int, path string) int {
		cat, err := domain.ParseCategory(n.Type)
		idx := len(out)
		out = append(out, Entry{
			Raw:      n,
			Category: cat,
			Known:    err == nil,
			Parent:   parent,
			Depth:    depth,
			Path:     path,
		})
		for i := range n.Components {
			child := &n.Components[i]
			c := visit(child, idx, depth+1, path+"/"+segment(child, i))
			out[idx].Children = append(out[idx].Children, c)
		}
		return idx
	}
	for i := range roots {
		visit(&roots[i], domain.NoParent, 0, segment(&roots[i], i))
	}
	return out
}

func segment(n *domain.RawNode, i int) string {
	label := strings.ToLower(strings.TrimSpace(n.Type))
	if label == "" {
		label = "?"
	}
	if n.Key != "" {
		label += ":" + strings.ToLower(n.Key)
	}
	return fmt.Sprintf("%s[%d]", label, i)
}

// Validate checks a raw tree and returns its flattened node list together with
// every structural problem found. It does not stop at the first error.
func Validate(skillID string, roots []domain.RawNode, opts ...Option) ([]Entry, *domain.Report) {
	cfg := config{maxDepth: grammar.MaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := &domain.Report{SkillID: skillID}
	entries := Flatten(roots)

	// 1. Empty
	if len(entries) == 0 {
		report.Errorf("", domain.CodeEmpty, "skill has no components")
		return entries, report
	}

	// 2-3. Trigger count
	var triggers []string
	for _, e := range entries {
		if e.Known && e.Category == domain.CategoryTrigger {
			triggers = append(triggers, e.Path)
		}
	}
	switch len(triggers) {
	case 0:
		report.Errorf("", domain.CodeMissingTrigger, "skill has no trigger component")
	case 1:
	default:
		for _, p := range triggers[1:] {
			report.Errorf(p, domain.CodeDuplicateTrigger,
				"trigger cardinality exceeded: found %d triggers, at most 1 allowed", len(triggers))
		}
	}

	deepest := 0
	for i := range entries {
		e := &entries[i]

		if !e.Known {
			if strings.TrimSpace(e.Raw.Type) == "" {
				report.Errorf(e.Path, domain.CodeUnknownType, "component is missing its type")
			} else {
				report.Errorf(e.Path, domain.CodeUnknownType, "unknown component type %q", e.Raw.Type)
			}
		}

		// 4. Placement
		if e.Parent == domain.NoParent {
			if e.Known && !grammar.CanBeRoot(e.Category) {
				report.Errorf(e.Path, domain.CodeRoot, "%s cannot be a root component", e.Category.Tag())
			}
		} else if p := entries[e.Parent]; e.Known && p.Known && !grammar.CanPlace(p.Category, e.Category) {
			report.Errorf(e.Path, domain.CodePlacement, "%s is not allowed under %s (allowed: %s)",
				e.Category.Tag(), p.Category.Tag(), grammar.AllowedChildren(p.Category))
		}

		// 5. Cardinality among direct children
		if len(e.Children) > 0 {
			checkCardinality(report, entries, e)
		}

		// 6. Depth
		if e.Depth > deepest {
			deepest = e.Depth
		}

		warn(report, e)
	}

	if deepest > cfg.maxDepth {
		report.Errorf("", domain.CodeDepth, "tree too deep: depth %d exceeds the limit of %d", deepest, cfg.maxDepth)
	}

	return entries, report
}

func checkCardinality(report *domain.Report, entries []Entry, parent *Entry) {
	counts := make(map[domain.Category]int)
	for _, c := range parent.Children {
		child := entries[c]
		if !child.Known {
			continue
		}
		counts[child.Category]++
		limit := grammar.MaxCount(child.Category)
		if limit != grammar.Unbounded && counts[child.Category] == limit+1 {
			report.Errorf(child.Path, domain.CodeCardinality,
				"cardinality exceeded: at most %d %s under one %s", limit, child.Category.Tag(), parent.Category.Tag())
		}
	}
}

// warn records non-fatal remarks.
func warn(report *domain.Report, e *Entry) {
	if !e.Known || len(e.Children) > 0 {
		return
	}
	switch e.Category {
	case domain.CategoryTarget, domain.CategoryCondition, domain.CategoryFilter:
		report.Warnf(e.Path, "%s has no children and only affects the cast result", e.Category.Tag())
	case domain.CategoryTrigger:
		report.Warnf(e.Path, "trigger has no children; the skill does nothing")
	}
}
