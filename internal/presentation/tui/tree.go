package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/muesli/termenv"
)

var categoryColors = map[domain.Category]string{
	domain.CategoryTrigger:   "#f59e0b",
	domain.CategoryTarget:    "#38bdf8",
	domain.CategoryFilter:    "#a78bfa",
	domain.CategoryCondition: "#c084fc",
	domain.CategoryMechanic:  "#4ade80",
	domain.CategoryCost:      "#f87171",
	domain.CategoryCooldown:  "#fb7185",
}

// TreePrinter writes a skill tree as an indented outline.
type TreePrinter struct {
	Profile termenv.Profile
}

// NewTreePrinter detects the color profile of the terminal.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{Profile: termenv.ColorProfile()}
}

// Print writes the outline of skill to w.
func (p *TreePrinter) Print(w io.Writer, skill *domain.Skill) {
	header := p.Profile.String(skill.ID).Bold()
	if skill.Name != "" {
		header = p.Profile.String(fmt.Sprintf("%s (%s)", skill.Name, skill.ID)).Bold()
	}
	maxLevel := "unbounded"
	if skill.MaxLevel > 0 {
		maxLevel = fmt.Sprint(skill.MaxLevel)
	}
	fmt.Fprintf(w, "%s  %s, max level %s\n", header, skill.Class, maxLevel)
	if skill.Tree == nil || len(skill.Tree.Nodes) == 0 {
		return
	}
	p.node(w, skill.Tree, skill.Tree.RootNode(), "", true)
}

func (p *TreePrinter) node(w io.Writer, tree *domain.Tree, n *domain.Node, prefix string, last bool) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}
	tag := p.Profile.String(n.Category.Tag()).Foreground(p.Profile.Color(categoryColors[n.Category]))
	line := tag.String()
	if n.Key != "" {
		line += " " + n.Key
	}
	if keys := n.Settings.Keys(); len(keys) > 0 {
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+n.Settings[k].String())
		}
		line += p.Profile.String(" {" + strings.Join(parts, ", ") + "}").Faint().String()
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, line)

	children := tree.ChildrenOf(n)
	for i, c := range children {
		p.node(w, tree, c, prefix+next, i == len(children)-1)
	}
}
