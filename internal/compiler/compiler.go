// Package compiler turns authoring documents into validated, immutable skills.
package compiler

import (
	"errors"
	"strings"

	"github.com/aretw0/skilltree/internal/validator"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
)

// Compiler parses, validates and builds skills against a component catalog.
type Compiler struct {
	parser  *Parser
	catalog *components.Catalog
	opts    []validator.Option
}

// New creates a compiler. A nil catalog means the built-in catalog without an
// effect registry.
func New(catalog *components.Catalog, opts ...validator.Option) *Compiler {
	if catalog == nil {
		catalog = components.NewCatalog(nil)
	}
	return &Compiler{
		parser:  NewParser(),
		catalog: catalog,
		opts:    opts,
	}
}

// Catalog returns the catalog the compiler builds against.
func (c *Compiler) Catalog() *components.Catalog {
	return c.catalog
}

// CompileBytes parses and compiles one document. id is used when the
// document does not name itself; source is kept for diagnostics.
// The report is never nil; the skill is nil when the report has errors.
func (c *Compiler) CompileBytes(id, source string, data []byte) (*domain.Skill, *domain.Report) {
	raw, err := c.parser.Parse(data)
	if err != nil {
		report := &domain.Report{SkillID: id}
		report.Errorf("", domain.CodeParse, "%v", err)
		return nil, report
	}
	if raw.ID == "" {
		raw.ID = id
	}
	raw.Source = source

	skill, report := c.Compile(raw)
	if id != "" && raw.ID != id {
		report.Warnf("", "document id %q differs from its source name %q", raw.ID, id)
	}
	return skill, report
}

// Compile validates a raw skill and builds its arena tree. Every problem is
// collected before returning.
func (c *Compiler) Compile(raw *domain.RawSkill) (*domain.Skill, *domain.Report) {
	entries, report := validator.Validate(raw.ID, raw.Components, c.opts...)

	if strings.TrimSpace(raw.ID) == "" {
		report.Errorf("", domain.CodeDefinition, "skill is missing its id")
	}
	class := domain.SkillClass(strings.ToLower(strings.TrimSpace(raw.Class)))
	switch class {
	case "", domain.SkillActive, domain.SkillPassive:
	default:
		report.Errorf("", domain.CodeDefinition, "unknown skill class %q (expected active or passive)", raw.Class)
	}
	if raw.MaxLevel < 0 {
		report.Errorf("", domain.CodeDefinition, "max-level must not be negative, got %d", raw.MaxLevel)
	}

	nodes := make([]domain.Node, len(entries))
	for i, e := range entries {
		nodes[i] = c.buildNode(report, i, e)
	}

	if !report.OK() {
		return nil, report
	}

	root := &nodes[0]
	if class == "" {
		class = domain.SkillActive
		if root.Key == "passive" {
			class = domain.SkillPassive
		}
	} else if class == domain.SkillActive && root.Key == "passive" {
		report.Warnf(root.Path, "passive trigger on an active skill")
	}
	if class == domain.SkillPassive {
		for _, i := range root.Children {
			if n := nodes[i]; n.Category == domain.CategoryCost || n.Category == domain.CategoryCooldown {
				report.Warnf(n.Path, "%s is ignored on a passive skill", n.Category.Tag())
			}
		}
	}

	return &domain.Skill{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Class:       class,
		MaxLevel:    raw.MaxLevel,
		Tree:        &domain.Tree{Nodes: nodes, Root: 0},
		Source:      raw.Source,
	}, report
}

func (c *Compiler) buildNode(report *domain.Report, i int, e validator.Entry) domain.Node {
	n := domain.Node{
		Index:    i,
		Category: e.Category,
		Key:      components.NormalizeKey(e.Category, e.Raw.Key),
		Parent:   e.Parent,
		Children: e.Children,
		Depth:    e.Depth,
		Path:     e.Path,
	}

	settings, err := domain.NewSettings(e.Raw.Settings)
	if err != nil {
		report.Errorf(e.Path, domain.CodeSettings, "%v", err)
		return n
	}
	n.Settings = settings
	if !e.Known {
		return n
	}

	comp, unknown, err := c.catalog.Build(e.Category, e.Raw.Key, settings)
	switch {
	case errors.Is(err, components.ErrUnknownKey):
		if n.Key == "" {
			report.Errorf(e.Path, domain.CodeUnknownKey, "%s is missing its key", e.Category.Tag())
		} else if known := c.catalog.Keys(e.Category); len(known) > 0 {
			report.Errorf(e.Path, domain.CodeUnknownKey, "unknown %s key %q (known: %s)",
				e.Category.Tag(), n.Key, strings.Join(known, ", "))
		} else {
			report.Errorf(e.Path, domain.CodeUnknownKey, "unknown %s key %q", e.Category.Tag(), n.Key)
		}
	case err != nil:
		errs := schema.ValidationErrors(err)
		if errs == nil {
			errs = []error{err}
		}
		for _, ve := range errs {
			report.Errorf(e.Path, domain.CodeSettings, "%v", ve)
		}
	}
	for _, k := range unknown {
		report.Warnf(e.Path, "unknown setting %q ignored", k)
	}
	n.Impl = comp
	return n
}
