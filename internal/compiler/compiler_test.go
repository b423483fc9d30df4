package compiler_test

import (
	"testing"

	"github.com/aretw0/skilltree/internal/compiler"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fireboltYAML = `
id: firebolt
name: Firebolt
description: Hurls a bolt of fire at the nearest enemy.
max-level: 5
components:
  - type: trigger
    components:
      - type: cost
        key: mana
        settings:
          mana: 10
          mana-per-level: 2
      - type: cooldown
        settings:
          cooldown: 4
      - type: target
        key: nearest-hostile
        settings:
          range: 8
        components:
          - type: mechanic
            key: damage
            settings:
              amount: 6
`

func TestCompile_YAML(t *testing.T) {
	c := compiler.New(nil)
	skill, report := c.CompileBytes("firebolt", "firebolt.yaml", []byte(fireboltYAML))

	require.True(t, report.OK(), "errors: %v", report.Errors)
	require.NotNil(t, skill)
	assert.Equal(t, "Firebolt", skill.Name)
	assert.Equal(t, domain.SkillActive, skill.Class)
	assert.Equal(t, 5, skill.MaxLevel)
	assert.Equal(t, "firebolt.yaml", skill.Source)

	tree := skill.Tree
	require.Len(t, tree.Nodes, 5)
	root := tree.RootNode()
	assert.Equal(t, domain.CategoryTrigger, root.Category)
	assert.Equal(t, "cast", root.Key)
	assert.Equal(t, "cooldown", tree.Node(2).Key)

	cost, ok := tree.Node(1).Impl.(domain.CostGate)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryCost, cost.Category())

	_, ok = tree.Node(3).Impl.(domain.Selector)
	assert.True(t, ok)

	mech, ok := tree.Node(4).Impl.(*components.Mechanic)
	require.True(t, ok)
	assert.Equal(t, "damage", mech.Key())
	assert.Equal(t, int64(6), mustInt(t, tree.Node(4).Settings["amount"]))
}

func mustInt(t *testing.T, v domain.Value) int64 {
	t.Helper()
	require.Equal(t, domain.KindInt, v.Kind())
	return v.Any().(int64)
}

func TestCompile_JSONList(t *testing.T) {
	doc := `[{"type": "trigger", "key": "passive", "components": [
		{"type": "target", "key": "self", "components": [{"type": "mechanic", "key": "regen"}]}
	]}]`

	skill, report := compiler.New(nil).CompileBytes("regen", "regen.json", []byte(doc))
	require.True(t, report.OK(), "errors: %v", report.Errors)
	assert.Equal(t, "regen", skill.ID)
	assert.Equal(t, domain.SkillPassive, skill.Class, "a passive trigger makes the skill passive")
}

func TestCompile_ParseError(t *testing.T) {
	skill, report := compiler.New(nil).CompileBytes("bad", "bad.yaml", []byte("id: [unterminated"))
	assert.Nil(t, skill)
	assert.True(t, report.Has(domain.CodeParse))
}

func TestCompile_EmptyDocument(t *testing.T) {
	skill, report := compiler.New(nil).CompileBytes("blank", "blank.yaml", []byte("   \n"))
	assert.Nil(t, skill)
	assert.True(t, report.Has(domain.CodeEmpty))
}

func TestCompile_UnknownKeyAndSettings(t *testing.T) {
	raw := &domain.RawSkill{
		ID: "broken",
		Components: []domain.RawNode{{
			Type: "trigger",
			Components: []domain.RawNode{
				{Type: "cost", Key: "gold"},
				{Type: "target", Key: "sphere", Settings: map[string]any{"radius": "wide"}},
				{Type: "target", Key: "self", Settings: map[string]any{"colour": "red"},
					Components: []domain.RawNode{{Type: "mechanic", Key: "noop"}}},
			},
		}},
	}

	skill, report := compiler.New(nil).Compile(raw)
	assert.Nil(t, skill)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, domain.CodeUnknownKey, report.Errors[0].Code)
	assert.Contains(t, report.Errors[0].Message, `"gold"`)
	assert.Contains(t, report.Errors[0].Message, "mana")
	assert.Equal(t, domain.CodeSettings, report.Errors[1].Code)

	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[len(report.Warnings)-1].Message, "colour")
}

func TestCompile_Definition(t *testing.T) {
	raw := &domain.RawSkill{
		Class:      "ultimate",
		MaxLevel:   -1,
		Components: []domain.RawNode{{Type: "trigger"}},
	}

	_, report := compiler.New(nil).Compile(raw)
	var defs int
	for _, e := range report.Errors {
		if e.Code == domain.CodeDefinition {
			defs++
		}
	}
	assert.Equal(t, 3, defs, "missing id, unknown class and negative max-level")
}

func TestCompile_UnknownMechanicWithEffects(t *testing.T) {
	effects := staticEffects{"damage": true}
	c := compiler.New(components.NewCatalog(effects))

	raw := &domain.RawSkill{
		ID: "typo",
		Components: []domain.RawNode{{
			Type: "trigger",
			Components: []domain.RawNode{{
				Type: "target", Key: "self",
				Components: []domain.RawNode{{Type: "mechanic", Key: "damgae"}},
			}},
		}},
	}

	_, report := c.Compile(raw)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, domain.CodeUnknownKey, report.Errors[0].Code)
	assert.Equal(t, "trigger[0]/target:self[0]/mechanic:damgae[0]", report.Errors[0].Path)
}

func TestCompile_SettingsErrorsReportedSeparately(t *testing.T) {
	raw := &domain.RawSkill{
		ID: "cone",
		Components: []domain.RawNode{{
			Type: "trigger",
			Components: []domain.RawNode{{
				Type: "target", Key: "cone",
				Settings: map[string]any{"range": "far", "angle": "wide"},
				Components: []domain.RawNode{{Type: "mechanic", Key: "noop"}},
			}},
		}},
	}

	_, report := compiler.New(nil).Compile(raw)
	require.Len(t, report.Errors, 2)
	for _, e := range report.Errors {
		assert.Equal(t, domain.CodeSettings, e.Code)
		assert.Equal(t, "trigger[0]/target:cone[0]", e.Path)
	}
}
