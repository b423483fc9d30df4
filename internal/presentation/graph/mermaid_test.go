package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/skilltree/internal/compiler"
	"github.com/aretw0/skilltree/internal/presentation/graph"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frostNova = `
id: frost-nova
name: Frost "Nova"
components:
  - type: trigger
    components:
      - type: cost
        key: mana
        settings: {mana: 20}
      - type: cooldown
        settings: {cooldown: 8}
      - type: target
        key: sphere
        settings: {radius: 5}
        components:
          - type: filter
            key: hostile
            components:
              - type: mechanic
                key: freeze
`

func compile(t *testing.T) *domain.Skill {
	t.Helper()
	skill, report := compiler.New(nil).CompileBytes("frost-nova", "frost-nova.yaml", []byte(frostNova))
	require.True(t, report.OK(), "%v", report.Errors)
	return skill
}

func TestGenerateMermaid_Shapes(t *testing.T) {
	out := graph.GenerateMermaid(compile(t), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`n0(("Frost 'Nova' <br/> trigger: cast"))`,
		`n1{{"cost: mana <br/> mana=20"}}`,
		`n2{{"cooldown: cooldown <br/> cooldown=8"}}`,
		`n3["target: sphere <br/> radius=5"]`,
		`n4{"filter: hostile"}`,
		`n5[["mechanic: freeze"]]`,
		"n0 -.-> n1",
		"n0 -.-> n2",
		"n0 --> n3",
		"n3 --> n4",
		"n4 --> n5",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	skill := compile(t)
	trace := graph.NewTrace()
	hooks := trace.Hooks()
	ctx := context.Background()

	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: skill.Tree.Nodes[3].Path, Passed: true})
	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: skill.Tree.Nodes[4].Path, Passed: false})
	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: "trigger[9]/gone", Passed: true})

	out := graph.GenerateMermaid(skill, trace.Overlay())
	assert.Contains(t, out, "classDef passed")
	assert.Contains(t, out, "class n3 passed;")
	assert.Contains(t, out, "class n4 failed;")
	assert.NotContains(t, out, "gone")
}

func TestTrace_PassWins(t *testing.T) {
	trace := graph.NewTrace()
	hooks := trace.Hooks()
	ctx := context.Background()

	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: "a", Passed: false})
	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: "a", Passed: true})
	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: "b", Passed: true})
	hooks.OnNodeLeave(ctx, &domain.NodeEvent{Path: "b", Passed: false})

	overlay := trace.Overlay()
	assert.Equal(t, []string{"a", "b"}, overlay.Passed)
	assert.Empty(t, overlay.Failed)
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}
