package validator_test

import (
	"strings"
	"testing"

	"github.com/aretw0/skilltree/internal/validator"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(typ string, children ...domain.RawNode) domain.RawNode {
	return domain.RawNode{Type: typ, Components: children}
}

func chain(n int) domain.RawNode {
	leaf := node("mechanic")
	for i := 0; i < n; i++ {
		leaf = node("target", leaf)
	}
	return leaf
}

func TestValidate_Accepts(t *testing.T) {
	roots := []domain.RawNode{
		node("trigger",
			node("cost"),
			node("cooldown"),
			node("target", node("condition", node("mechanic", node("target", node("mechanic"))))),
		),
	}

	entries, report := validator.Validate("firebolt", roots)
	assert.True(t, report.OK(), "errors: %v", report.Errors)
	require.Len(t, entries, 8)
	assert.Equal(t, domain.NoParent, entries[0].Parent)
	assert.Equal(t, []int{1, 2, 3}, entries[0].Children)
	assert.Equal(t, "trigger[0]/target[2]/condition[0]", entries[4].Path)
	assert.Equal(t, 3, entries[5].Depth)
}

func TestValidate_Empty(t *testing.T) {
	_, report := validator.Validate("empty", nil)
	assert.False(t, report.OK())
	assert.True(t, report.Has(domain.CodeEmpty))
}

func TestValidate_MissingTrigger(t *testing.T) {
	_, report := validator.Validate("orphan", []domain.RawNode{node("target", node("mechanic"))})

	require.False(t, report.OK())
	assert.True(t, report.Has(domain.CodeMissingTrigger))
	assert.True(t, report.Has(domain.CodeRoot), "a target at the top is also a root violation")

	found := false
	for _, e := range report.Errors {
		if e.Code == domain.CodeMissingTrigger {
			found = strings.Contains(e.Error(), "trigger")
		}
	}
	assert.True(t, found, "the missing trigger error should mention trigger")
}

func TestValidate_DuplicateTrigger(t *testing.T) {
	_, report := validator.Validate("twins", []domain.RawNode{node("trigger"), node("trigger")})

	require.False(t, report.OK())
	require.True(t, report.Has(domain.CodeDuplicateTrigger))
	assert.Contains(t, report.Errors[0].Message, "cardinality")
	assert.Equal(t, "trigger[1]", report.Errors[0].Path)
}

func TestValidate_UnknownType(t *testing.T) {
	_, report := validator.Validate("typo", []domain.RawNode{
		node("trigger", node("targett", node("mechanic")), node("target", node("")))},
	)

	require.False(t, report.OK())
	var messages []string
	for _, e := range report.Errors {
		if e.Code == domain.CodeUnknownType {
			messages = append(messages, e.Message)
		}
	}
	assert.Equal(t, []string{`unknown component type "targett"`, "component is missing its type"}, messages)
}

func TestValidate_Placement(t *testing.T) {
	_, report := validator.Validate("misplaced", []domain.RawNode{
		node("trigger",
			node("mechanic"),
			node("target", node("cost")),
		),
	})

	require.False(t, report.OK())
	var paths []string
	for _, e := range report.Errors {
		assert.Equal(t, domain.CodePlacement, e.Code)
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"trigger[0]/mechanic[0]", "trigger[0]/target[1]/cost[0]"}, paths)
}

func TestValidate_Cardinality(t *testing.T) {
	_, report := validator.Validate("double-cost", []domain.RawNode{
		node("trigger", node("cost"), node("cost"), node("cost"), node("target")),
	})

	require.Len(t, report.Errors, 1, "one error per exceeded cap")
	assert.Equal(t, domain.CodeCardinality, report.Errors[0].Code)
	assert.Equal(t, "trigger[0]/cost[1]", report.Errors[0].Path)
}

func TestValidate_DepthCeiling(t *testing.T) {
	// The trigger is depth 0, so chain(19) puts its mechanic leaf at depth 20.
	ok := node("trigger", chain(19))
	_, report := validator.Validate("deep", []domain.RawNode{ok})
	assert.True(t, report.OK(), "errors: %v", report.Errors)

	tooDeep := node("trigger", chain(20))
	_, report = validator.Validate("deeper", []domain.RawNode{tooDeep})
	require.False(t, report.OK())
	assert.True(t, report.Has(domain.CodeDepth))
	assert.Contains(t, report.Errors[0].Message, "too deep")
}

func TestValidate_DepthCeilingTargets(t *testing.T) {
	targets := func(n int) domain.RawNode {
		var inner *domain.RawNode
		for i := 0; i < n; i++ {
			next := node("target")
			if inner != nil {
				next.Components = []domain.RawNode{*inner}
			}
			inner = &next
		}
		return node("trigger", *inner)
	}

	_, report := validator.Validate("twenty", []domain.RawNode{targets(20)})
	assert.True(t, report.OK(), "errors: %v", report.Errors)

	_, report = validator.Validate("twenty-one", []domain.RawNode{targets(21)})
	assert.True(t, report.Has(domain.CodeDepth))
}

func TestValidate_CustomDepth(t *testing.T) {
	_, report := validator.Validate("shallow", []domain.RawNode{node("trigger", chain(2))}, validator.WithMaxDepth(2))
	assert.True(t, report.Has(domain.CodeDepth))
}

func TestValidate_AccumulatesEverything(t *testing.T) {
	_, report := validator.Validate("broken", []domain.RawNode{
		node("trigger", node("cost"), node("cost"), node("filter")),
		node("trigger"),
		node("bogus"),
	})

	assert.True(t, report.Has(domain.CodeDuplicateTrigger))
	assert.True(t, report.Has(domain.CodeCardinality))
	assert.True(t, report.Has(domain.CodePlacement))
	assert.True(t, report.Has(domain.CodeUnknownType))
	assert.GreaterOrEqual(t, len(report.Errors), 4)
}

func TestValidate_Warnings(t *testing.T) {
	_, report := validator.Validate("lazy", []domain.RawNode{node("trigger", node("target"))})

	assert.True(t, report.OK())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "trigger[0]/target[0]", report.Warnings[0].Path)
}
