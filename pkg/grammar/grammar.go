// Package grammar holds the static placement rules of the component taxonomy.
package grammar

import "github.com/aretw0/skilltree/pkg/domain"

// Unbounded is the MaxCount of categories with no sibling cap.
const Unbounded = 0

// MaxDepth is the deepest level a node may sit at. The trigger is depth 0.
const MaxDepth = 20

// Rule is the placement rule of one category.
type Rule struct {
	// Parents are the categories the node may appear under. Empty means root only.
	Parents domain.CategorySet
	// Children are the categories the node may contain.
	Children domain.CategorySet
	// MaxCount caps the number of nodes of this category under one parent.
	MaxCount int
}

var (
	trigger   = domain.CategoryTrigger
	target    = domain.CategoryTarget
	filter    = domain.CategoryFilter
	condition = domain.CategoryCondition
	mechanic  = domain.CategoryMechanic
	cost      = domain.CategoryCost
	cooldown  = domain.CategoryCooldown
)

var rules = map[domain.Category]Rule{
	trigger: {
		Children: domain.SetOf(cost, cooldown, target),
		MaxCount: 1,
	},
	cost: {
		Parents:  domain.SetOf(trigger),
		MaxCount: 1,
	},
	cooldown: {
		Parents:  domain.SetOf(trigger),
		MaxCount: 1,
	},
	target: {
		Parents:  domain.SetOf(trigger, condition, filter, mechanic, target),
		Children: domain.SetOf(filter, condition, mechanic, target),
	},
	filter: {
		Parents:  domain.SetOf(target, mechanic, condition, filter),
		Children: domain.SetOf(target, condition, mechanic, filter),
	},
	condition: {
		Parents:  domain.SetOf(target, mechanic, condition, filter),
		Children: domain.SetOf(target, condition, mechanic, filter),
	},
	mechanic: {
		Parents:  domain.SetOf(target, condition, filter, mechanic),
		Children: domain.SetOf(mechanic, target, condition, filter),
	},
}

// RuleOf returns the rule of c.
func RuleOf(c domain.Category) (Rule, bool) {
	r, ok := rules[c]
	return r, ok
}

// AllowedParents returns the categories c may appear under.
func AllowedParents(c domain.Category) domain.CategorySet {
	return rules[c].Parents
}

// AllowedChildren returns the categories c may contain.
func AllowedChildren(c domain.Category) domain.CategorySet {
	return rules[c].Children
}

// MaxCount returns the sibling cap of c, or Unbounded.
func MaxCount(c domain.Category) int {
	return rules[c].MaxCount
}

// CanPlace reports whether child may be placed directly under parent.
func CanPlace(parent, child domain.Category) bool {
	return AllowedChildren(parent).Has(child)
}

// CanBeRoot reports whether c may be the root of a tree.
func CanBeRoot(c domain.Category) bool {
	r, ok := rules[c]
	return ok && r.Parents.Empty()
}

// Gate reports whether c is a resource or time gate attached to the trigger.
func Gate(c domain.Category) bool {
	return c == cost || c == cooldown
}
