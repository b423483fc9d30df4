package dsl

import "github.com/aretw0/skilltree/pkg/domain"

// NodeBuilder provides a fluent API for configuring a component node.
type NodeBuilder struct {
	node     domain.RawNode
	children []*NodeBuilder
}

func newNode(cat domain.Category, key string, children []*NodeBuilder) *NodeBuilder {
	return &NodeBuilder{
		node:     domain.RawNode{Type: cat.Tag(), Key: key},
		children: children,
	}
}

// Trigger creates the root node of a skill.
func Trigger(key string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.CategoryTrigger, key, children)
}

// Target creates a selector node.
func Target(key string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.CategoryTarget, key, children)
}

// Filter creates a node that narrows the inbound set.
func Filter(key string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.CategoryFilter, key, children)
}

// Condition creates a node that narrows the inbound set and fails when
// nothing is left.
func Condition(key string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.CategoryCondition, key, children)
}

// Mechanic creates an effect node.
func Mechanic(key string, children ...*NodeBuilder) *NodeBuilder {
	return newNode(domain.CategoryMechanic, key, children)
}

// Cost creates a resource gate. It belongs directly under the trigger.
func Cost(key string) *NodeBuilder {
	return newNode(domain.CategoryCost, key, nil)
}

// Cooldown creates the time gate. It belongs directly under the trigger.
func Cooldown() *NodeBuilder {
	return newNode(domain.CategoryCooldown, "", nil)
}

// Set assigns a setting. Level-dependent values use the key-per-level,
// key-min and key-max companions.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	if n.node.Settings == nil {
		n.node.Settings = make(map[string]any)
	}
	n.node.Settings[key] = value
	return n
}

// Settings merges several settings at once.
func (n *NodeBuilder) Settings(settings map[string]any) *NodeBuilder {
	for k, v := range settings {
		n.Set(k, v)
	}
	return n
}

// Negate inverts a filter or condition.
func (n *NodeBuilder) Negate() *NodeBuilder {
	return n.Set("negate", true)
}

// Then appends children.
func (n *NodeBuilder) Then(children ...*NodeBuilder) *NodeBuilder {
	n.children = append(n.children, children...)
	return n
}

// Build returns the underlying domain.RawNode with its subtree.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.RawNode {
	out := n.node
	if len(n.children) > 0 {
		out.Components = make([]domain.RawNode, len(n.children))
		for i, c := range n.children {
			out.Components[i] = c.Build()
		}
	}
	return out
}
