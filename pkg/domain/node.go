package domain

import "fmt"

// NoParent marks the root of a tree.
const NoParent = -1

// Node is a compiled tree node. Children are indices into the owning Tree.
type Node struct {
	Index    int
	Category Category
	Key      string
	Settings Settings
	Parent   int
	Children []int
	Depth    int
	// Path locates the node for diagnostics, e.g. "trigger/target[0]".
	Path string
	Impl Component
}

// Tree is an arena of nodes built once and then shared read-only.
type Tree struct {
	Nodes []Node
	Root  int
}

// Node returns the node at index i.
func (t *Tree) Node(i int) *Node {
	return &t.Nodes[i]
}

// RootNode returns the trigger node.
func (t *Tree) RootNode() *Node {
	return &t.Nodes[t.Root]
}

// ChildrenOf returns the child nodes of n, in order.
func (t *Tree) ChildrenOf(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = &t.Nodes[c]
	}
	return out
}

// Walk visits every node depth-first in document order.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if len(t.Nodes) == 0 {
		return
	}
	var visit func(i int) bool
	visit = func(i int) bool {
		n := &t.Nodes[i]
		if !fn(n) {
			return false
		}
		for _, c := range n.Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(t.Root)
}

// MaxDepth returns the depth of the deepest node (the root has depth 0).
func (t *Tree) MaxDepth() int {
	max := 0
	for _, n := range t.Nodes {
		if n.Depth > max {
			max = n.Depth
		}
	}
	return max
}

func (n *Node) String() string {
	if n.Key == "" {
		return fmt.Sprintf("%s@%s", n.Category.Tag(), n.Path)
	}
	return fmt.Sprintf("%s:%s@%s", n.Category.Tag(), n.Key, n.Path)
}
