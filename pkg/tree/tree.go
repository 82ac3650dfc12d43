package tree

import "github.com/aretw0/pageforge/pkg/domain"

// Find returns the first node with the given id in depth-first pre-order, or nil.
func Find(nodes []*domain.Node, id string) *domain.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Path returns the chain of nodes from the top level down to the node with id, or nil.
func Path(nodes []*domain.Node, id string) []*domain.Node {
	for _, n := range nodes {
		if n.ID == id {
			return []*domain.Node{n}
		}
		if sub := Path(n.Children, id); sub != nil {
			return append([]*domain.Node{n}, sub...)
		}
	}
	return nil
}

// Replace swaps the first node with the given id for updater(node).
// Ancestors of the match are rebuilt; everything else is shared with nodes.
func Replace(nodes []*domain.Node, id string, updater func(*domain.Node) *domain.Node) ([]*domain.Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			return with(nodes, i, updater(n)), true
		}
		if children, ok := Replace(n.Children, id, updater); ok {
			return with(nodes, i, withChildren(n, children)), true
		}
	}
	return nodes, false
}

// Remove deletes the first node with the given id at whatever depth it occurs.
func Remove(nodes []*domain.Node, id string) ([]*domain.Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			out := make([]*domain.Node, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			return append(out, nodes[i+1:]...), true
		}
		if children, ok := Remove(n.Children, id); ok {
			return with(nodes, i, withChildren(n, children)), true
		}
	}
	return nodes, false
}

// AddChild appends child to the node with parentID. When the parent is missing or is
// not a Container the tree is returned unchanged.
func AddChild(nodes []*domain.Node, parentID string, child *domain.Node) ([]*domain.Node, bool) {
	for i, n := range nodes {
		if n.ID == parentID {
			if !n.AcceptsChildren() {
				return nodes, false
			}
			children := make([]*domain.Node, 0, len(n.Children)+1)
			children = append(children, n.Children...)
			return with(nodes, i, withChildren(n, append(children, child))), true
		}
		if children, ok := AddChild(n.Children, parentID, child); ok {
			return with(nodes, i, withChildren(n, children)), true
		}
	}
	return nodes, false
}

// InsertAfter places newNode immediately after the node with id, among its siblings.
func InsertAfter(nodes []*domain.Node, id string, newNode *domain.Node) ([]*domain.Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			out := make([]*domain.Node, 0, len(nodes)+1)
			out = append(out, nodes[:i+1]...)
			out = append(out, newNode)
			return append(out, nodes[i+1:]...), true
		}
		if children, ok := InsertAfter(n.Children, id, newNode); ok {
			return with(nodes, i, withChildren(n, children)), true
		}
	}
	return nodes, false
}

// Walk visits every node depth-first in pre-order. Returning false from fn skips the
// node's children.
func Walk(nodes []*domain.Node, fn func(n *domain.Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*domain.Node, depth int, fn func(*domain.Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the tree.
func Count(nodes []*domain.Node) int {
	total := 0
	Walk(nodes, func(*domain.Node, int) bool {
		total++
		return true
	})
	return total
}

// with returns a copy of nodes where index i holds n.
func with(nodes []*domain.Node, i int, n *domain.Node) []*domain.Node {
	out := make([]*domain.Node, len(nodes))
	copy(out, nodes)
	out[i] = n
	return out
}

// withChildren returns a shallow copy of n owning the given children.
func withChildren(n *domain.Node, children []*domain.Node) *domain.Node {
	out := *n
	out.Children = children
	return &out
}
