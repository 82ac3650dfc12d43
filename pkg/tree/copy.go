package tree

import "github.com/aretw0/pageforge/pkg/domain"

// DeepCopy returns a structurally identical node where the node itself and every
// descendant carry a fresh id from newID. Nothing is shared with the original.
// It does not special-case kinds; callers refuse to copy Header/Footer themselves.
func DeepCopy(n *domain.Node, newID func() string) *domain.Node {
	if n == nil {
		return nil
	}
	out := *n
	out.ID = newID()
	out.Attributes = n.Attributes.Clone()
	out.Style = n.Style.Clone()
	out.Children = make([]*domain.Node, len(n.Children))
	for i, child := range n.Children {
		out.Children[i] = DeepCopy(child, newID)
	}
	return &out
}
