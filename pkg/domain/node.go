package domain

import "maps"

// Style maps a style property name (camelCase, as in CSS-in-JS) to its value.
type Style map[string]string

// Clone returns an independent copy of s.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Merge returns a new Style with every entry of over applied on top of s.
func (s Style) Merge(over Style) Style {
	out := make(Style, len(s)+len(over))
	maps.Copy(out, s)
	maps.Copy(out, over)
	return out
}

// Equal reports whether s and other hold the same entries. Nil and empty are equal.
func (s Style) Equal(other Style) bool {
	return maps.Equal(s, other)
}

// Node represents a single element of a page tree.
//
// Nodes are immutable once they are part of a document: editing code builds a new Node
// and rebuilds the path to it, leaving untouched siblings shared by pointer.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Kind Kind   `json:"type" yaml:"type"`

	// Content holds the text payload. For Header and Footer it is generated markup.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Image fields, only set on KindImage.
	ImageSrc string `json:"src,omitempty" yaml:"src,omitempty"`
	ImageAlt string `json:"alt,omitempty" yaml:"alt,omitempty"`

	Attributes Attributes `json:"props" yaml:"props"`
	Style      Style      `json:"styles,omitempty" yaml:"styles,omitempty"`

	// Children is non-empty only for KindContainer.
	Children []*Node `json:"children" yaml:"children"`
}

// AcceptsChildren reports whether nodes may be parented under n.
func (n *Node) AcceptsChildren() bool {
	return n != nil && n.Kind == KindContainer
}

// Clone returns a deep copy of n keeping every id intact.
// Use tree.DeepCopy to duplicate a node with fresh identities.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Attributes = n.Attributes.Clone()
	out.Style = n.Style.Clone()
	out.Children = CloneNodes(n.Children)
	return &out
}

// CloneNodes deep-copies a node sequence keeping ids.
func CloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
