package tree

import "github.com/aretw0/pageforge/pkg/domain"

// Direction is the way a node moves among its siblings.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	}
	return "", false
}

// Move shifts the node with id one position earlier (Up) or later (Down) among its
// siblings. A Header stays pinned at index 0 and a Footer at the last index: a move
// that would displace them is clamped. Returns false when the order did not change.
func Move(nodes []*domain.Node, id string, dir Direction) ([]*domain.Node, bool) {
	if dir != Up && dir != Down {
		return nodes, false
	}
	return move(nodes, id, dir)
}

func move(nodes []*domain.Node, id string, dir Direction) ([]*domain.Node, bool) {
	index := -1
	for i, n := range nodes {
		if n.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		for i, n := range nodes {
			if children, ok := move(n.Children, id, dir); ok {
				return Pin(with(nodes, i, withChildren(n, children))), true
			}
		}
		return nodes, false
	}

	item := nodes[index]
	if (item.Kind == domain.KindHeader && dir == Down) || (item.Kind == domain.KindFooter && dir == Up) {
		return nodes, false
	}

	rest := make([]*domain.Node, 0, len(nodes))
	rest = append(rest, nodes[:index]...)
	rest = append(rest, nodes[index+1:]...)

	target := index + 1
	if dir == Up {
		target = index - 1
		if target < 0 {
			target = 0
		}
		if len(rest) > 0 && rest[0].Kind == domain.KindHeader && target == 0 && item.Kind != domain.KindHeader {
			target = 1
		}
	} else {
		if target > len(rest) {
			target = len(rest)
		}
		last := len(rest) - 1
		if last >= 0 && rest[last].Kind == domain.KindFooter && target >= len(rest) && item.Kind != domain.KindFooter {
			target = last
		}
	}
	target = max(0, min(len(rest), target))

	out := make([]*domain.Node, 0, len(nodes))
	out = append(out, rest[:target]...)
	out = append(out, item)
	out = append(out, rest[target:]...)
	out = Pin(out)

	if sameOrder(nodes, out) {
		return nodes, false
	}
	return out, true
}

// Pin moves a Header to the front and a Footer to the back of a sibling list.
// The input is returned as is when both are already in place.
func Pin(nodes []*domain.Node) []*domain.Node {
	header, footer := -1, -1
	for i, n := range nodes {
		switch n.Kind {
		case domain.KindHeader:
			if header == -1 {
				header = i
			}
		case domain.KindFooter:
			if footer == -1 {
				footer = i
			}
		}
	}
	if header <= 0 && (footer == -1 || footer == len(nodes)-1) {
		return nodes
	}

	out := make([]*domain.Node, 0, len(nodes))
	if header > 0 {
		out = append(out, nodes[header])
	}
	for i, n := range nodes {
		if (i == header && header > 0) || i == footer {
			continue
		}
		out = append(out, n)
	}
	if footer != -1 {
		out = append(out, nodes[footer])
	}
	return out
}

func sameOrder(a, b []*domain.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
