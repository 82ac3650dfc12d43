package tree_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, kind domain.Kind, children ...*domain.Node) *domain.Node {
	return &domain.Node{ID: id, Kind: kind, Children: children}
}

// sample returns: header, container(a, inner(b, c)), paragraph, footer
func sample() []*domain.Node {
	return []*domain.Node{
		node("header", domain.KindHeader),
		node("box", domain.KindContainer,
			node("a", domain.KindParagraph),
			node("inner", domain.KindContainer,
				node("b", domain.KindButton),
				node("c", domain.KindImage),
			),
		),
		node("text", domain.KindParagraph),
		node("footer", domain.KindFooter),
	}
}

func ids(nodes []*domain.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestFind(t *testing.T) {
	nodes := sample()

	assert.Equal(t, "c", tree.Find(nodes, "c").ID)
	assert.Equal(t, "inner", tree.Find(nodes, "inner").ID)
	assert.Nil(t, tree.Find(nodes, "ghost"))
	assert.Nil(t, tree.Find(nil, "c"))
}

func TestPath(t *testing.T) {
	assert.Equal(t, []string{"box", "inner", "b"}, ids(tree.Path(sample(), "b")))
	assert.Nil(t, tree.Path(sample(), "ghost"))
}

func TestReplace_SharesUntouchedSubtrees(t *testing.T) {
	nodes := sample()

	out, changed := tree.Replace(nodes, "b", func(n *domain.Node) *domain.Node {
		cp := *n
		cp.Content = "clicked"
		return &cp
	})
	require.True(t, changed)

	assert.Equal(t, "clicked", tree.Find(out, "b").Content)
	assert.Empty(t, tree.Find(nodes, "b").Content, "input must not be modified")

	// Path to the match is rebuilt.
	assert.NotSame(t, nodes[1], out[1])
	assert.NotSame(t, nodes[1].Children[1], out[1].Children[1])
	// Siblings off the path are shared.
	assert.Same(t, nodes[0], out[0])
	assert.Same(t, nodes[2], out[2])
	assert.Same(t, nodes[1].Children[0], out[1].Children[0])
	assert.Same(t, nodes[1].Children[1].Children[1], out[1].Children[1].Children[1])
}

func TestReplace_Missing(t *testing.T) {
	nodes := sample()
	out, changed := tree.Replace(nodes, "ghost", func(n *domain.Node) *domain.Node { return n })
	assert.False(t, changed)
	assert.Equal(t, ids(nodes), ids(out))
	assert.Same(t, nodes[1], out[1])
}

func TestRemove(t *testing.T) {
	nodes := sample()

	out, changed := tree.Remove(nodes, "b")
	require.True(t, changed)
	assert.Nil(t, tree.Find(out, "b"))
	assert.NotNil(t, tree.Find(nodes, "b"))
	assert.Equal(t, []string{"c"}, ids(tree.Find(out, "inner").Children))

	out, changed = tree.Remove(out, "text")
	require.True(t, changed)
	assert.Equal(t, []string{"header", "box", "footer"}, ids(out))

	_, changed = tree.Remove(out, "ghost")
	assert.False(t, changed)
}

func TestRemove_LastTopLevel(t *testing.T) {
	out, changed := tree.Remove([]*domain.Node{node("only", domain.KindParagraph)}, "only")
	require.True(t, changed)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAddChild(t *testing.T) {
	nodes := sample()
	child := node("new", domain.KindHeading2)

	out, changed := tree.AddChild(nodes, "inner", child)
	require.True(t, changed)
	assert.Equal(t, []string{"b", "c", "new"}, ids(tree.Find(out, "inner").Children))
	assert.Equal(t, []string{"b", "c"}, ids(tree.Find(nodes, "inner").Children))

	out, changed = tree.AddChild(nodes, "text", child)
	assert.False(t, changed, "a paragraph does not accept children")
	assert.Nil(t, tree.Find(out, "new"))

	_, changed = tree.AddChild(nodes, "ghost", child)
	assert.False(t, changed)
}

func TestInsertAfter(t *testing.T) {
	nodes := sample()
	out, changed := tree.InsertAfter(nodes, "a", node("a2", domain.KindParagraph))
	require.True(t, changed)
	assert.Equal(t, []string{"a", "a2", "inner"}, ids(tree.Find(out, "box").Children))
}

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		dir     tree.Direction
		want    []string
		changed bool
	}{
		{"paragraph up", "text", tree.Up, []string{"header", "text", "box", "footer"}, true},
		{"container down", "box", tree.Down, []string{"header", "text", "box", "footer"}, true},
		{"clamped below header", "box", tree.Up, []string{"header", "box", "text", "footer"}, false},
		{"clamped above footer", "text", tree.Down, []string{"header", "box", "text", "footer"}, false},
		{"header cannot go down", "header", tree.Down, []string{"header", "box", "text", "footer"}, false},
		{"header already first", "header", tree.Up, []string{"header", "box", "text", "footer"}, false},
		{"footer cannot go up", "footer", tree.Up, []string{"header", "box", "text", "footer"}, false},
		{"footer already last", "footer", tree.Down, []string{"header", "box", "text", "footer"}, false},
		{"missing id", "ghost", tree.Up, []string{"header", "box", "text", "footer"}, false},
		{"bad direction", "text", tree.Direction("sideways"), []string{"header", "box", "text", "footer"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := tree.Move(sample(), tt.id, tt.dir)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestMove_Nested(t *testing.T) {
	nodes := sample()

	out, changed := tree.Move(nodes, "b", tree.Down)
	require.True(t, changed)
	assert.Equal(t, []string{"c", "b"}, ids(tree.Find(out, "inner").Children))
	assert.Same(t, nodes[0], out[0])

	_, changed = tree.Move(out, "b", tree.Down)
	assert.False(t, changed, "last child cannot move further down")
}

func TestPin(t *testing.T) {
	nodes := []*domain.Node{
		node("footer", domain.KindFooter),
		node("p", domain.KindParagraph),
		node("header", domain.KindHeader),
	}
	assert.Equal(t, []string{"header", "p", "footer"}, ids(tree.Pin(nodes)))

	pinned := sample()
	assert.Equal(t, ids(pinned), ids(tree.Pin(pinned)))
}

func TestDeepCopy(t *testing.T) {
	nodes := sample()
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("copy-%d", n)
	}

	cp := tree.DeepCopy(tree.Find(nodes, "box"), newID)

	assert.Equal(t, "copy-1", cp.ID)
	assert.Equal(t, 5, tree.Count([]*domain.Node{cp}))

	seen := map[string]bool{}
	tree.Walk([]*domain.Node{cp}, func(n *domain.Node, depth int) bool {
		assert.NotContains(t, []string{"box", "a", "inner", "b", "c"}, n.ID)
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
		return true
	})
}

func TestDeepCopy_Independence(t *testing.T) {
	orig := &domain.Node{ID: "p", Kind: domain.KindParagraph, Style: domain.Style{"color": "red"}}
	cp := tree.DeepCopy(orig, func() string { return "p2" })

	cp.Style["color"] = "blue"
	assert.Equal(t, "red", orig.Style["color"])

	orig.Style["margin"] = "0"
	assert.NotContains(t, cp.Style, "margin")
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	tree.Walk(sample(), func(n *domain.Node, depth int) bool {
		visited = append(visited, n.ID)
		return n.ID != "inner"
	})
	assert.Equal(t, []string{"header", "box", "a", "inner", "text", "footer"}, visited)
}
