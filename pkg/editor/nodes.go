package editor

import (
	"context"
	"fmt"
	"maps"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/tree"
)

// AddNodeRequest describes a node to insert on the active page.
type AddNodeRequest struct {
	Kind domain.Kind

	// ParentID selects a Container to append to. Empty means top level.
	ParentID string

	// Optional overrides of the factory defaults. Set Attributes.LayoutType on a
	// Container to get a multi-block layout.
	Attributes domain.Attributes
	Style      domain.Style
	Content    *string

	// Image source and alt, already resolved by the caller.
	ImageSrc string
	ImageAlt string
}

// AddNode creates a node with its defaults and inserts it on the active page.
//
// A Header is placed first and a Footer last, inheriting the look of the existing ones
// on other pages. Other kinds are appended to the top level (before a Footer) or to
// the children of ParentID.
func (s *Session) AddNode(ctx context.Context, req AddNodeRequest) (Result, error) {
	e := edit{op: OpAddNode, nodeID: req.ParentID}
	site := s.Document()
	page := site.ActivePage()
	if page == nil {
		return s.noop(e), nil
	}
	e.pageID = page.ID

	if !req.Kind.Valid() {
		return s.reject(ctx, e, fmt.Errorf("%w: %q", domain.ErrUnknownKind, req.Kind))
	}
	if req.Kind.IsGlobal() {
		if req.ParentID != "" {
			return s.reject(ctx, e, domain.ErrGlobalNotTopLevel)
		}
		if _, existing := page.Global(req.Kind); existing != nil {
			return s.reject(ctx, e, fmt.Errorf("%w: %s", domain.ErrDuplicateGlobal, req.Kind))
		}
	}

	var parent *domain.Node
	if req.ParentID != "" {
		if parent = tree.Find(page.Elements, req.ParentID); parent == nil {
			return s.noop(e), nil
		}
		if !parent.AcceptsChildren() {
			return s.reject(ctx, e, fmt.Errorf("%w: %s is a %s", domain.ErrNotContainer, parent.ID, parent.Kind))
		}
	}

	overrides := &factory.Overrides{
		Style:      req.Style,
		Attributes: req.Attributes,
		Content:    req.Content,
		ImageSrc:   req.ImageSrc,
		ImageAlt:   req.ImageAlt,
	}
	if inherited := factory.Inherit(site, req.Kind); req.Kind.IsGlobal() && inherited != nil {
		overrides.Style = inherited.Style.Merge(req.Style)
		overrides.Attributes = inherited.Attributes.Merge(req.Attributes)
	}
	node, err := s.factory.Create(req.Kind, site, page.Path, overrides)
	if err != nil {
		return s.reject(ctx, e, err)
	}

	res := s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		if parent != nil {
			return tree.AddChild(elements, parent.ID, node)
		}
		out := make([]*domain.Node, 0, len(elements)+1)
		out = append(out, elements...)
		return tree.Pin(append(out, node)), true
	})
	res.NodeID = node.ID
	return res, nil
}

// UpdateStyle replaces the whole style map of a node on the active page.
func (s *Session) UpdateStyle(ctx context.Context, nodeID string, style domain.Style) Result {
	e := edit{op: OpUpdateStyle, nodeID: nodeID, restyle: true}
	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		n := tree.Find(elements, nodeID)
		if n == nil || maps.Equal(n.Style, style) {
			return elements, false
		}
		return tree.Replace(elements, nodeID, func(n *domain.Node) *domain.Node {
			updated := *n
			updated.Style = style.Clone()
			return &updated
		})
	})
}

// UpdateContent sets the text of a node on the active page.
// Header and Footer content is generated, so the request is ignored for them.
func (s *Session) UpdateContent(ctx context.Context, nodeID, content string) Result {
	e := edit{op: OpUpdateContent, nodeID: nodeID}
	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		n := tree.Find(elements, nodeID)
		if n == nil || n.Kind.IsGlobal() || n.Content == content {
			return elements, false
		}
		return tree.Replace(elements, nodeID, func(n *domain.Node) *domain.Node {
			updated := *n
			updated.Content = content
			return &updated
		})
	})
}

// UpdateAttribute sets one attribute of a node on the active page. Setting a logo URL
// clears the logo icon and vice versa (see domain.ExclusiveAttributes).
func (s *Session) UpdateAttribute(ctx context.Context, nodeID, key string, value any) (Result, error) {
	e := edit{op: OpUpdateAttribute, nodeID: nodeID, restyle: true}
	page := s.ActivePage()
	if page == nil {
		return s.noop(e), nil
	}
	n := tree.Find(page.Elements, nodeID)
	if n == nil {
		return s.noop(e), nil
	}
	attrs, err := n.Attributes.With(key, value)
	if err != nil {
		e.pageID = page.ID
		return s.reject(ctx, e, err)
	}
	if attrs.Equal(n.Attributes) {
		return s.noop(e), nil
	}

	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		return tree.Replace(elements, nodeID, func(n *domain.Node) *domain.Node {
			updated := *n
			updated.Attributes = attrs
			return &updated
		})
	}), nil
}

// ReplaceImage swaps the source of an Image on the active page. An empty hint
// defaults to "custom image".
func (s *Session) ReplaceImage(ctx context.Context, nodeID, src, alt, hint string) Result {
	e := edit{op: OpReplaceImage, nodeID: nodeID}
	if hint == "" {
		hint = "custom image"
	}
	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		n := tree.Find(elements, nodeID)
		if n == nil || n.Kind != domain.KindImage {
			return elements, false
		}
		if n.ImageSrc == src && n.ImageAlt == alt && n.Attributes.AIHint == hint {
			return elements, false
		}
		return tree.Replace(elements, nodeID, func(n *domain.Node) *domain.Node {
			updated := *n
			updated.ImageSrc = src
			updated.ImageAlt = alt
			updated.Attributes = n.Attributes.Clone()
			updated.Attributes.AIHint = hint
			return &updated
		})
	})
}

// RemoveNode deletes a node and its subtree from the active page.
func (s *Session) RemoveNode(ctx context.Context, nodeID string) Result {
	e := edit{op: OpRemoveNode, nodeID: nodeID}
	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		return tree.Remove(elements, nodeID)
	})
}

// MoveNode shifts a node one position among its siblings. Moves that would displace a
// Header or Footer are clamped.
func (s *Session) MoveNode(ctx context.Context, nodeID string, dir tree.Direction) Result {
	e := edit{op: OpMoveNode, nodeID: nodeID}
	return s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		return tree.Move(elements, nodeID, dir)
	})
}

// CopyNode duplicates a node with fresh ids and inserts the copy right after it.
func (s *Session) CopyNode(ctx context.Context, nodeID string) (Result, error) {
	e := edit{op: OpCopyNode, nodeID: nodeID}
	page := s.ActivePage()
	if page == nil {
		return s.noop(e), nil
	}
	n := tree.Find(page.Elements, nodeID)
	if n == nil {
		return s.noop(e), nil
	}
	if n.Kind.IsGlobal() {
		e.pageID = page.ID
		return s.reject(ctx, e, fmt.Errorf("%w: %s", domain.ErrCopyGlobal, n.Kind))
	}

	cp := tree.DeepCopy(n, s.factory.NewID)
	res := s.updateActive(ctx, e, func(elements []*domain.Node) ([]*domain.Node, bool) {
		return tree.InsertAfter(elements, nodeID, cp)
	})
	res.NodeID = cp.ID
	return res, nil
}
