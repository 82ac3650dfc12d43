package dsl

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/factory"
	"github.com/aretw0/pageforge/pkg/globals"
)

// Builder accumulates a site declaration.
type Builder struct {
	name   string
	pages  []*PageBuilder
	header *NodeBuilder
	footer *NodeBuilder
	newID  factory.IDGenerator
	now    func() time.Time
}

// New creates a builder for a site called name.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		header: &NodeBuilder{kind: domain.KindHeader},
		footer: &NodeBuilder{kind: domain.KindFooter},
		now:    time.Now,
	}
}

// WithIDGenerator replaces the UUID generator, mostly for tests.
func (b *Builder) WithIDGenerator(gen factory.IDGenerator) *Builder {
	b.newID = gen
	return b
}

// WithClock sets the clock used for the copyright year.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Page returns the page at path, declaring it on first use.
// Pages keep their declaration order and the first one is active.
func (b *Builder) Page(name, path string) *PageBuilder {
	for _, p := range b.pages {
		if p.path == path {
			return p
		}
	}
	p := &PageBuilder{name: name, path: path}
	b.pages = append(b.pages, p)
	return p
}

// Header customizes the Header shared by every page.
func (b *Builder) Header() *NodeBuilder { return b.header }

// Footer customizes the Footer shared by every page.
func (b *Builder) Footer() *NodeBuilder { return b.footer }

// Build materializes the declaration. The result satisfies domain.Validate.
func (b *Builder) Build() (*domain.Site, error) {
	if len(b.pages) == 0 {
		return nil, fmt.Errorf("%w: site %q declares no pages", domain.ErrInvalidDocument, b.name)
	}

	opts := []factory.Option{factory.WithClock(b.now)}
	if b.newID != nil {
		opts = append(opts, factory.WithIDGenerator(b.newID))
	}
	f := factory.New(opts...)

	site := &domain.Site{SiteName: b.name}
	for _, pb := range b.pages {
		page, err := pb.build(f, site, b.header, b.footer)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", pb.path, err)
		}
		site.Pages = append(site.Pages, page)
	}
	site.ActivePageID = site.Pages[0].ID

	if err := domain.Validate(site); err != nil {
		return nil, err
	}
	// Earlier pages were rendered before the later ones existed.
	return globals.New(globals.WithClock(b.now)).Regenerate(site), nil
}

// PageBuilder declares the body of one page.
type PageBuilder struct {
	name, path string
	nodes      []*NodeBuilder
	canvas     domain.Style
	grid       *domain.GridSettings
}

// Add appends a top-level node of kind.
func (p *PageBuilder) Add(kind domain.Kind) *NodeBuilder {
	n := &NodeBuilder{kind: kind}
	p.nodes = append(p.nodes, n)
	return n
}

func (p *PageBuilder) Heading1(text string) *NodeBuilder  { return p.Add(domain.KindHeading1).Content(text) }
func (p *PageBuilder) Heading2(text string) *NodeBuilder  { return p.Add(domain.KindHeading2).Content(text) }
func (p *PageBuilder) Heading3(text string) *NodeBuilder  { return p.Add(domain.KindHeading3).Content(text) }
func (p *PageBuilder) Paragraph(text string) *NodeBuilder { return p.Add(domain.KindParagraph).Content(text) }
func (p *PageBuilder) Button(text string) *NodeBuilder    { return p.Add(domain.KindButton).Content(text) }

func (p *PageBuilder) Image(src, alt string) *NodeBuilder {
	n := p.Add(domain.KindImage)
	n.src, n.alt = src, alt
	return n
}

// Container appends a Container. Layouts with blocks expose them through Block.
func (p *PageBuilder) Container(layout domain.LayoutType) *NodeBuilder {
	return p.Add(domain.KindContainer).Attr(domain.AttrLayoutType, string(layout))
}

// CanvasStyle sets a canvas style property.
func (p *PageBuilder) CanvasStyle(key, value string) *PageBuilder {
	if p.canvas == nil {
		p.canvas = domain.Style{}
	}
	p.canvas[key] = value
	return p
}

// Grid sets the editor grid of the page.
func (p *PageBuilder) Grid(visible bool, cellSize string) *PageBuilder {
	p.grid = &domain.GridSettings{Visible: visible, CellSize: cellSize}
	return p
}

func (p *PageBuilder) build(f *factory.Factory, site *domain.Site, header, footer *NodeBuilder) (*domain.Page, error) {
	page, err := f.Page(site, p.name, p.path)
	if err != nil {
		return nil, err
	}
	page.CanvasStyle = page.CanvasStyle.Merge(p.canvas)
	if p.grid != nil {
		page.Grid = *p.grid
	}

	first, last := page.Elements[0], page.Elements[len(page.Elements)-1]
	if first, err = header.customize(first); err != nil {
		return nil, err
	}
	if last, err = footer.customize(last); err != nil {
		return nil, err
	}
	if len(p.nodes) == 0 {
		page.Elements = []*domain.Node{first, page.Elements[1], last}
		return page, nil
	}

	elements := []*domain.Node{first}
	for _, nb := range p.nodes {
		if nb.kind.IsGlobal() {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateGlobal, nb.kind)
		}
		n, err := nb.build(f, site, p.path)
		if err != nil {
			return nil, err
		}
		elements = append(elements, n)
	}
	page.Elements = append(elements, last)
	return page, nil
}

// NodeBuilder declares one node and its subtree.
type NodeBuilder struct {
	kind     domain.Kind
	content  *string
	style    domain.Style
	attrs    map[string]any
	src, alt string
	children []*NodeBuilder
	blocks   map[int]*NodeBuilder
}

// Content sets the text of a text-bearing node.
func (n *NodeBuilder) Content(text string) *NodeBuilder {
	n.content = &text
	return n
}

// Style sets one style property.
func (n *NodeBuilder) Style(key, value string) *NodeBuilder {
	if n.style == nil {
		n.style = domain.Style{}
	}
	n.style[key] = value
	return n
}

// Attr sets one attribute. Unknown keys are kept as extra metadata.
func (n *NodeBuilder) Attr(key string, value any) *NodeBuilder {
	if n.attrs == nil {
		n.attrs = map[string]any{}
	}
	n.attrs[key] = value
	return n
}

// Add appends a child. Only containers accept children; Build reports the violation.
func (n *NodeBuilder) Add(kind domain.Kind) *NodeBuilder {
	child := &NodeBuilder{kind: kind}
	n.children = append(n.children, child)
	return child
}

func (n *NodeBuilder) Paragraph(text string) *NodeBuilder {
	return n.Add(domain.KindParagraph).Content(text)
}

func (n *NodeBuilder) Image(src, alt string) *NodeBuilder {
	child := n.Add(domain.KindImage)
	child.src, child.alt = src, alt
	return child
}

// Block addresses the i-th block of a layout Container.
func (n *NodeBuilder) Block(i int) *NodeBuilder {
	if n.blocks == nil {
		n.blocks = map[int]*NodeBuilder{}
	}
	if b, ok := n.blocks[i]; ok {
		return b
	}
	b := &NodeBuilder{kind: domain.KindContainer}
	n.blocks[i] = b
	return b
}

func (n *NodeBuilder) overrides() (*factory.Overrides, error) {
	attrs, err := domain.DecodeAttributes(n.attrs)
	if err != nil {
		return nil, err
	}
	return &factory.Overrides{
		Style:      n.style,
		Attributes: attrs,
		Content:    n.content,
		ImageSrc:   n.src,
		ImageAlt:   n.alt,
	}, nil
}

func (n *NodeBuilder) build(f *factory.Factory, site *domain.Site, path string) (*domain.Node, error) {
	o, err := n.overrides()
	if err != nil {
		return nil, err
	}
	node, err := f.Create(n.kind, site, path, o)
	if err != nil {
		return nil, err
	}
	if len(n.children) > 0 && !node.AcceptsChildren() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotContainer, n.kind)
	}

	for _, i := range slices.Sorted(maps.Keys(n.blocks)) {
		b := n.blocks[i]
		if i < 0 || i >= len(node.Children) {
			return nil, fmt.Errorf("%w: %s has no block %d", domain.ErrInvalidAttribute, n.kind, i)
		}
		block := node.Children[i].Clone()
		block.Style = block.Style.Merge(b.style)
		for _, c := range b.children {
			child, err := c.buildChild(f, site, path)
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, child)
		}
		node.Children[i] = block
	}
	for _, c := range n.children {
		child, err := c.buildChild(f, site, path)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (n *NodeBuilder) buildChild(f *factory.Factory, site *domain.Site, path string) (*domain.Node, error) {
	if n.kind.IsGlobal() {
		return nil, domain.ErrGlobalNotTopLevel
	}
	return n.build(f, site, path)
}

// customize applies header or footer declarations to a generated global.
func (n *NodeBuilder) customize(global *domain.Node) (*domain.Node, error) {
	if len(n.children) > 0 || len(n.blocks) > 0 {
		return nil, errors.New("header and footer content is generated and cannot have children")
	}
	if n.style == nil && n.attrs == nil {
		return global, nil
	}
	o, err := n.overrides()
	if err != nil {
		return nil, err
	}
	updated := global.Clone()
	updated.Style = updated.Style.Merge(o.Style)
	updated.Attributes = updated.Attributes.Merge(o.Attributes)
	return updated, nil
}
