// Package factory builds nodes, pages and documents populated with their default look.
package factory

import (
	"fmt"
	"time"

	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/markup"
	"github.com/google/uuid"
)

// Placeholder image used when an Image is created without a source.
const (
	PlaceholderImageSrc = "https://placehold.co/300x200.png"
	PlaceholderImageAlt = "Заполнитель изображения"
)

// IDGenerator returns a fresh identifier for a node or a page.
type IDGenerator func() string

// Factory creates nodes with kind-specific defaults.
// It is safe for concurrent use as long as its IDGenerator is.
type Factory struct {
	newID IDGenerator
	now   func() time.Time
}

// Option configures a Factory.
type Option func(*Factory)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(f *Factory) {
		f.newID = gen
	}
}

// WithClock sets the clock used for the copyright year of generated footers.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		f.now = now
	}
}

// New creates a Factory.
func New(opts ...Option) *Factory {
	f := &Factory{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewID returns a fresh identifier.
func (f *Factory) NewID() string {
	return f.newID()
}

// Year returns the current year according to the factory clock.
func (f *Factory) Year() int {
	return f.now().Year()
}

// Overrides is partial node data applied over the computed defaults.
// Style and Attributes are shallow-merged; Content and Children replace the defaults
// when set.
type Overrides struct {
	Style      domain.Style
	Attributes domain.Attributes
	Content    *string
	ImageSrc   string
	ImageAlt   string
	Children   []*domain.Node
}

// Create builds a node of the given kind. site and activePath are only read to render
// Header and Footer content.
func (f *Factory) Create(kind domain.Kind, site *domain.Site, activePath string, o *Overrides) (*domain.Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if o == nil {
		o = &Overrides{}
	}

	n := &domain.Node{
		ID:         f.newID(),
		Kind:       kind,
		Attributes: o.Attributes.Clone(),
		Children:   []*domain.Node{},
	}
	style := defaultStyle(kind)

	switch kind {
	case domain.KindHeader, domain.KindFooter:
		n.Content, _ = markup.Render(kind, n.Attributes, navOf(site, activePath), f.Year())
	case domain.KindHeading1, domain.KindHeading2, domain.KindHeading3, domain.KindParagraph, domain.KindButton:
		n.Content = defaultContent[kind]
	case domain.KindImage:
		n.ImageSrc, n.ImageAlt = o.ImageSrc, o.ImageAlt
		if n.ImageSrc == "" {
			n.ImageSrc = PlaceholderImageSrc
		}
		if n.ImageAlt == "" {
			n.ImageAlt = PlaceholderImageAlt
		}
		if n.Attributes.AIHint == "" {
			n.Attributes.AIHint = "placeholder image"
			if o.ImageSrc != "" {
				n.Attributes.AIHint = "custom image"
			}
		}
	case domain.KindContainer:
		if blocks := n.Attributes.LayoutType.Blocks(); blocks > 0 {
			style = layoutStyle()
			if len(o.Children) == 0 {
				for range blocks {
					block, err := f.Create(domain.KindContainer, site, activePath, blockOverrides())
					if err != nil {
						return nil, err
					}
					n.Children = append(n.Children, block)
				}
			}
		} else if n.Attributes.AIHint == "" {
			n.Attributes.AIHint = "empty container"
		}
	}

	if o.Content != nil && !kind.IsGlobal() {
		n.Content = *o.Content
	}
	if len(o.Children) > 0 && n.AcceptsChildren() {
		n.Children = o.Children
	}

	n.Style = style.Merge(o.Style)
	if n.Style["borderRadius"] == "" {
		n.Style["borderRadius"] = "0px"
	}
	return n, nil
}

// Layout is a shortcut for a Container of the given layout.
func (f *Factory) Layout(layout domain.LayoutType, site *domain.Site, activePath string) (*domain.Node, error) {
	attrs, err := domain.Attributes{}.With(domain.AttrLayoutType, string(layout))
	if err != nil {
		return nil, err
	}
	return f.Create(domain.KindContainer, site, activePath, &Overrides{Attributes: attrs})
}

func blockOverrides() *Overrides {
	return &Overrides{
		Style: domain.Style{
			"flex":            "1",
			"padding":         "15px",
			"minHeight":       "100px",
			"backgroundColor": "hsl(var(--card))",
			"display":         "flex",
			"alignItems":      "center",
			"justifyContent":  "center",
		},
		Attributes: domain.Attributes{
			AIHint:           "block content",
			LayoutAttributes: domain.LayoutAttributes{ChildBlock: true},
		},
	}
}

func navOf(site *domain.Site, activePath string) markup.Nav {
	if site == nil {
		return markup.Nav{SiteName: domain.DefaultSiteName, ActivePath: activePath}
	}
	return markup.Nav{SiteName: site.SiteName, Pages: site.PageRefs(), ActivePath: activePath}
}
